// Package ratelimit provides a keyed token-bucket limiter, used per
// client IP on the login and import endpoints.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxKeys bounds the limiter map; when exceeded the map is reset rather
// than tracked with per-key expiry, which is enough for a small admin
// surface.
const maxKeys = 4096

type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a limiter allowing rps requests per second with the given
// burst, independently per key.
func New(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for key should proceed now.
func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	lim, ok := k.limiters[key]
	if !ok {
		if len(k.limiters) >= maxKeys {
			k.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = lim
	}
	k.mu.Unlock()
	return lim.Allow()
}
