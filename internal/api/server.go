package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/auth"
	"github.com/scarevault/scarevault/internal/config"
	"github.com/scarevault/scarevault/internal/db"
	"github.com/scarevault/scarevault/internal/importer"
	"github.com/scarevault/scarevault/internal/jobs"
	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/ratelimit"
	"github.com/scarevault/scarevault/internal/repository"
	"github.com/scarevault/scarevault/internal/segments"
	"github.com/scarevault/scarevault/internal/store"
)

type Server struct {
	config       *config.Config
	db           *db.DB
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
	store        *store.Store
	parser       *importer.Parser
	segmentSvc   *segments.Service
	jobQueue     *jobs.Queue
	wsHub        *WSHub
	limiter      *ratelimit.KeyedLimiter
	router       *http.ServeMux
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewServer(cfg *config.Config, database *db.DB, st *store.Store, parser *importer.Parser,
	segmentSvc *segments.Service, settingsRepo *repository.SettingsRepository, jobQueue *jobs.Queue) *Server {
	s := &Server{
		config:       cfg,
		db:           database,
		userRepo:     repository.NewUserRepository(database.DB),
		settingsRepo: settingsRepo,
		store:        st,
		parser:       parser,
		segmentSvc:   segmentSvc,
		jobQueue:     jobQueue,
		wsHub:        NewWSHub(),
		limiter:      ratelimit.New(1, 5),
		router:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) WSHub() *WSHub {
	return s.wsHub
}

func (s *Server) setupRoutes() {
	// Public
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /api/v1/setup/check", s.handleSetupCheck)
	s.router.HandleFunc("POST /api/v1/setup", s.rl(s.handleSetup))
	s.router.HandleFunc("POST /api/v1/auth/login", s.rl(s.handleLogin))

	// Session
	s.router.HandleFunc("POST /api/v1/auth/logout", s.authMiddleware(s.handleLogout, models.RoleUser))

	// WebSocket
	s.router.HandleFunc("GET /api/v1/ws", s.handleWebSocket)

	// Segments (the per-playback query)
	s.router.HandleFunc("GET /api/v1/items/{itemId}/segments", s.authMiddleware(s.handleGetSegments, models.RoleUser))

	// Import
	s.router.HandleFunc("POST /api/v1/import", s.rl(s.authMiddleware(s.handleImport, models.RoleAdmin)))
	s.router.HandleFunc("POST /api/v1/import/feed", s.authMiddleware(s.handleEnqueueFeedImport, models.RoleAdmin))

	// Statistics and destructive clear
	s.router.HandleFunc("GET /api/v1/stats", s.authMiddleware(s.handleStats, models.RoleUser))
	s.router.HandleFunc("DELETE /api/v1/events", s.authMiddleware(s.handleClearEvents, models.RoleAdmin))

	// Settings
	s.router.HandleFunc("GET /api/v1/settings/offsets", s.authMiddleware(s.handleGetOffsets, models.RoleUser))
	s.router.HandleFunc("PUT /api/v1/settings/offsets", s.authMiddleware(s.handleUpdateOffsets, models.RoleAdmin))
	s.router.HandleFunc("GET /api/v1/settings/feed", s.authMiddleware(s.handleGetFeedSettings, models.RoleAdmin))
	s.router.HandleFunc("PUT /api/v1/settings/feed", s.authMiddleware(s.handleUpdateFeedSettings, models.RoleAdmin))
}

// ──────────────────── Middleware ────────────────────

func (s *Server) authMiddleware(next http.HandlerFunc, requiredRole models.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "missing authorization")
			return
		}

		userID, role, exp, err := s.userRepo.GetSession(token)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		if userID == uuid.Nil {
			s.respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}
		if auth.IsTokenExpired(exp) {
			s.userRepo.DeleteSession(token)
			s.respondError(w, http.StatusUnauthorized, "session expired")
			return
		}
		if requiredRole == models.RoleAdmin && role != models.RoleAdmin {
			s.respondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		r.Header.Set("X-User-ID", userID.String())
		r.Header.Set("X-User-Role", string(role))
		next(w, r)
	}
}

// rl applies the per-IP token bucket.
func (s *Server) rl(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			s.respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// playback clients can't always set headers
	return r.URL.Query().Get("token")
}

// ──────────────────── Helpers ────────────────────

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, Response{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ServeHTTP wraps the router with the global middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.securityHeadersMiddleware(s.corsMiddleware(s.router)).ServeHTTP(w, r)
}

func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
