package scheduler

import (
	"log"
	"time"
)

// FeedSettings exposes the feed configuration the scheduler polls.
type FeedSettings interface {
	FeedSettings() (url string, every time.Duration, last time.Time, err error)
}

// OnRefreshDue is called when the community feed is due for a refresh.
type OnRefreshDue func(feedURL string)

// Scheduler checks whether the feed refresh interval has elapsed on a
// regular tick and fires the callback when it has. The callback is
// responsible for recording the refresh time once the import completes.
type Scheduler struct {
	settings FeedSettings
	callback OnRefreshDue
	interval time.Duration
	stop     chan struct{}
}

// New creates a feed refresh checker.
func New(settings FeedSettings, cb OnRefreshDue) *Scheduler {
	return &Scheduler{
		settings: settings,
		callback: cb,
		interval: 60 * time.Second,
		stop:     make(chan struct{}),
	}
}

// Start begins the ticker loop.
func (s *Scheduler) Start() {
	go s.run()
	log.Println("[scheduler] feed refresh checker started (60s interval)")
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	// Initial check after a short delay
	time.Sleep(10 * time.Second)
	s.check()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.check()
		case <-s.stop:
			log.Println("[scheduler] scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) check() {
	url, every, last, err := s.settings.FeedSettings()
	if err != nil {
		log.Printf("[scheduler] error reading feed settings: %v", err)
		return
	}
	if url == "" || every <= 0 {
		return
	}
	if !last.IsZero() && time.Since(last) < every {
		return
	}

	log.Printf("[scheduler] feed refresh due (last: %s)", lastLabel(last))
	s.callback(url)
}

func lastLabel(last time.Time) string {
	if last.IsZero() {
		return "never"
	}
	return last.UTC().Format(time.RFC3339)
}
