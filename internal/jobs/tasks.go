package jobs

import (
	"github.com/scarevault/scarevault/internal/importer"
	"github.com/scarevault/scarevault/internal/repository"
	"github.com/scarevault/scarevault/internal/store"
)

// ──────── Payloads ────────

type FeedImportPayload struct {
	FeedURL string `json:"feed_url"`
}

type EventNotifier interface {
	Broadcast(event string, data interface{})
}

// ──────── Register all handlers ────────

func RegisterHandlers(q *Queue, parser *importer.Parser, st *store.Store,
	settingsRepo *repository.SettingsRepository, notifier EventNotifier) {

	q.RegisterHandler(TaskImportFeed, NewFeedImportHandler(parser, st, settingsRepo, notifier))
}
