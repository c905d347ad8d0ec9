package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/scarevault/scarevault/internal/importer"
	"github.com/scarevault/scarevault/internal/repository"
	"github.com/scarevault/scarevault/internal/store"
)

const maxFeedBytes = 16 << 20

// ──────── Feed Import Handler ────────

type FeedImportHandler struct {
	parser       *importer.Parser
	store        *store.Store
	settingsRepo *repository.SettingsRepository
	notifier     EventNotifier
	httpClient   *http.Client
}

func NewFeedImportHandler(parser *importer.Parser, st *store.Store,
	settingsRepo *repository.SettingsRepository, notifier EventNotifier) *FeedImportHandler {
	return &FeedImportHandler{
		parser:       parser,
		store:        st,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (h *FeedImportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p FeedImportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if p.FeedURL == "" {
		log.Println("Feed import: no feed URL configured, nothing to do")
		return nil
	}

	log.Printf("Feed import: fetching %s", p.FeedURL)

	text, err := h.fetch(ctx, p.FeedURL)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	events, stats, err := h.parser.Parse(ctx, text)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	merge, err := h.store.AddMerge(ctx, events)
	if err != nil {
		return fmt.Errorf("merge feed events: %w", err)
	}

	if err := h.settingsRepo.MarkFeedRefreshed(time.Now()); err != nil {
		log.Printf("Feed import: failed to record refresh time: %v", err)
	}

	log.Printf("Feed import: %d rows, %d added, %d skipped",
		stats.TotalRows, merge.Added, stats.Skipped+merge.Skipped)

	if h.notifier != nil {
		h.notifier.Broadcast("import:complete", map[string]interface{}{
			"source":   "feed",
			"imported": merge.Added,
			"skipped":  stats.Skipped + merge.Skipped,
			"rows":     stats.TotalRows,
		})
	}
	return nil
}

func (h *FeedImportHandler) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
