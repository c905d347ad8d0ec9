package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/scarevault/scarevault/internal/api"
	"github.com/scarevault/scarevault/internal/catalog"
	"github.com/scarevault/scarevault/internal/config"
	"github.com/scarevault/scarevault/internal/db"
	"github.com/scarevault/scarevault/internal/importer"
	"github.com/scarevault/scarevault/internal/jobs"
	"github.com/scarevault/scarevault/internal/repository"
	"github.com/scarevault/scarevault/internal/scheduler"
	"github.com/scarevault/scarevault/internal/segments"
	"github.com/scarevault/scarevault/internal/store"
	"github.com/scarevault/scarevault/internal/version"
)

func main() {
	ver := version.Load()
	log.Printf("ScareVault %s starting...", ver.Version)

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, "migrations"); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	cfg.MergeFromDB(database.DB)

	catalogRepo := repository.NewCatalogRepository(database.DB)
	eventRepo := repository.NewEventRepository(database.DB)
	settingsRepo := repository.NewSettingsRepository(database.DB)

	st := store.New(eventRepo)
	if err := st.Load(context.Background()); err != nil {
		log.Fatalf("loading events failed: %v", err)
	}
	log.Printf("loaded %d scare events", st.Stats().TotalRecords)

	matcher := catalog.NewMatcher(catalogRepo)
	parser := importer.NewParser(matcher)
	segmentSvc := segments.NewService(st, settingsRepo)

	queue, err := jobs.NewQueue(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("job queue init failed: %v", err)
	}
	defer queue.Stop()

	srv := api.NewServer(cfg, database, st, parser, segmentSvc, settingsRepo, queue)

	jobs.RegisterHandlers(queue, parser, st, settingsRepo, srv.WSHub())
	if err := queue.Start(context.Background()); err != nil {
		log.Fatalf("job queue start failed: %v", err)
	}

	sched := scheduler.New(settingsRepo, func(feedURL string) {
		payload := jobs.FeedImportPayload{FeedURL: feedURL}
		if _, err := queue.EnqueueUnique(jobs.TaskImportFeed, payload, "import:feed"); err != nil {
			log.Printf("failed to enqueue feed import: %v", err)
		}
	})
	sched.Start()
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections are long-lived
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
