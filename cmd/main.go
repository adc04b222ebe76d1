package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/amos-lsl/sentry/internal/config"
	"github.com/amos-lsl/sentry/internal/controller"
	"github.com/amos-lsl/sentry/internal/db"
	"github.com/amos-lsl/sentry/internal/engine"
	httpserver "github.com/amos-lsl/sentry/internal/http"
	"github.com/amos-lsl/sentry/internal/ingest"
	"github.com/amos-lsl/sentry/internal/tagstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	eng := engine.NewClickHouse(conn)
	store := tagstore.NewStore(eng, time.Duration(cfg.RetentionDays)*24*time.Hour)

	inserter := ingest.NewInserter(conn)
	worker := ingest.NewBatchWorker(inserter, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)

	tagController := controller.NewTagController(store, worker, cfg.FutureTolerance)
	server := httpserver.NewServer(cfg, tagController)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", cfg.HTTPPort)
		errCh <- server.Listen(cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
		worker.Shutdown()
	}
}
