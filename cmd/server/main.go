package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/exercisetracker/internal"
	api "github.com/yourname/exercisetracker/internal/api"
	"github.com/yourname/exercisetracker/internal/config"
	"github.com/yourname/exercisetracker/internal/storage"
	httptransport "github.com/yourname/exercisetracker/internal/transport/http"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	store, err := storage.New(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatalf("failed to init %s storage: %v", cfg.DBType, err)
	}

	app := api.NewApp(logger, store)
	srv := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, api.NewHandler(app, cfg.CORSOrigins))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httptransport.Serve(gctx, srv, 10*time.Second, logger)
	})
	serveErr := g.Wait()

	// Requests have drained; the store can go.
	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logger.Errorf("failed to close storage: %v", err)
	}
	if serveErr != nil {
		logger.Errorf("server stopped: %v", serveErr)
		os.Exit(1)
	}
	logger.Infof("server stopped")
}
