package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/database"
	"github.com/at-ishikawa/memorizer/internal/server"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("memorizer server terminated with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("godotenv.Load() > %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	logger := slog.Default()
	service, err := vocabulary.NewService(term.NewDBRepository(db), vocabulary.Config{
		CacheMaxTerms: cfg.Cache.MaxTerms,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("vocabulary.NewService() > %w", err)
	}
	defer service.Close()

	httpSrv := server.New(cfg.Server, server.NewHandler(service, logger), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpSrv.Addr, "driver", cfg.Database.Driver)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("MEMORIZER_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
