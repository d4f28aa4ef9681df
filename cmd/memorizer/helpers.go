package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/memorizer/internal/client"
	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/database"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openVocabulary returns the server client when --server is set, or a service over the
// configured database otherwise. The returned function releases it.
func openVocabulary(cfg *config.Config) (vocabulary.Vocabulary, func(), error) {
	if serverURL != "" {
		slog.Debug("using memorizer server", "url", serverURL)
		return client.New(serverURL), func() {}, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	service, err := vocabulary.NewService(term.NewDBRepository(db), vocabulary.Config{
		CacheMaxTerms: cfg.Cache.MaxTerms,
		Logger:        slog.Default(),
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("vocabulary.NewService() > %w", err)
	}
	return service, func() {
		service.Close()
		_ = db.Close()
	}, nil
}

// withVocabulary loads the configuration, opens the vocabulary, and runs fn with both.
func withVocabulary(fn func(cfg *config.Config, vocab vocabulary.Vocabulary) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	vocab, closeVocab, err := openVocabulary(cfg)
	if err != nil {
		return err
	}
	defer closeVocab()

	return fn(cfg, vocab)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid term id %q", s)
	}
	return id, nil
}

// parseVideo parses url[,start[,end]].
func parseVideo(s string) term.Video {
	parts := strings.SplitN(s, ",", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return term.Video{
		URL:   strings.TrimSpace(parts[0]),
		Start: strings.TrimSpace(parts[1]),
		End:   strings.TrimSpace(parts[2]),
	}
}

func parseVideos(values []string) []term.Video {
	videos := make([]term.Video, 0, len(values))
	for _, v := range values {
		videos = append(videos, parseVideo(v))
	}
	return videos
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected RFC 3339 such as 2025-01-02T15:04:05Z: %w", s, err)
	}
	return t, nil
}
