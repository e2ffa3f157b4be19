package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/creditguardian/lexindex/domain/tagging"
	"github.com/creditguardian/lexindex/infrastructure/persistence"
	"github.com/creditguardian/lexindex/infrastructure/provider"
	"github.com/creditguardian/lexindex/internal/config"
	"github.com/creditguardian/lexindex/internal/database"
	"github.com/creditguardian/lexindex/internal/log"
)

// app wires configuration, storage and stores for one CLI invocation.
type app struct {
	cfg    config.AppConfig
	db     database.Database
	logger *slog.Logger

	articles   persistence.ArticleStore
	tags       persistence.TagStore
	records    persistence.IngestionStore
	embeddings persistence.EmbeddingStore
}

// newApp loads configuration, opens the database and runs migrations.
// Callers must Close.
func newApp(ctx context.Context, envFile string) (*app, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	logger := log.Configure(log.Format(cfg.LogFormat()), cfg.LogLevel())
	logger.LogAttrs(ctx, slog.LevelDebug, "configuration loaded", cfg.LogAttrs()...)

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		db:         db,
		logger:     logger,
		articles:   persistence.NewArticleStore(db),
		tags:       persistence.NewTagStore(db),
		records:    persistence.NewIngestionStore(db),
		embeddings: persistence.NewEmbeddingStore(db),
	}, nil
}

// Close releases the database connection.
func (a *app) Close() error {
	return a.db.Close()
}

// taxonomy loads the configured taxonomy file, or the built-in one when no
// path is set.
func (a *app) taxonomy() (tagging.Taxonomy, error) {
	if path := a.cfg.TaxonomyPath(); path != "" {
		return tagging.LoadTaxonomy(path)
	}
	return tagging.DefaultTaxonomy(), nil
}

// embedder builds the embedding provider from configuration. Fails when
// no API key is configured.
func (a *app) embedder() (*provider.OpenAIEmbedder, error) {
	return provider.NewOpenAIEmbedder(a.cfg.Embedding())
}
