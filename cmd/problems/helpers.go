package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/Veraticus/daily-problems/internal/engine"
	"github.com/Veraticus/daily-problems/internal/llm"
	"github.com/Veraticus/daily-problems/internal/mailbox"
	"github.com/Veraticus/daily-problems/internal/service"
	"github.com/Veraticus/daily-problems/internal/storage"
)

// openStore connects to the configured database and brings its schema up
// to date.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (service.Storage, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// pipeline holds everything one or more ingestion runs need.
type pipeline struct {
	ingester   *engine.Ingester
	store      service.Storage
	classifier *llm.Classifier
}

func (p *pipeline) Close() {
	if err := p.classifier.Close(); err != nil {
		slog.Warn("Failed to close LLM client", "error", err)
	}
	if err := p.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// newPipeline wires the mail source, classifier and store into an ingester.
// The caller must Close the result.
func newPipeline(ctx context.Context, cfg config.Config, opts ...engine.Option) (*pipeline, error) {
	if err := cfg.ValidateIngestion(); err != nil {
		return nil, err
	}

	logger := slog.Default()

	source, err := mailbox.NewSource(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail source: %w", err)
	}

	classifier, err := llm.NewClassifier(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		_ = classifier.Close()
		return nil, err
	}

	opts = append([]engine.Option{
		engine.WithLogger(logger),
		engine.WithRunRecorder(store),
	}, opts...)

	return &pipeline{
		ingester:   engine.New(source, classifier, store, opts...),
		store:      store,
		classifier: classifier,
	}, nil
}
