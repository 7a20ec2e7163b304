package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
)

// RecordRun stores the summary of a finished ingestion run.
func (s *SQLiteStorage) RecordRun(ctx context.Context, run model.RunResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestion_runs (
			id, started_at, finished_at, added, duplicates,
			parse_failures, extraction_failures, classification_failures, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Added, run.Duplicates,
		run.ParseFailures, run.ExtractionFailures, run.ClassificationFailures, nullIfEmpty(run.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}

	return nil
}

// LatestRun returns the most recently started run.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (*model.RunResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		run    model.RunResult
		runErr sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, added, duplicates,
			parse_failures, extraction_failures, classification_failures, error
		FROM ingestion_runs
		ORDER BY started_at DESC
		LIMIT 1`,
	).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Added, &run.Duplicates,
		&run.ParseFailures, &run.ExtractionFailures, &run.ClassificationFailures, &runErr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ingestion run: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	run.Error = runErr.String

	return &run, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
