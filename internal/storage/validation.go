// Package storage persists classified problems and ingestion run summaries
// in SQLite or Postgres.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/daily-problems/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidProblem = errors.New("invalid problem")
	ErrInvalidRun     = errors.New("invalid ingestion run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProblemID ensures id could have come from a subject line.
func validateProblemID(id int) error {
	if id < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidProblem, id)
	}
	return nil
}

// validateProblem checks the columns that are NOT NULL in every schema.
func validateProblem(p *model.ClassifiedProblem) error {
	if p == nil {
		return fmt.Errorf("%w: problem", ErrNilParameter)
	}
	if err := validateProblemID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidProblem)
	}
	if strings.TrimSpace(p.Problem) == "" {
		return fmt.Errorf("%w: missing statement", ErrInvalidProblem)
	}
	if d, err := model.ParseDifficulty(string(p.Difficulty)); err != nil || d != p.Difficulty {
		return fmt.Errorf("%w: difficulty %q is not normalized", ErrInvalidProblem, p.Difficulty)
	}
	return nil
}

// validateRun validates a run summary before it is recorded.
func validateRun(run model.RunResult) error {
	if run.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRun)
	}
	return nil
}
