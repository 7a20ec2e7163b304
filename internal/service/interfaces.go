// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/daily-problems/internal/model"
)

// ProblemStore is what the ingestion loop needs from persistence.
type ProblemStore interface {
	Exists(ctx context.Context, id int) (bool, error)
	InsertProblem(ctx context.Context, problem *model.ClassifiedProblem) error
}

// RunRecorder keeps the history of ingestion runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, run model.RunResult) error
	LatestRun(ctx context.Context) (*model.RunResult, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ProblemStore
	RunRecorder

	GetProblem(ctx context.Context, id int) (*model.ClassifiedProblem, error)
	CountProblems(ctx context.Context) (int, error)

	// Maintenance
	Migrate(ctx context.Context) error
	Close() error
}
