package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE for a primary key or unique collision.
const pgUniqueViolation = "23505"

// PostgresStorage implements the Storage interface on a pgx pool. List
// fields are stored as JSONB.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage connects to databaseURL and verifies the connection.
func NewPostgresStorage(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	if err := validateString(databaseURL, "databaseURL"); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresStorage{pool: pool}, nil
}

// Close releases every pooled connection.
func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}

// Migrate creates the schema if it does not exist yet.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS problems (
			id               INTEGER PRIMARY KEY,
			title            TEXT NOT NULL,
			problem          TEXT NOT NULL,
			company          TEXT,
			source           TEXT,
			difficulty       TEXT NOT NULL,
			data_structures  JSONB NOT NULL DEFAULT '[]',
			algorithms       JSONB NOT NULL DEFAULT '[]',
			tags             JSONB NOT NULL DEFAULT '[]',
			time_complexity  TEXT,
			space_complexity TEXT,
			passes_allowed   INTEGER,
			edge_cases       JSONB NOT NULL DEFAULT '[]',
			input_types      JSONB NOT NULL DEFAULT '[]',
			output_types     JSONB NOT NULL DEFAULT '[]',
			test_cases       JSONB NOT NULL DEFAULT '[]',
			hints            JSONB NOT NULL DEFAULT '[]',
			solution         TEXT,
			code_solution    TEXT,
			created_at       TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_problems_difficulty ON problems(difficulty);
		CREATE INDEX IF NOT EXISTS idx_problems_company ON problems(company);

		CREATE TABLE IF NOT EXISTS ingestion_runs (
			id                      TEXT PRIMARY KEY,
			started_at              TIMESTAMPTZ NOT NULL,
			finished_at             TIMESTAMPTZ NOT NULL,
			added                   INTEGER NOT NULL DEFAULT 0,
			duplicates              INTEGER NOT NULL DEFAULT 0,
			parse_failures          INTEGER NOT NULL DEFAULT 0,
			extraction_failures     INTEGER NOT NULL DEFAULT 0,
			classification_failures INTEGER NOT NULL DEFAULT 0,
			error                   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_ingestion_runs_started ON ingestion_runs(started_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure postgres schema: %w", err)
	}

	slog.Info("postgres schema ready")
	return nil
}

// Exists reports whether a problem with id has already been stored.
func (s *PostgresStorage) Exists(ctx context.Context, id int) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateProblemID(id); err != nil {
		return false, err
	}

	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM problems WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, common.NewFatal(common.KindStorage, fmt.Sprintf("exists %d", id), err)
	}
	return exists, nil
}

// InsertProblem stores p. A problem with the same ID yields a fatal
// duplicate key error.
func (s *PostgresStorage) InsertProblem(ctx context.Context, p *model.ClassifiedProblem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProblem(p); err != nil {
		return err
	}

	lists, err := encodeLists(p)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO problems (`+problemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6,
			$7::jsonb, $8::jsonb, $9::jsonb,
			$10, $11, $12,
			$13::jsonb, $14::jsonb, $15::jsonb, $16::jsonb, $17::jsonb,
			$18, $19)`,
		p.ID, p.Title, p.Problem, p.Company, p.Source, string(p.Difficulty),
		lists.DataStructures, lists.Algorithms, lists.Tags,
		p.TimeComplexity, p.SpaceComplexity, p.PassesAllowed,
		lists.EdgeCases, lists.InputTypes, lists.OutputTypes, lists.TestCases, lists.Hints,
		p.Solution, p.CodeSolution,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.NewFatal(common.KindDuplicateKey, fmt.Sprintf("problem %d", p.ID), err)
		}
		return common.NewFatal(common.KindStorage, fmt.Sprintf("insert problem %d", p.ID), err)
	}

	return nil
}

// GetProblem loads a stored problem by ID.
func (s *PostgresStorage) GetProblem(ctx context.Context, id int) (*model.ClassifiedProblem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateProblemID(id); err != nil {
		return nil, err
	}

	var (
		p          model.ClassifiedProblem
		lists      listColumns
		difficulty string
		solution   *string
		code       *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, problem, company, source, difficulty,
			data_structures::text, algorithms::text, tags::text,
			time_complexity, space_complexity, passes_allowed,
			edge_cases::text, input_types::text, output_types::text, test_cases::text, hints::text,
			solution, code_solution
		FROM problems WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.Title, &p.Problem, &p.Company, &p.Source, &difficulty,
		&lists.DataStructures, &lists.Algorithms, &lists.Tags,
		&p.TimeComplexity, &p.SpaceComplexity, &p.PassesAllowed,
		&lists.EdgeCases, &lists.InputTypes, &lists.OutputTypes, &lists.TestCases, &lists.Hints,
		&solution, &code,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("problem %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem %d: %w", id, err)
	}

	if err := lists.decodeInto(&p); err != nil {
		return nil, fmt.Errorf("problem %d: %w", id, err)
	}
	p.Difficulty = model.Difficulty(difficulty)
	if solution != nil {
		p.Solution = *solution
	}
	if code != nil {
		p.CodeSolution = *code
	}

	return &p, nil
}

// CountProblems returns how many problems are stored.
func (s *PostgresStorage) CountProblems(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM problems`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count problems: %w", err)
	}
	return count, nil
}

// RecordRun stores the summary of a finished ingestion run.
func (s *PostgresStorage) RecordRun(ctx context.Context, run model.RunResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO ingestion_runs (
			id, started_at, finished_at, added, duplicates,
			parse_failures, extraction_failures, classification_failures, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Added, run.Duplicates,
		run.ParseFailures, run.ExtractionFailures, run.ClassificationFailures, nullIfEmpty(run.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recently started run.
func (s *PostgresStorage) LatestRun(ctx context.Context) (*model.RunResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		run    model.RunResult
		runErr *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, started_at, finished_at, added, duplicates,
			parse_failures, extraction_failures, classification_failures, error
		FROM ingestion_runs
		ORDER BY started_at DESC
		LIMIT 1`,
	).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Added, &run.Duplicates,
		&run.ParseFailures, &run.ExtractionFailures, &run.ClassificationFailures, &runErr,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ingestion run: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	if runErr != nil {
		run.Error = *runErr
	}

	return &run, nil
}
