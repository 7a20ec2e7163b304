package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/mattn/go-sqlite3"
)

const problemColumns = `id, title, problem, company, source, difficulty,
	data_structures, algorithms, tags,
	time_complexity, space_complexity, passes_allowed,
	edge_cases, input_types, output_types, test_cases, hints,
	solution, code_solution`

// Exists reports whether a problem with id has already been stored.
func (s *SQLiteStorage) Exists(ctx context.Context, id int) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateProblemID(id); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM problems WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, common.NewFatal(common.KindStorage, fmt.Sprintf("exists %d", id), err)
	}

	return exists, nil
}

// InsertProblem stores p. A problem with the same ID yields a fatal
// duplicate key error.
func (s *SQLiteStorage) InsertProblem(ctx context.Context, p *model.ClassifiedProblem) error {
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

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO problems (`+problemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Problem, p.Company, p.Source, string(p.Difficulty),
		lists.DataStructures, lists.Algorithms, lists.Tags,
		p.TimeComplexity, p.SpaceComplexity, p.PassesAllowed,
		lists.EdgeCases, lists.InputTypes, lists.OutputTypes, lists.TestCases, lists.Hints,
		p.Solution, p.CodeSolution,
	)
	if err != nil {
		if isSQLiteDuplicate(err) {
			return common.NewFatal(common.KindDuplicateKey, fmt.Sprintf("problem %d", p.ID), err)
		}
		return common.NewFatal(common.KindStorage, fmt.Sprintf("insert problem %d", p.ID), err)
	}

	return nil
}

// GetProblem loads a stored problem by ID.
func (s *SQLiteStorage) GetProblem(ctx context.Context, id int) (*model.ClassifiedProblem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateProblemID(id); err != nil {
		return nil, err
	}

	var (
		p        model.ClassifiedProblem
		lists    listColumns
		company  sql.NullString
		source   sql.NullString
		timeC    sql.NullString
		spaceC   sql.NullString
		passes   sql.NullInt64
		solution sql.NullString
		code     sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT `+problemColumns+` FROM problems WHERE id = ?`, id,
	).Scan(
		&p.ID, &p.Title, &p.Problem, &company, &source, &p.Difficulty,
		&lists.DataStructures, &lists.Algorithms, &lists.Tags,
		&timeC, &spaceC, &passes,
		&lists.EdgeCases, &lists.InputTypes, &lists.OutputTypes, &lists.TestCases, &lists.Hints,
		&solution, &code,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("problem %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem %d: %w", id, err)
	}

	if err := lists.decodeInto(&p); err != nil {
		return nil, fmt.Errorf("problem %d: %w", id, err)
	}

	p.Company = nullString(company)
	p.Source = nullString(source)
	p.TimeComplexity = nullString(timeC)
	p.SpaceComplexity = nullString(spaceC)
	if passes.Valid {
		n := int(passes.Int64)
		p.PassesAllowed = &n
	}
	p.Solution = solution.String
	p.CodeSolution = code.String

	return &p, nil
}

// CountProblems returns how many problems are stored.
func (s *SQLiteStorage) CountProblems(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count problems: %w", err)
	}
	return count, nil
}

func isSQLiteDuplicate(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
