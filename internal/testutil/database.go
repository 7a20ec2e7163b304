// Package testutil provides shared test helpers for the daily-problems project.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/Veraticus/daily-problems/internal/storage"
)

// TestDB is a migrated in-memory store that is closed when the test ends.
type TestDB struct {
	*storage.SQLiteStorage
	t *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.MustInsert(testutil.Problem(26))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{SQLiteStorage: store, t: t}
}

// MustInsert stores problems or fails the test.
func (db *TestDB) MustInsert(problems ...*model.ClassifiedProblem) {
	db.t.Helper()
	for _, p := range problems {
		if err := db.InsertProblem(context.Background(), p); err != nil {
			db.t.Fatalf("failed to seed problem %d: %v", p.ID, err)
		}
	}
}

// MustGet loads a stored problem or fails the test.
func (db *TestDB) MustGet(id int) *model.ClassifiedProblem {
	db.t.Helper()
	p, err := db.GetProblem(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to load problem %d: %v", id, err)
	}
	return p
}

// Problem returns a minimal valid problem with the given ID.
func Problem(id int) *model.ClassifiedProblem {
	return &model.ClassifiedProblem{
		ID:             id,
		Title:          "Seeded problem",
		Problem:        "Seeded statement.",
		Difficulty:     model.DifficultyEasy,
		DataStructures: []string{},
		Algorithms:     []string{},
		Tags:           []string{},
		EdgeCases:      []string{},
		InputTypes:     []string{},
		OutputTypes:    []string{},
		Hints:          []string{},
		TestCases:      []model.TestCase{},
	}
}
