package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// Helper function to create a fully populated problem.
func createTestProblem(id int) *model.ClassifiedProblem {
	return &model.ClassifiedProblem{
		ID:              id,
		Title:           "Remove kth last element",
		Problem:         "Given a singly linked list and an integer k, remove the kth last element from the list.",
		Company:         strPtr("Google"),
		Difficulty:      model.DifficultyMedium,
		DataStructures:  []string{"Linked List"},
		Algorithms:      []string{"Two Pointers"},
		Tags:            []string{"In-Place"},
		TimeComplexity:  strPtr("O(n)"),
		SpaceComplexity: strPtr("O(1)"),
		PassesAllowed:   intPtr(1),
		EdgeCases:       []string{"k equals the list length"},
		InputTypes:      []string{"Singly Linked List", "Integer"},
		OutputTypes:     []string{"Modified Linked List"},
		Hints:           []string{"Keep two pointers k nodes apart"},
		TestCases:       []model.TestCase{{Input: "1->2->3, k=1", Output: "1->2"}},
		Solution:        "Advance a lead pointer k nodes, then move both until the lead reaches the end.",
		CodeSolution:    "def remove_kth_last(head, k):\n    ...",
	}
}

func TestSQLiteStorage_InsertAndGetProblem(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := createTestProblem(26)
	require.NoError(t, store.InsertProblem(ctx, want))

	got, err := store.GetProblem(ctx, 26)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStorage_OptionalAndEmptyFields(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	p := &model.ClassifiedProblem{
		ID:         3,
		Title:      "Serialize a tree",
		Problem:    "Given the root to a binary tree, implement serialize(root).",
		Difficulty: model.DifficultyHard,
	}
	require.NoError(t, store.InsertProblem(ctx, p))

	got, err := store.GetProblem(ctx, 3)
	require.NoError(t, err)

	assert.Nil(t, got.Company)
	assert.Nil(t, got.Source)
	assert.Nil(t, got.TimeComplexity)
	assert.Nil(t, got.SpaceComplexity)
	assert.Nil(t, got.PassesAllowed)
	assert.NotNil(t, got.DataStructures)
	assert.Empty(t, got.DataStructures)
	assert.NotNil(t, got.TestCases)
	assert.Empty(t, got.TestCases)

	var raw string
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT hints FROM problems WHERE id = 3`).Scan(&raw))
	assert.Equal(t, "[]", raw)
}

func TestSQLiteStorage_Exists(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	exists, err := store.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.InsertProblem(ctx, createTestProblem(42)))

	exists, err = store.Exists(ctx, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, 43)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteStorage_InsertDuplicateIsFatal(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.InsertProblem(ctx, createTestProblem(7)))

	err := store.InsertProblem(ctx, createTestProblem(7))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
	assert.Equal(t, common.KindDuplicateKey, common.KindOf(err))
	assert.True(t, common.IsFatal(err))

	count, err := store.CountProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStorage_GetProblemNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetProblem(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_InsertRejectsInvalidProblems(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.ClassifiedProblem)
		name   string
	}{
		{name: "missing title", mutate: func(p *model.ClassifiedProblem) { p.Title = " " }},
		{name: "missing statement", mutate: func(p *model.ClassifiedProblem) { p.Problem = "" }},
		{name: "bad difficulty", mutate: func(p *model.ClassifiedProblem) { p.Difficulty = "Extreme" }},
		{name: "negative id", mutate: func(p *model.ClassifiedProblem) { p.ID = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createTestProblem(100)
			tt.mutate(p)

			err := store.InsertProblem(ctx, p)
			assert.ErrorIs(t, err, ErrInvalidProblem)
		})
	}

	count, err := store.CountProblems(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteStorage_RecordRun(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.LatestRun(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	started := time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC)
	first := model.RunResult{
		ID:         "01JNGW1V4ZQK0000000000000A",
		StartedAt:  started,
		FinishedAt: started.Add(40 * time.Second),
		Added:      2,
		Duplicates: 5,
	}
	second := model.RunResult{
		ID:                 "01JNGW1V4ZQK0000000000000B",
		StartedAt:          started.Add(24 * time.Hour),
		FinishedAt:         started.Add(24*time.Hour + time.Second),
		ExtractionFailures: 1,
		Error:              "mailbox authentication failed",
	}
	require.NoError(t, store.RecordRun(ctx, first))
	require.NoError(t, store.RecordRun(ctx, second))

	latest, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.True(t, second.StartedAt.Equal(latest.StartedAt))
	assert.Equal(t, 1, latest.ExtractionFailures)
	assert.Equal(t, "mailbox authentication failed", latest.Error)
}

func TestSQLiteStorage_RecordRunValidates(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.RecordRun(context.Background(), model.RunResult{StartedAt: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidRun)
}

func TestNewSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "problems.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}
