package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{input: "Easy", want: DifficultyEasy},
		{input: "medium", want: DifficultyMedium},
		{input: " HARD ", want: DifficultyHard},
		{input: "Trivial", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifiedProblem_Normalize(t *testing.T) {
	blank := "  "
	p := &ClassifiedProblem{
		Title:      "Two Sum",
		Difficulty: "easy",
		Tags:       []string{"Hash Map"},
		Source:     &blank,
	}

	require.NoError(t, p.Normalize())

	assert.Equal(t, DifficultyEasy, p.Difficulty)
	assert.Nil(t, p.Company)
	assert.Nil(t, p.Source)
	assert.Equal(t, []string{"Hash Map"}, p.Tags)
	for name, list := range map[string][]string{
		"data structures": p.DataStructures,
		"algorithms":      p.Algorithms,
		"edge cases":      p.EdgeCases,
		"input types":     p.InputTypes,
		"output types":    p.OutputTypes,
		"hints":           p.Hints,
	} {
		assert.NotNil(t, list, name)
		assert.Empty(t, list, name)
	}
	assert.NotNil(t, p.TestCases)
}

func TestClassifiedProblem_NormalizeRejects(t *testing.T) {
	t.Run("unknown difficulty", func(t *testing.T) {
		p := &ClassifiedProblem{Title: "x", Difficulty: "Impossible"}
		assert.Error(t, p.Normalize())
	})
	t.Run("missing title", func(t *testing.T) {
		p := &ClassifiedProblem{Difficulty: DifficultyHard}
		assert.Error(t, p.Normalize())
	})
}

func TestRunResult_Record(t *testing.T) {
	var r RunResult
	for _, o := range []Outcome{
		OutcomePersisted, OutcomePersisted, OutcomeDuplicate,
		OutcomeParseFailure, OutcomeExtractionFailure, OutcomeClassificationFailure,
	} {
		r.Record(o)
	}

	assert.Equal(t, 2, r.Added)
	assert.Equal(t, 1, r.Duplicates)
	assert.Equal(t, 3, r.Skipped())
	assert.Equal(t, 6, r.Processed())
}
