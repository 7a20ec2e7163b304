package llm

import (
	"testing"

	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare json", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", input: "```\n{\"a\":1}\n```\n", want: `{"a":1}`},
		{name: "surrounding whitespace", input: "  \n{\"a\":1}\n ", want: `{"a":1}`},
		{name: "unterminated fence", input: "```json", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}

func TestParseProblem(t *testing.T) {
	content := "```json\n" + `{
		"title": "Remove kth last element",
		"company": "Google",
		"source": null,
		"difficulty": "Medium",
		"data_structures": ["Linked List"],
		"algorithms": ["Two Pointers"],
		"tags": ["In-Place"],
		"time_complexity": "O(n)",
		"space_complexity": "O(1)",
		"passes_allowed": 1,
		"edge_cases": ["k equals length"],
		"input_types": ["Singly Linked List", "Integer"],
		"output_types": ["Modified Linked List"],
		"hints": ["Advance one pointer k steps first"],
		"test_cases": [{"input": "1->2->3, k=1", "output": "1->2"}],
		"solution": "Use two pointers k apart.",
		"code_solution": "def remove(head, k): ..."
	}` + "\n```"

	got, err := parseProblem(content)
	require.NoError(t, err)

	assert.Equal(t, "Remove kth last element", got.Title)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Google", *got.Company)
	assert.Nil(t, got.Source)
	assert.Equal(t, model.DifficultyMedium, got.Difficulty)
	require.NotNil(t, got.PassesAllowed)
	assert.Equal(t, 1, *got.PassesAllowed)
	assert.Equal(t, []string{"Singly Linked List", "Integer"}, got.InputTypes)
	assert.Equal(t, []model.TestCase{{Input: "1->2->3, k=1", Output: "1->2"}}, got.TestCases)
	assert.Zero(t, got.ID)
	assert.Empty(t, got.Problem)
}

func TestParseProblem_Errors(t *testing.T) {
	for name, content := range map[string]string{
		"empty":       "  ",
		"not json":    "Sure! Here is the classification.",
		"wrong types": `{"title": 42}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseProblem(content)
			assert.Error(t, err)
		})
	}
}
