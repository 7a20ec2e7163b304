package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/daily-problems/internal/model"
)

// problemPayload mirrors problemSchema.
type problemPayload struct {
	Company         *string          `json:"company"`
	Source          *string          `json:"source"`
	TimeComplexity  *string          `json:"time_complexity"`
	SpaceComplexity *string          `json:"space_complexity"`
	PassesAllowed   *int             `json:"passes_allowed"`
	Title           string           `json:"title"`
	Difficulty      string           `json:"difficulty"`
	Solution        string           `json:"solution"`
	CodeSolution    string           `json:"code_solution"`
	DataStructures  []string         `json:"data_structures"`
	Algorithms      []string         `json:"algorithms"`
	Tags            []string         `json:"tags"`
	EdgeCases       []string         `json:"edge_cases"`
	InputTypes      []string         `json:"input_types"`
	OutputTypes     []string         `json:"output_types"`
	Hints           []string         `json:"hints"`
	TestCases       []model.TestCase `json:"test_cases"`
}

// cleanMarkdownWrapper strips a ```json fence some models put around their
// answer even when asked for bare JSON.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	} else {
		content = ""
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// parseProblem decodes a model answer into a ClassifiedProblem. The result
// has no ID or statement yet and has not been normalized.
func parseProblem(content string) (*model.ClassifiedProblem, error) {
	content = cleanMarkdownWrapper(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var payload problemPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &model.ClassifiedProblem{
		Title:           payload.Title,
		Company:         payload.Company,
		Source:          payload.Source,
		Difficulty:      model.Difficulty(payload.Difficulty),
		DataStructures:  payload.DataStructures,
		Algorithms:      payload.Algorithms,
		Tags:            payload.Tags,
		TimeComplexity:  payload.TimeComplexity,
		SpaceComplexity: payload.SpaceComplexity,
		PassesAllowed:   payload.PassesAllowed,
		EdgeCases:       payload.EdgeCases,
		InputTypes:      payload.InputTypes,
		OutputTypes:     payload.OutputTypes,
		Hints:           payload.Hints,
		TestCases:       payload.TestCases,
		Solution:        payload.Solution,
		CodeSolution:    payload.CodeSolution,
	}, nil
}
