// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Difficulty is the estimated difficulty of a problem.
type Difficulty string

// Difficulty levels accepted from the classifier.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the valid difficulty values in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty matches value case-insensitively against the known levels
// and returns the canonical spelling.
func ParseDifficulty(value string) (Difficulty, error) {
	trimmed := strings.TrimSpace(value)
	for _, d := range Difficulties {
		if strings.EqualFold(trimmed, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q", value)
}

// TestCase is a single input/output example for a problem.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ClassifiedProblem is a problem statement plus the metadata the classifier
// derived for it. ID is the number from the email subject.
type ClassifiedProblem struct {
	Company         *string
	Source          *string
	TimeComplexity  *string
	SpaceComplexity *string
	PassesAllowed   *int
	Title           string
	Problem         string
	Difficulty      Difficulty
	Solution        string
	CodeSolution    string
	DataStructures  []string
	Algorithms      []string
	Tags            []string
	EdgeCases       []string
	InputTypes      []string
	OutputTypes     []string
	Hints           []string
	TestCases       []TestCase
	ID              int
}

// Normalize replaces nil lists with empty ones and clears blank optional
// fields. It returns an error when a required field is unusable.
func (p *ClassifiedProblem) Normalize() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("missing title")
	}

	difficulty, err := ParseDifficulty(string(p.Difficulty))
	if err != nil {
		return err
	}
	p.Difficulty = difficulty

	for _, list := range []*[]string{
		&p.DataStructures, &p.Algorithms, &p.Tags, &p.EdgeCases,
		&p.InputTypes, &p.OutputTypes, &p.Hints,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	if p.TestCases == nil {
		p.TestCases = []TestCase{}
	}

	p.Company = blankToNil(p.Company)
	p.Source = blankToNil(p.Source)
	p.TimeComplexity = blankToNil(p.TimeComplexity)
	p.SpaceComplexity = blankToNil(p.SpaceComplexity)

	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
