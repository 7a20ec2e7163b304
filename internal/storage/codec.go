package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/daily-problems/internal/model"
)

// listColumns holds a problem's list fields encoded as JSON arrays, in
// column order.
type listColumns struct {
	DataStructures string
	Algorithms     string
	Tags           string
	EdgeCases      string
	InputTypes     string
	OutputTypes    string
	TestCases      string
	Hints          string
}

func encodeLists(p *model.ClassifiedProblem) (listColumns, error) {
	var cols listColumns
	for _, f := range []struct {
		dst   *string
		value any
		name  string
	}{
		{&cols.DataStructures, nonNil(p.DataStructures), "data_structures"},
		{&cols.Algorithms, nonNil(p.Algorithms), "algorithms"},
		{&cols.Tags, nonNil(p.Tags), "tags"},
		{&cols.EdgeCases, nonNil(p.EdgeCases), "edge_cases"},
		{&cols.InputTypes, nonNil(p.InputTypes), "input_types"},
		{&cols.OutputTypes, nonNil(p.OutputTypes), "output_types"},
		{&cols.TestCases, nonNil(p.TestCases), "test_cases"},
		{&cols.Hints, nonNil(p.Hints), "hints"},
	} {
		data, err := json.Marshal(f.value)
		if err != nil {
			return listColumns{}, fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		*f.dst = string(data)
	}
	return cols, nil
}

func (cols listColumns) decodeInto(p *model.ClassifiedProblem) error {
	for _, f := range []struct {
		dst  any
		raw  string
		name string
	}{
		{&p.DataStructures, cols.DataStructures, "data_structures"},
		{&p.Algorithms, cols.Algorithms, "algorithms"},
		{&p.Tags, cols.Tags, "tags"},
		{&p.EdgeCases, cols.EdgeCases, "edge_cases"},
		{&p.InputTypes, cols.InputTypes, "input_types"},
		{&p.OutputTypes, cols.OutputTypes, "output_types"},
		{&p.TestCases, cols.TestCases, "test_cases"},
		{&p.Hints, cols.Hints, "hints"},
	} {
		raw := f.raw
		if raw == "" {
			raw = "[]"
		}
		if err := json.Unmarshal([]byte(raw), f.dst); err != nil {
			return fmt.Errorf("failed to decode %s: %w", f.name, err)
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
