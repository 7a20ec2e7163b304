package llm

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"
)

// Type is a JSON Schema primitive type.
type Type string

// Schema types.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema is the subset of JSON Schema the providers agree on. Objects are
// closed: every property is listed in Required and optional values are
// expressed with Nullable instead.
type Schema struct {
	Properties  map[string]*Schema
	Items       *Schema
	Type        Type
	Description string
	Enum        []string
	Required    []string
	Nullable    bool
}

// MarshalJSON renders s as strict JSON Schema.
func (s *Schema) MarshalJSON() ([]byte, error) {
	out := map[string]any{}

	if s.Nullable {
		out["type"] = []Type{s.Type, "null"}
	} else {
		out["type"] = s.Type
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = s.Items
	}
	if s.Type == TypeObject {
		out["properties"] = s.Properties
		out["required"] = s.Required
		out["additionalProperties"] = false
	}

	return json.Marshal(out)
}

// genai converts s to Gemini's schema representation.
func (s *Schema) genai() *genai.Schema {
	if s == nil {
		return nil
	}

	gs := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Nullable:    s.Nullable,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       s.Items.genai(),
	}
	if s.Type == TypeString && len(s.Enum) > 0 {
		gs.Format = "enum"
	}
	if len(s.Properties) > 0 {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			gs.Properties[name] = prop.genai()
		}
	}

	return gs
}

func genaiType(t Type) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeInteger:
		return genai.TypeInteger
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

func stringList(description string) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: &Schema{Type: TypeString}}
}

func optionalString(description string) *Schema {
	return &Schema{Type: TypeString, Description: description, Nullable: true}
}

// problemSchema describes the classifier's answer: every ClassifiedProblem
// field except the identifier and the statement itself.
func problemSchema() *Schema {
	properties := map[string]*Schema{
		"title":   {Type: TypeString, Description: "Problem title extracted from the description"},
		"company": optionalString("The company that asked the problem, if provided"),
		"source":  optionalString("Where the problem was found, if available"),
		"difficulty": {
			Type:        TypeString,
			Description: "Estimated difficulty level",
			Enum:        []string{"Easy", "Medium", "Hard"},
		},
		"data_structures":  stringList("Data structures used in solving the problem"),
		"algorithms":       stringList("Key algorithms or techniques required"),
		"tags":             stringList("Problem categories, such as 'In-Place' or 'Two Pointers'"),
		"time_complexity":  optionalString("Expected time complexity, e.g. O(n)"),
		"space_complexity": optionalString("Expected space complexity, e.g. O(1)"),
		"passes_allowed": {
			Type:        TypeInteger,
			Description: "Number of passes over the data allowed, if mentioned",
			Nullable:    true,
		},
		"edge_cases":   stringList("Edge cases the problem requires handling"),
		"input_types":  stringList("Input types such as 'Singly Linked List' or 'Integer'"),
		"output_types": stringList("Expected output types such as 'Modified Linked List'"),
		"hints":        stringList("Hints that guide a solver without giving the answer away"),
		"test_cases": {
			Type:        TypeArray,
			Description: "Example inputs with their expected outputs",
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"input":  {Type: TypeString},
					"output": {Type: TypeString},
				},
				Required: []string{"input", "output"},
			},
		},
		"solution":      {Type: TypeString, Description: "A brief high-level explanation of the solution"},
		"code_solution": {Type: TypeString, Description: "A clear, optimal Python solution"},
	}

	return &Schema{
		Type:       TypeObject,
		Properties: properties,
		Required: []string{
			"title", "company", "source", "difficulty",
			"data_structures", "algorithms", "tags",
			"time_complexity", "space_complexity", "passes_allowed",
			"edge_cases", "input_types", "output_types",
			"hints", "test_cases", "solution", "code_solution",
		},
	}
}
