package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Generate returns the model's JSON answer to req. Providers constrain the
	// answer to req.Schema when their API supports it.
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single structured-output completion.
type Request struct {
	Schema     *Schema
	System     string
	Prompt     string
	SchemaName string
}
