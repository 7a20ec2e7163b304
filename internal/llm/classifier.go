package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/Veraticus/daily-problems/internal/model"
)

const (
	problemSchemaName      = "classified_problem"
	defaultClassifyTimeout = 2 * time.Minute
)

// Classifier implements the engine.Classifier interface using LLM APIs.
// Each call is attempted once; failures are reported as recoverable
// classification errors so the caller can skip the problem.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	schema      *Schema
	timeout     time.Duration
}

// NewClassifier creates a new LLM-based classifier for the configured provider.
func NewClassifier(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return NewClassifierWithClient(client, cfg, logger), nil
}

// NewClassifierWithClient creates a classifier on top of an existing client.
func NewClassifierWithClient(client Client, cfg config.LLMConfig, logger *slog.Logger) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}

	return &Classifier{
		client:      client,
		logger:      common.LoggerOrDefault(logger),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		schema:      problemSchema(),
		timeout:     timeout,
	}
}

// Classify derives structured metadata for a problem statement. The result
// carries neither ID nor statement; the caller assigns both.
func (c *Classifier) Classify(ctx context.Context, text string) (*model.ClassifiedProblem, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, common.NewRecoverable(common.KindClassification, "rate limit", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	content, err := c.client.Generate(ctx, Request{
		System:     systemPrompt,
		Prompt:     text,
		Schema:     c.schema,
		SchemaName: problemSchemaName,
	})
	if err != nil {
		return nil, common.NewRecoverable(common.KindClassification, "request", err)
	}

	problem, err := parseProblem(content)
	if err != nil {
		return nil, common.NewRecoverable(common.KindClassification, "response", err)
	}

	c.logger.Debug("Problem classified",
		"title", problem.Title,
		"difficulty", problem.Difficulty,
		"duration", time.Since(start))

	return problem, nil
}

// Close releases the underlying client if it holds a connection.
func (c *Classifier) Close() error {
	if closer, ok := c.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
