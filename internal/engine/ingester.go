// Package engine runs the ingestion pipeline: it takes problem emails from a
// mail source, classifies the ones not yet stored, and persists the results.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/Veraticus/daily-problems/internal/parse"
	"github.com/Veraticus/daily-problems/internal/service"
	"github.com/oklog/ulid/v2"
)

// Ingester orchestrates one ingestion run at a time. Items are processed
// strictly in the order the source yields them.
type Ingester struct {
	source     MailSource
	classifier Classifier
	store      service.ProblemStore
	runs       service.RunRecorder
	logger     *slog.Logger
	observer   Observer
	now        func() time.Time
	newRunID   func() string
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithRunRecorder stores a summary of every run.
func WithRunRecorder(runs service.RunRecorder) Option {
	return func(i *Ingester) { i.runs = runs }
}

// WithObserver reports each item's outcome as it is decided.
func WithObserver(observer Observer) Option {
	return func(i *Ingester) { i.observer = observer }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingester) { i.logger = common.LoggerOrDefault(logger) }
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Ingester) { i.now = now }
}

// New creates an ingester with the given dependencies.
func New(source MailSource, classifier Classifier, store service.ProblemStore, opts ...Option) *Ingester {
	i := &Ingester{
		source:     source,
		classifier: classifier,
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		newRunID:   func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run processes every mail item the source yields and returns the run
// summary. Per-item parse, extraction and classification failures are
// counted and skipped. A fatal error stops the run; the summary up to that
// point is returned together with the error.
func (i *Ingester) Run(ctx context.Context) (model.RunResult, error) {
	result := model.RunResult{
		ID:        i.newRunID(),
		StartedAt: i.now(),
	}
	logger := i.logger.With("run_id", result.ID)
	logger.Info("Starting ingestion run")

	runErr := i.ingest(ctx, logger, &result)

	result.FinishedAt = i.now()
	if runErr != nil {
		result.Error = runErr.Error()
	}
	i.recordRun(ctx, logger, result)

	attrs := []any{
		"added", result.Added,
		"duplicates", result.Duplicates,
		"parse_failures", result.ParseFailures,
		"extraction_failures", result.ExtractionFailures,
		"classification_failures", result.ClassificationFailures,
		"duration", result.Duration(),
	}
	if runErr != nil {
		logger.Error("Ingestion run aborted", append(attrs, "error", runErr)...)
		return result, runErr
	}
	logger.Info("Ingestion run finished", attrs...)

	return result, nil
}

func (i *Ingester) ingest(ctx context.Context, logger *slog.Logger, result *model.RunResult) error {
	for item, err := range i.source.Fetch(ctx) {
		if err != nil {
			if common.IsFatal(err) {
				return err
			}
			logger.Warn("Skipping unreadable mail item", "uid", item.UID, "error", err)
			i.settle(result, item, 0, outcomeFor(err))
			continue
		}

		id, outcome, err := i.processItem(ctx, logger.With("uid", item.UID), item)
		if err != nil {
			return err
		}
		i.settle(result, item, id, outcome)
	}

	return nil
}

func (i *Ingester) settle(result *model.RunResult, item model.MailItem, id int, outcome model.Outcome) {
	result.Record(outcome)
	if i.observer != nil {
		i.observer(item, id, outcome)
	}
}

// processItem walks one mail item to a terminal outcome. A non-nil error
// means the run must stop.
func (i *Ingester) processItem(ctx context.Context, logger *slog.Logger, item model.MailItem) (int, model.Outcome, error) {
	derived, err := parse.Derive(item)
	if err != nil {
		if common.IsFatal(err) {
			return 0, "", err
		}
		logger.Warn("Skipping mail item", "subject", item.Subject, "error", err)
		return derived.ID, outcomeFor(err), nil
	}
	logger = logger.With("problem_id", derived.ID)

	exists, err := i.store.Exists(ctx, derived.ID)
	if err != nil {
		return derived.ID, "", fmt.Errorf("failed to check problem %d: %w", derived.ID, err)
	}
	if exists {
		logger.Debug("Problem already stored")
		return derived.ID, model.OutcomeDuplicate, nil
	}

	leadIn, text, err := parse.StripLeadIn(derived.Statement)
	if err != nil {
		logger.Warn("Problem statement is empty after its lead-in", "error", err)
		return derived.ID, model.OutcomeExtractionFailure, nil
	}

	problem, err := i.classifier.Classify(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return derived.ID, "", common.NewFatal(common.KindClassification, "run canceled", ctxErr)
		}
		if isExplicitlyFatal(err) {
			return derived.ID, "", err
		}
		logger.Warn("Classification failed", "error", err)
		return derived.ID, model.OutcomeClassificationFailure, nil
	}
	if problem == nil {
		logger.Warn("Classifier returned no result")
		return derived.ID, model.OutcomeClassificationFailure, nil
	}

	problem.ID = derived.ID
	problem.Problem = text
	if problem.Company == nil || strings.TrimSpace(*problem.Company) == "" {
		if company, ok := parse.CompanyFromLeadIn(leadIn); ok {
			problem.Company = &company
		}
	}
	if err := problem.Normalize(); err != nil {
		logger.Warn("Classification result rejected", "error", err)
		return derived.ID, model.OutcomeClassificationFailure, nil
	}

	if err := i.store.InsertProblem(ctx, problem); err != nil {
		return derived.ID, "", fmt.Errorf("failed to store problem %d: %w", derived.ID, err)
	}

	logger.Info("Stored problem",
		"title", problem.Title,
		"difficulty", problem.Difficulty)

	return derived.ID, model.OutcomePersisted, nil
}

func (i *Ingester) recordRun(ctx context.Context, logger *slog.Logger, result model.RunResult) {
	if i.runs == nil {
		return
	}
	// A canceled run is still recorded.
	if err := i.runs.RecordRun(context.WithoutCancel(ctx), result); err != nil {
		logger.Warn("Failed to record ingestion run", "error", err)
	}
}

// outcomeFor maps a recoverable error to the skip outcome it causes.
func outcomeFor(err error) model.Outcome {
	switch common.KindOf(err) {
	case common.KindParse:
		return model.OutcomeParseFailure
	case common.KindClassification:
		return model.OutcomeClassificationFailure
	default:
		return model.OutcomeExtractionFailure
	}
}

// isExplicitlyFatal reports whether err was tagged fatal. Untagged classifier
// errors are treated as per-item classification failures.
func isExplicitlyFatal(err error) bool {
	var pe *common.PipelineError
	return errors.As(err, &pe) && pe.Severity == common.Fatal
}
