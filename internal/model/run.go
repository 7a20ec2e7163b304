package model

import "time"

// Outcome is the terminal state of one mail item in an ingestion run.
type Outcome string

// Item outcomes.
const (
	OutcomePersisted             Outcome = "persisted"
	OutcomeDuplicate             Outcome = "skipped_duplicate"
	OutcomeParseFailure          Outcome = "skipped_parse_failure"
	OutcomeExtractionFailure     Outcome = "skipped_extraction_failure"
	OutcomeClassificationFailure Outcome = "skipped_classification_failure"
)

// RunResult summarizes one ingestion run.
type RunResult struct {
	StartedAt              time.Time
	FinishedAt             time.Time
	ID                     string
	Error                  string
	Added                  int
	Duplicates             int
	ParseFailures          int
	ExtractionFailures     int
	ClassificationFailures int
}

// Record counts an item outcome.
func (r *RunResult) Record(outcome Outcome) {
	switch outcome {
	case OutcomePersisted:
		r.Added++
	case OutcomeDuplicate:
		r.Duplicates++
	case OutcomeParseFailure:
		r.ParseFailures++
	case OutcomeExtractionFailure:
		r.ExtractionFailures++
	case OutcomeClassificationFailure:
		r.ClassificationFailures++
	}
}

// Processed returns the number of mail items that reached a terminal state.
func (r RunResult) Processed() int {
	return r.Added + r.Duplicates + r.ParseFailures + r.ExtractionFailures + r.ClassificationFailures
}

// Skipped returns the number of items skipped because of a per-item failure.
func (r RunResult) Skipped() int {
	return r.ParseFailures + r.ExtractionFailures + r.ClassificationFailures
}

// Duration returns how long the run took.
func (r RunResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
