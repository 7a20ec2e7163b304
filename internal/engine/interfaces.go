package engine

import (
	"context"
	"iter"

	"github.com/Veraticus/daily-problems/internal/model"
)

// MailSource yields problem emails oldest first. Each call to Fetch opens a
// fresh session that is released when iteration stops.
type MailSource interface {
	Fetch(ctx context.Context) iter.Seq2[model.MailItem, error]
}

// Classifier defines the contract for deriving problem metadata.
type Classifier interface {
	Classify(ctx context.Context, text string) (*model.ClassifiedProblem, error)
}

// Observer is told the outcome of every mail item as the run progresses.
type Observer func(item model.MailItem, id int, outcome model.Outcome)
