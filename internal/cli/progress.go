package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Progress shows a spinner that advances once per processed mail item. The
// number of matching messages is unknown up front, so no total is shown.
type Progress struct {
	bar   *progressbar.ProgressBar
	added int
}

// NewProgress creates a spinner writing to w.
func NewProgress(w io.Writer) *Progress {
	p := &Progress{}
	p.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan][bold]Ingesting problems...[reset]"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress spinner", "error", err)
			}
		}),
	)
	return p
}

// Observe advances the spinner. Its signature matches engine.Observer.
func (p *Progress) Observe(_ model.MailItem, id int, outcome model.Outcome) {
	if outcome == model.OutcomePersisted {
		p.added++
		p.bar.Describe(fmt.Sprintf("[cyan][bold]Ingesting problems...[reset] added #%d", id))
	}
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress spinner", "error", err)
	}
}

// Added returns the number of persisted items observed.
func (p *Progress) Added() int {
	return p.added
}

// Finish stops the spinner.
func (p *Progress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress spinner", "error", err)
	}
}
