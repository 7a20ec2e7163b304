package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/daily-problems/internal/model"
)

// RenderRunSummary formats the counters of an ingestion run as a box.
func RenderRunSummary(r model.RunResult) string {
	var b strings.Builder

	row := func(label string, value any, style func(...string) string) {
		fmt.Fprintf(&b, "%s%s\n", LabelStyle.Render(label), style(fmt.Sprint(value)))
	}
	plain := func(s ...string) string { return strings.Join(s, "") }

	row("Run", r.ID, SubtleStyle.Render)
	row("Problems added", r.Added, SuccessStyle.Render)
	row("Already stored", r.Duplicates, plain)

	skipped := plain
	if r.Skipped() > 0 {
		skipped = WarningStyle.Render
	}
	row("Parse failures", r.ParseFailures, skipped)
	row("Extraction failures", r.ExtractionFailures, skipped)
	row("Classification failures", r.ClassificationFailures, skipped)
	row("Time taken", r.Duration().Round(time.Millisecond), plain)

	title := MailIcon + " Ingestion Complete"
	if r.Error != "" {
		title = MailIcon + " Ingestion Aborted"
		b.WriteString("\n" + FormatError(r.Error) + "\n")
	}

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
