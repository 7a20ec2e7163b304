package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/daily-problems/internal/model"
)

// RenderProblem formats a stored problem for the terminal.
func RenderProblem(p *model.ClassifiedProblem) string {
	var b strings.Builder

	meta := []string{string(p.Difficulty)}
	if p.Company != nil {
		meta = append(meta, *p.Company)
	}
	if p.Source != nil {
		meta = append(meta, *p.Source)
	}
	b.WriteString(SubtleStyle.Render(strings.Join(meta, " · ")) + "\n\n")
	b.WriteString(p.Problem + "\n")

	list := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s%s\n", LabelStyle.Render(label), strings.Join(items, ", "))
	}
	list("Data structures", p.DataStructures)
	list("Algorithms", p.Algorithms)
	list("Tags", p.Tags)

	if p.TimeComplexity != nil || p.SpaceComplexity != nil {
		fmt.Fprintf(&b, "\n%s%s time, %s space\n", LabelStyle.Render("Complexity"),
			valueOr(p.TimeComplexity, "?"), valueOr(p.SpaceComplexity, "?"))
	}
	if len(p.Hints) > 0 {
		b.WriteString("\n" + InfoStyle.Render("Hints") + "\n")
		for _, hint := range p.Hints {
			b.WriteString("  • " + hint + "\n")
		}
	}

	return RenderBox(fmt.Sprintf("#%d %s", p.ID, p.Title), strings.TrimRight(b.String(), "\n"))
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
