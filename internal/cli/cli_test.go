package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestRenderRunSummary(t *testing.T) {
	start := time.Date(2026, 10, 15, 8, 15, 0, 0, time.UTC)

	tests := []struct {
		name        string
		expected    []string
		notExpected []string
		result      model.RunResult
	}{
		{
			name: "completed run",
			result: model.RunResult{
				ID:                     "01JABCDEF",
				StartedAt:              start,
				FinishedAt:             start.Add(1500 * time.Millisecond),
				Added:                  2,
				Duplicates:             5,
				ClassificationFailures: 1,
			},
			expected: []string{
				"Ingestion Complete",
				"01JABCDEF",
				"Problems added",
				"Already stored",
				"Classification failures",
				"1.5s",
			},
			notExpected: []string{"Ingestion Aborted"},
		},
		{
			name: "aborted run",
			result: model.RunResult{
				ID:         "01JXYZ",
				StartedAt:  start,
				FinishedAt: start,
				Error:      "mailbox authentication failed",
			},
			expected:    []string{"Ingestion Aborted", "mailbox authentication failed"},
			notExpected: []string{"Ingestion Complete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderRunSummary(tt.result)
			for _, expected := range tt.expected {
				assert.Contains(t, out, expected)
			}
			for _, notExpected := range tt.notExpected {
				assert.NotContains(t, out, notExpected)
			}
		})
	}
}

func TestProgress_CountsPersistedItems(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out)

	p.Observe(model.MailItem{UID: 1}, 10, model.OutcomePersisted)
	p.Observe(model.MailItem{UID: 2}, 11, model.OutcomeDuplicate)
	p.Observe(model.MailItem{UID: 3}, 12, model.OutcomePersisted)
	p.Finish()

	assert.Equal(t, 2, p.Added())
	assert.Contains(t, out.String(), "Ingesting problems")
}

func TestHandleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.signals <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled after interrupt")
	}

	require.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, strings.Count(output.String(), "Ingestion interrupted!"))
	assert.Contains(t, output.String(), "next run picks up the rest")
}

func TestHandleInterrupts_StopWithoutSignal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background())
	stop()
	stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestNewInterruptHandler_DefaultWriter(t *testing.T) {
	handler := NewInterruptHandler(nil)
	assert.Equal(t, os.Stderr, handler.writer)
}

func TestRenderProblem(t *testing.T) {
	company := "Google"
	timeComplexity := "O(n)"
	p := &model.ClassifiedProblem{
		ID:             1,
		Title:          "Two sum",
		Problem:        "Given a list of numbers and a number k, return whether any two numbers add up to k.",
		Difficulty:     model.DifficultyEasy,
		Company:        &company,
		TimeComplexity: &timeComplexity,
		DataStructures: []string{"hash set"},
		Hints:          []string{"Remember what you have seen."},
	}

	out := RenderProblem(p)

	for _, expected := range []string{"#1 Two sum", "Easy", "Google", "hash set", "O(n) time, ? space", "Remember what you have seen."} {
		assert.Contains(t, out, expected)
	}
	assert.NotContains(t, out, "Algorithms")
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		format func(string) string
		name   string
		icon   string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon},
		{name: "error", format: FormatError, icon: ErrorIcon},
		{name: "warning", format: FormatWarning, icon: WarningIcon},
		{name: "info", format: FormatInfo, icon: InfoIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("12 problems stored")
			assert.Contains(t, out, tt.icon+" 12 problems stored")
		})
	}
}
