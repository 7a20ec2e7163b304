package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		now  time.Time
		want time.Time
		loc  *time.Location
		name string
	}{
		{
			name: "later today",
			now:  time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 15, 8, 15, 0, 0, time.UTC),
			loc:  time.UTC,
		},
		{
			name: "already passed",
			now:  time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 16, 8, 15, 0, 0, time.UTC),
			loc:  time.UTC,
		},
		{
			name: "exactly at trigger",
			now:  time.Date(2026, 10, 15, 8, 15, 0, 0, time.UTC),
			want: time.Date(2026, 10, 16, 8, 15, 0, 0, time.UTC),
			loc:  time.UTC,
		},
		{
			name: "month rollover",
			now:  time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 11, 1, 8, 15, 0, 0, time.UTC),
			loc:  time.UTC,
		},
		{
			name: "other zone",
			now:  time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 16, 8, 15, 0, 0, newYork),
			loc:  newYork,
		},
		{
			name: "nil location means UTC",
			now:  time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 15, 8, 15, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRun(tt.now, 8, 15, tt.loc)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDaily_RunsSequentiallyAndSurvivesFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC)
	var waits []time.Duration
	calls := 0

	d := NewDaily(8, 15, time.UTC, func(context.Context) error {
		calls++
		if calls == 3 {
			cancel()
		}
		return errors.New("mailbox down")
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	d.now = func() time.Time { return clock }
	d.after = func(wait time.Duration) <-chan time.Time {
		waits = append(waits, wait)
		clock = clock.Add(wait)
		ch := make(chan time.Time, 1)
		ch <- clock
		return ch
	}

	err := d.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 3, calls)
	require.GreaterOrEqual(t, len(waits), 3)
	assert.Equal(t, 2*time.Hour+15*time.Minute, waits[0])
	assert.Equal(t, 24*time.Hour, waits[1])
	assert.Equal(t, 24*time.Hour, waits[2])
}

func TestDaily_StopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDaily(8, 15, time.UTC, func(context.Context) error {
		t.Fatal("job must not run")
		return nil
	}, nil)
	d.after = func(time.Duration) <-chan time.Time { return make(chan time.Time) }

	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
}
