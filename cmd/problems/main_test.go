package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want int
	}{
		{name: "missing config", err: fmt.Errorf("failed to load config: %w", common.ErrMissingConfig), want: 2},
		{name: "invalid config", err: common.ErrInvalidConfig, want: 2},
		{name: "fatal run error", err: fmt.Errorf("ingestion aborted: %w", common.NewFatal(common.KindAuth, "me", nil)), want: 1},
		{name: "other", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"ingest", "schedule", "migrate", "status", "show", "version"})

	ingest, _, err := rootCmd.Find([]string{"ingest"})
	assert.NoError(t, err)
	assert.NotNil(t, ingest.Flags().Lookup("progress"))
}
