package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/daily-problems/internal/scheduler"
	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run ingestion once a day at schedule.at",
		Long: `Stay in the foreground and start an ingestion run every day at
schedule.at (HH:MM) in schedule.timezone. Runs never overlap, and a failed
run does not stop the next day's run.`,
		RunE: runSchedule,
	}
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	slog.Info("Starting scheduler",
		"at", cfg.Schedule.At,
		"timezone", cfg.Schedule.Location.String())

	daily := scheduler.NewDaily(cfg.Schedule.Hour, cfg.Schedule.Minute, cfg.Schedule.Location,
		func(ctx context.Context) error {
			_, err := p.ingester.Run(ctx)
			return err
		}, slog.Default())

	if err := daily.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
