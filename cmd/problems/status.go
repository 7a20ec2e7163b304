package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/daily-problems/internal/cli"
	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored problem count and the last ingestion run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count, err := store.CountProblems(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d problems stored", count)))

			latest, err := store.LatestRun(ctx)
			if errors.Is(err, common.ErrNotFound) {
				fmt.Fprintln(out, cli.FormatWarning("No ingestion run recorded yet"))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.RenderRunSummary(*latest))
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <problem-number>",
		Short: "Print a stored problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return fmt.Errorf("%w: problem number %q", common.ErrInvalidConfig, args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			problem, err := store.GetProblem(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderProblem(problem))
			return nil
		},
	}
}
