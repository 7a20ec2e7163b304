package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/daily-problems/internal/cli"
	"github.com/Veraticus/daily-problems/internal/engine"
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion pass over the mailbox",
		Long: `Scan the mailbox for Daily Coding Problem emails, oldest first, and
store every problem that is not stored yet.

Messages that cannot be parsed or classified are skipped and counted.
Authentication, connection and database failures abort the run with a
non-zero exit status.`,
		RunE: runIngest,
	}

	cmd.Flags().Bool("progress", false, "Show a progress spinner while ingesting")
	cmd.Flags().Bool("quiet", false, "Do not print the run summary")

	return cmd
}

func runIngest(cmd *cobra.Command, _ []string) error {
	showProgress, _ := cmd.Flags().GetBool("progress")
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var opts []engine.Option
	var progress *cli.Progress
	if showProgress {
		progress = cli.NewProgress(os.Stderr)
		opts = append(opts, engine.WithObserver(progress.Observe))
	}

	p, err := newPipeline(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer p.Close()

	result, runErr := p.ingester.Run(ctx)

	if progress != nil {
		progress.Finish()
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRunSummary(result))
	}

	if runErr != nil {
		return fmt.Errorf("ingestion aborted: %w", runErr)
	}
	return nil
}
