package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/speech-coach/internal/observability"
	"github.com/jonathan/speech-coach/internal/types"
	"github.com/jonathan/speech-coach/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Evaluate transcripts as they are saved into a directory",
	Long: `Watch DIR for *.txt transcripts. Each created or modified transcript gets a
<name>.feedback.json report written next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchExisting bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", true, "Evaluate transcripts that have no report yet on startup")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	c, err := newCoach(cfg)
	if err != nil {
		return err
	}

	opts := watch.Options{
		MinWords:        cfg.MinWordCount(),
		ProcessExisting: watchExisting,
		Concurrency:     cfg.Concurrency,
		Logger:          log,
	}
	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		opts.OnReport = func(path string, report *types.Report) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
			printer.PrintReport(report)
		}
	}

	w, err := watch.New(args[0], c, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}
