package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/speech-coach/internal/observability"
	"github.com/jonathan/speech-coach/internal/pipeline"
	"github.com/jonathan/speech-coach/internal/types"
	"github.com/jonathan/speech-coach/internal/watch"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Evaluate several transcript files concurrently",
	Long: `Evaluate each transcript file and write <name>.feedback.json into --out-dir,
or print a JSON array of results when no directory is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutputDir   string
	batchConcurrency int
)

// batchItem is one entry of the JSON array printed without --out-dir
type batchItem struct {
	File   string        `json:"file"`
	Report *types.Report `json:"report,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", "", "Directory for report files (default: print JSON to stdout)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Number of transcripts evaluated in parallel")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}

	c, err := newCoach(cfg)
	if err != nil {
		return err
	}

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := pipeline.EvaluateFiles(ctx, c, args, pipeline.Options{
		Concurrency: cfg.Concurrency,
		MinWords:    cfg.MinWordCount(),
		OnProgress: func(e pipeline.ProgressEvent) {
			entry := log.WithFields(logrus.Fields{"file": e.Name, "done": e.Done, "total": e.Total})
			if e.Error != "" {
				entry.WithField("error", e.Error).Warn("transcript failed")
				return
			}
			entry.Debug("transcript evaluated")
		},
	})
	if err != nil {
		return err
	}

	var outputs []string
	if batchOutputDir != "" {
		outputs = assignOutputs(results, batchOutputDir)
	}

	names := make([]string, len(results))
	reports := make([]*types.Report, len(results))
	errs := make([]error, len(results))
	items := make([]batchItem, len(results))
	for i, res := range results {
		names[i] = filepath.Base(res.Name)
		reports[i] = res.Report
		errs[i] = res.Err
		items[i] = batchItem{File: res.Name, Report: res.Report}
		if res.Err != nil {
			items[i].Error = res.Err.Error()
		}
	}

	if batchOutputDir != "" {
		for i, res := range results {
			if res.Err != nil {
				continue
			}
			out := outputs[i]
			if err := writeJSON(out, res.Report); err != nil {
				return err
			}
			if err := validateReportFile(cmd, out); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"file": names[i], "output": out}).Debug("wrote report")
		}
	} else {
		jsonBytes, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	}

	if cfg.Verbose || batchOutputDir != "" {
		observability.NewPrinter(verboseOut(cmd, batchOutputDir == "")).PrintBatchSummary(names, reports, errs)
	}

	if failed := pipeline.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d transcripts failed", len(failed), len(results))
	}
	return nil
}

// assignOutputs maps each successful result to a report file in dir.
// A result whose report name was already taken by an earlier file fails instead of overwriting it.
func assignOutputs(results []pipeline.Result, dir string) []string {
	outputs := make([]string, len(results))
	owners := make(map[string]string)
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		out := filepath.Join(dir, filepath.Base(watch.OutputPath(results[i].Name)))
		if owner, taken := owners[out]; taken {
			results[i].Report = nil
			results[i].Err = fmt.Errorf("output %s already used by %s", out, owner)
			continue
		}
		owners[out] = results[i].Name
		outputs[i] = out
	}
	return outputs
}

func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
