package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/speech-coach/internal/ingestion"
	"github.com/jonathan/speech-coach/internal/observability"
	"github.com/jonathan/speech-coach/internal/schemas"
	embedded "github.com/jonathan/speech-coach/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate one transcript and print its feedback report",
	Long: `Evaluate a transcript read from a file (--in, "-" for stdin), a web page (--url)
or the command line (--text). The report is written as JSON to --out, or to stdout.
With --feedback-only only the feedback record (score and messages) is written.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeInputFile  string
	analyzeURL        string
	analyzeText       string
	analyzeOutputFile string
	analyzeUseBrowser bool
	analyzeFeedback   bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to transcript text file, or - for stdin")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL of a transcript page")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Transcript text")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeFeedback, "feedback-only", false, "Write only the feedback record instead of the full report")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Render transcript pages with headless Chrome when plain HTTP yields too little text")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}

	c, err := newCoach(cfg)
	if err != nil {
		return err
	}

	doc, err := readTranscript(cmd, cfg.UseBrowser, log)
	if err != nil {
		return err
	}
	if err := ingestion.CheckLength(doc.Text, cfg.MinWordCount()); err != nil {
		return err
	}

	report := c.Evaluate(doc.Text)
	log.WithFields(logrus.Fields{
		"language": c.Language(),
		"words":    report.Analysis.Stats.WordCount,
		"score":    report.Feedback.ScoreGlobal,
	}).Debug("evaluated transcript")

	var output any = report
	schemaName := embedded.Report
	validateOutput := schemas.ValidateReport
	if analyzeFeedback {
		output = report.Feedback
		schemaName = embedded.Feedback
		validateOutput = schemas.ValidateFeedback
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(verboseOut(cmd, analyzeOutputFile == "")).PrintReport(report)
	}

	if analyzeOutputFile == "" {
		if err := schemaResult(cmd, validateOutput(output)); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(analyzeOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := validateOutputFile(cmd, schemaName, analyzeOutputFile); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Score: %.1f/10 (%s)\n", report.Feedback.ScoreGlobal, report.Rating)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", analyzeOutputFile)
	return nil
}

// readTranscript loads the single transcript selected by --in, --url or --text
func readTranscript(cmd *cobra.Command, useBrowser bool, log logrus.FieldLogger) (*ingestion.Document, error) {
	sources := 0
	for _, set := range []bool{analyzeInputFile != "", analyzeURL != "", cmd.Flags().Changed("text")} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one of --in, --url or --text must be provided")
	}

	switch {
	case analyzeInputFile == "-":
		return ingestion.FromReader(cmd.InOrStdin(), "stdin")
	case analyzeInputFile != "":
		return ingestion.FromFile(analyzeInputFile)
	case analyzeURL != "":
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return ingestion.FromURL(ctx, analyzeURL, ingestion.URLOptions{UseBrowser: useBrowser, Logger: log})
	default:
		return ingestion.FromReader(strings.NewReader(analyzeText), "text")
	}
}

// validateReportFile checks a written report against schemas/report.schema.json
func validateReportFile(cmd *cobra.Command, path string) error {
	return validateOutputFile(cmd, embedded.Report, path)
}

// validateOutputFile checks a written file against schemas/<schemaName> when it can be found
// on disk, and against the embedded copy otherwise. Schema load problems are reported as warnings.
func validateOutputFile(cmd *cobra.Command, schemaName, path string) error {
	schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaName))
	if schemaPath != "" {
		return schemaResult(cmd, schemas.ValidateJSON(schemaPath, path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read output file: %w", err)
	}
	return schemaResult(cmd, schemas.ValidateEmbedded(schemaName, data))
}

func schemaResult(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
	return nil
}
