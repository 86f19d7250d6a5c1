package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/speech-coach/internal/coach"
	"github.com/jonathan/speech-coach/internal/config"
	"github.com/jonathan/speech-coach/internal/observability"
)

// Flags shared by every subcommand
var (
	configPath  string
	language    string
	lexiconFile string
	minWords    int
	logLevel    string
	logFormat   string
	verbose     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	flags.StringVarP(&language, "lang", "l", "", "Transcript language (en, fr)")
	flags.StringVar(&lexiconFile, "lexicon", "", "Path to a custom TOML lexicon pack")
	flags.IntVar(&minWords, "min-words", 0, "Minimum number of words required to evaluate a transcript")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadSettings resolves the configuration (file, then environment, then flags)
// and builds the logger. Logs go to the command's error stream.
func loadSettings(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, nil, err
		}
		cfg = *loaded
	}

	cfg, err := config.FromEnv(cfg)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language = language
	}
	if flags.Changed("lexicon") {
		cfg.LexiconFile = lexiconFile
	}
	if flags.Changed("min-words") {
		cfg.MinWords = config.IntPtr(minWords)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if cfg.Verbose && !flags.Changed("log-level") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return cfg, nil, err
	}
	if configPath != "" {
		log.WithField("path", configPath).Debug("loaded config")
	}
	return cfg, log, nil
}

// newCoach builds the coach for the configured language or custom lexicon pack
func newCoach(cfg config.Config) (*coach.Coach, error) {
	if cfg.LexiconFile != "" {
		return coach.FromPackFile(cfg.LexiconFile)
	}
	return coach.New(cfg.Language)
}

// verboseOut is where the verbose printer writes: stderr when stdout carries JSON
func verboseOut(cmd *cobra.Command, jsonOnStdout bool) io.Writer {
	if jsonOnStdout {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
