// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/speech-coach/internal/tokenize"
)

// Environment variables overlaid by FromEnv
const (
	EnvLanguage    = "SPEECH_COACH_LANGUAGE"
	EnvLexiconFile = "SPEECH_COACH_LEXICON"
	EnvMinWords    = "SPEECH_COACH_MIN_WORDS"
	EnvConcurrency = "SPEECH_COACH_CONCURRENCY"
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	Language    string `json:"language,omitempty" yaml:"language,omitempty" validate:"omitempty,alpha,min=2,max=3"`
	LexiconFile string `json:"lexicon_file,omitempty" yaml:"lexicon_file,omitempty"` // Custom TOML lexicon pack
	MinWords    *int   `json:"min_words,omitempty" yaml:"min_words,omitempty" validate:"omitempty,gte=0"` // nil uses the default; 0 disables the length screen
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0,lte=64"`

	Port      int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Render transcript pages with a headless browser
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print detailed debug information
}

var validate = validator.New()

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Language:    "en",
		MinWords:    IntPtr(10),
		Concurrency: 4,
		Port:        8080,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}

// MinWordCount returns the configured minimum word count, or 0 when unset.
func (c *Config) MinWordCount() int {
	if c.MinWords == nil {
		return 0
	}
	return *c.MinWords
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; they are handled after merging with defaults.
func (c *Config) Validate() error {
	if c.MinWords != nil && *c.MinWords < 0 {
		return fmt.Errorf("config error: 'min_words' must be non-negative")
	}

	if err := validate.Struct(c); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return fmt.Errorf("config error: '%s' failed %s validation (got %v)", jsonName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Language != "" && !tokenize.Supported(c.Language) {
		return fmt.Errorf("config error: %w", &tokenize.UnavailableError{Language: strings.ToLower(c.Language)})
	}

	if c.LexiconFile != "" {
		if _, err := os.Stat(c.LexiconFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.LexiconFile == "" {
		result.LexiconFile = defaults.LexiconFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.MinWords == nil && defaults.MinWords != nil {
		result.MinWords = IntPtr(*defaults.MinWords)
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv overlays environment variables onto cfg.
func FromEnv(cfg Config) (Config, error) {
	if v, ok := lookup(EnvLanguage); ok {
		cfg.Language = v
	}
	if v, ok := lookup(EnvLexiconFile); ok {
		cfg.LexiconFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v, ok := lookup(EnvMinWords); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config error: %s must be an integer: %w", EnvMinWords, err)
		}
		cfg.MinWords = IntPtr(n)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvConcurrency, &cfg.Concurrency},
		{EnvPort, &cfg.Port},
	}
	for _, entry := range ints {
		v, ok := lookup(entry.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config error: %s must be an integer: %w", entry.key, err)
		}
		*entry.dst = n
	}

	return cfg, nil
}

// lookup returns a trimmed, non-empty environment value
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func jsonName(field string) string {
	switch field {
	case "LexiconFile":
		return "lexicon_file"
	case "MinWords":
		return "min_words"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "UseBrowser":
		return "use_browser"
	default:
		return strings.ToLower(field)
	}
}
