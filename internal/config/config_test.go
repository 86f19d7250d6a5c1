package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	p := writeFile(t, "config.json", `{
		"language": "fr",
		"min_words": 20,
		"concurrency": 8,
		"log_format": "json",
		"verbose": true
	}`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "fr", cfg.Language)
	require.NotNil(t, cfg.MinWords)
	assert.Equal(t, 20, *cfg.MinWords)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	for _, ext := range []string{"yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			p := writeFile(t, "config."+ext, "language: en\nport: 9090\nlog_level: debug\nuse_browser: true\n")

			cfg, err := LoadConfig(p)
			require.NoError(t, err)
			assert.Equal(t, "en", cfg.Language)
			assert.Equal(t, 9090, cfg.Port)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.True(t, cfg.UseBrowser)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		expected string
	}{
		{"Invalid JSON", func(t *testing.T) string { return writeFile(t, "config.json", `{ invalid json }`) }, "failed to parse config JSON"},
		{"Invalid YAML", func(t *testing.T) string { return writeFile(t, "config.yaml", "port: [1, 2\n") }, "failed to parse config YAML"},
		{"File not found", func(*testing.T) string { return "/nonexistent/path/config.json" }, "failed to read config file"},
		{"Empty path", func(*testing.T) string { return "" }, "config path is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidate(t *testing.T) {
	lexicon := writeFile(t, "custom.toml", "language = \"en\"\n")

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"Defaults", Defaults(), ""},
		{"Empty", Config{}, ""},
		{"Existing lexicon", Config{LexiconFile: lexicon}, ""},
		{"Negative min words", Config{MinWords: IntPtr(-1)}, "'min_words' must be non-negative"},
		{"Concurrency too high", Config{Concurrency: 100}, "'concurrency' failed lte validation"},
		{"Port out of range", Config{Port: 70000}, "'port' failed lte validation"},
		{"Bad log level", Config{LogLevel: "loud"}, "'log_level' failed oneof validation"},
		{"Bad log format", Config{LogFormat: "xml"}, "'log_format' failed oneof validation"},
		{"Bad language", Config{Language: "e1"}, "'language' failed alpha validation"},
		{"Supported language any case", Config{Language: "FR"}, ""},
		{"Language without tokenizer", Config{Language: "xx"}, `tokenizer unavailable for language "xx"`},
		{"Missing lexicon", Config{LexiconFile: "/nonexistent/pack.toml"}, "lexicon file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Language: "fr", Concurrency: 2, Verbose: true}

	result := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "fr", result.Language)
	assert.Equal(t, 2, result.Concurrency)
	assert.Equal(t, 10, result.MinWordCount())
	assert.Equal(t, 8080, result.Port)
	assert.Equal(t, "info", result.LogLevel)
	assert.Equal(t, "text", result.LogFormat)
	assert.True(t, result.Verbose)

	// original is untouched
	assert.Nil(t, cfg.MinWords)
}

func TestMergeWithDefaults_ExplicitZeroMinWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		file    string
	}{
		{"JSON", `{"min_words": 0}`, "config.json"},
		{"YAML", "min_words: 0\n", "config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.NotNil(t, cfg.MinWords)

			result := cfg.MergeWithDefaults(Defaults())
			require.NotNil(t, result.MinWords)
			assert.Equal(t, 0, result.MinWordCount())
		})
	}
}

func TestMergeWithDefaults_DoesNotShareDefaults(t *testing.T) {
	defaults := Defaults()
	result := (&Config{}).MergeWithDefaults(defaults)
	*result.MinWords = 3
	assert.Equal(t, 10, defaults.MinWordCount())
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLanguage, "fr")
	t.Setenv(EnvMinWords, "25")
	t.Setenv(EnvPort, " 9000 ")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvConcurrency, "")

	cfg, err := FromEnv(Defaults())
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 25, cfg.MinWordCount())
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnv_ZeroMinWords(t *testing.T) {
	t.Setenv(EnvMinWords, "0")

	cfg, err := FromEnv(Config{})
	require.NoError(t, err)
	require.NotNil(t, cfg.MinWords)

	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, 0, merged.MinWordCount())
}

func TestFromEnv_InvalidInteger(t *testing.T) {
	t.Setenv(EnvPort, "eighty")

	_, err := FromEnv(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be an integer")
}
