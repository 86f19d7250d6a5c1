package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speech-coach/internal/types"
)

func TestAnalyze_Text(t *testing.T) {
	stdout, _, err := execute(t, "", "analyze", "--text", sampleTranscript, "--min-words", "5")
	require.NoError(t, err)

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "en", report.Language)
	assert.Equal(t, 3, report.Analysis.Structure.TransitionCount)
	assert.Contains(t, report.Feedback.Strengths, "Good structure with 3 transitions")
}

func TestAnalyze_FileToOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "talk.txt", sampleTranscript)
	out := filepath.Join(dir, "talk.json")

	stdout, _, err := execute(t, "", "analyze", "--in", in, "--out", out, "--min-words", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Output: "+out)
	assert.Contains(t, stdout, "Score: ")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Greater(t, report.Analysis.Stats.WordCount, 20)
}

func TestAnalyze_Stdin(t *testing.T) {
	stdout, _, err := execute(t, "Premièrement, merci à tous. Ensuite, nous parlerons du projet.", "analyze", "--in", "-", "--lang", "fr", "--min-words", "5")
	require.NoError(t, err)

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "fr", report.Language)
}

func TestAnalyze_Verbose(t *testing.T) {
	stdout, stderr, err := execute(t, "", "analyze", "--text", sampleTranscript, "--min-words", "5", "--verbose")
	require.NoError(t, err)

	// JSON stays clean on stdout, the boxes go to stderr
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stderr, "STRENGTHS")
	assert.Contains(t, stderr, "METRICS")
}

func TestAnalyze_FeedbackOnly(t *testing.T) {
	stdout, _, err := execute(t, "", "analyze", "--text", sampleTranscript, "--min-words", "5", "--feedback-only")
	require.NoError(t, err)

	var fb types.Feedback
	require.NoError(t, json.Unmarshal([]byte(stdout), &fb))
	assert.Contains(t, fb.Strengths, "Good structure with 3 transitions")
	assert.NotContains(t, stdout, `"analysis"`)

	out := filepath.Join(t.TempDir(), "feedback.json")
	stdout, _, err = execute(t, "", "analyze", "--text", sampleTranscript, "--min-words", "5", "--feedback-only", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Output: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &fb))
	assert.GreaterOrEqual(t, fb.ScoreGlobal, 0.0)
}

func TestAnalyze_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "language: fr\nmin_words: 3\n")

	stdout, _, err := execute(t, "", "analyze", "--config", cfg, "--text", "Ensuite, nous parlerons.")
	require.NoError(t, err)

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "fr", report.Language)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"No input", []string{"analyze"}, "exactly one of --in, --url or --text"},
		{"Two inputs", []string{"analyze", "--text", "a", "--url", "http://example.com"}, "exactly one of --in, --url or --text"},
		{"Too short", []string{"analyze", "--text", "hello world"}, "too short"},
		{"Empty", []string{"analyze", "--text", "   "}, "text is empty"},
		{"Unknown language", []string{"analyze", "--text", sampleTranscript, "--lang", "xx"}, `tokenizer unavailable for language "xx"`},
		{"Missing file", []string{"analyze", "--in", "/nonexistent/talk.txt"}, "file not found"},
		{"Bad config", []string{"analyze", "--text", sampleTranscript, "--config", "/nonexistent/config.json"}, "failed to load config"},
		{"Bad log format", []string{"analyze", "--text", sampleTranscript, "--log-format", "xml"}, "'log_format' failed oneof validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestBatch_OutDir(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sampleTranscript)
	b := writeFile(t, dir, "b.txt", "too short")
	outDir := filepath.Join(dir, "reports")

	stdout, _, err := execute(t, "", "batch", a, b, "--out-dir", outDir, "--min-words", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 transcripts failed")
	assert.Contains(t, stdout, "1 evaluated, 1 failed")

	_, err = os.Stat(filepath.Join(outDir, "a.feedback.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "b.feedback.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatch_OutDirNameCollision(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, mkdir(t, dir, "monday"), "talk.txt", sampleTranscript)
	second := writeFile(t, mkdir(t, dir, "tuesday"), "talk.txt", "Firstly, hello everyone. Finally, thank you for listening today.")
	outDir := filepath.Join(dir, "reports")

	stdout, _, err := execute(t, "", "batch", first, second, "--out-dir", outDir, "--min-words", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 transcripts failed")
	assert.Contains(t, stdout, "✗ talk.txt")

	data, err := os.ReadFile(filepath.Join(outDir, "talk.feedback.json"))
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 3, report.Analysis.Structure.TransitionCount)
}

func TestAnalyze_MinWordsZeroDisablesScreen(t *testing.T) {
	_, _, err := execute(t, "", "analyze", "--text", "hello world")
	require.Error(t, err)

	stdout, _, err := execute(t, "", "analyze", "--text", "hello world", "--min-words", "0")
	require.NoError(t, err)

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 2, report.Analysis.Stats.WordCount)
}

func TestAnalyze_MinWordsZeroFromConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.json", `{"min_words": 0}`)

	stdout, _, err := execute(t, "", "analyze", "--config", cfg, "--text", "hello world")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestBatch_Stdout(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sampleTranscript)
	b := writeFile(t, dir, "b.txt", sampleTranscript)

	stdout, _, err := execute(t, "", "batch", a, b, "--min-words", "5", "-c", "2")
	require.NoError(t, err)

	var items []batchItem
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	require.Len(t, items, 2)
	assert.Equal(t, a, items[0].File)
	assert.Equal(t, b, items[1].File)
	assert.NotNil(t, items[0].Report)
	assert.Empty(t, items[1].Error)
}

func TestBatch_RequiresFiles(t *testing.T) {
	_, _, err := execute(t, "", "batch")
	assert.Error(t, err)
}

func TestLanguages(t *testing.T) {
	stdout, _, err := execute(t, "", "languages")
	require.NoError(t, err)
	assert.Contains(t, stdout, "en   English (default)")
	assert.Contains(t, stdout, "fr   Français")

	stdout, _, err = execute(t, "", "languages", "--json")
	require.NoError(t, err)
	var infos []types.LanguageInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	assert.Len(t, infos, 2)
}

func TestWatch_RequiresDirectory(t *testing.T) {
	_, _, err := execute(t, "", "watch", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat watch directory")
}
