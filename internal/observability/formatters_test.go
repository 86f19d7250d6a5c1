package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/speech-coach/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *types.Report {
	fb := types.NewFeedback(5.6)
	fb.Strengths = append(fb.Strengths, "Very few filler words", "Clear message (VeryClear)")
	fb.Improvements = append(fb.Improvements, "Discourse a bit short (12 words)", "Structure not very visible")
	fb.Recommendations = append(fb.Recommendations, "Develop your arguments further with concrete examples")

	return &types.Report{
		Language: "en",
		Rating:   types.RatingGood,
		Analysis: types.AnalysisBundle{
			Stats:     types.BasicStats{WordCount: 12, SentenceCount: 1, AvgSentenceLength: 12, UniqueWords: 11, VocabularyRichness: 91.7},
			Sentiment: types.SentimentResult{Sentiment: types.SentimentNeutral},
			Fillers: types.FillerResult{
				TotalFillers:      3,
				FillerDetails:     map[string]int{"um": 1, "like": 2},
				FillerRatePercent: 2.5,
			},
			Clarity: types.ClarityResult{ClarityLevel: types.ClarityVeryClear, ClarityScore: 9, AvgSentenceLength: 12},
		},
		Feedback: fb,
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "5.6 / 10   Good   [en]")
	assert.Contains(t, output, "STRENGTHS")
	assert.Contains(t, output, "✓ Very few filler words")
	assert.Contains(t, output, "⚠ Structure not very visible")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "Words:      12 (11 unique, 91.7% richness)")
	assert.Contains(t, output, "Fillers:    3 (2.50%)")

	// most frequent filler first
	assert.Less(t, strings.Index(output, `"like" × 2`), strings.Index(output, `"um" × 1`))
}

func TestPrintReport_EmptyListsOmitted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := sampleReport()
	report.Feedback = types.NewFeedback(0)
	p.PrintReport(report)

	assert.NotContains(t, buf.String(), "STRENGTHS")
	assert.NotContains(t, buf.String(), "IMPROVEMENTS")
	assert.Contains(t, buf.String(), "METRICS")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)
	p.PrintAnalysis(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary(
		[]string{"keynote.txt", "a-very-long-transcript-name.txt"},
		[]*types.Report{sampleReport(), nil},
		[]error{nil, errors.New("text is too short")},
	)
	output := buf.String()

	assert.Contains(t, output, "✓ keynote.txt: 5.6 Good")
	assert.Contains(t, output, "✗ a-very-long-transcri...: text is too short")
	assert.Contains(t, output, "1 evaluated, 1 failed")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{"Short", "hello", 10, "hello"},
		{"Exact", "hello", 5, "hello"},
		{"Long", "hello world", 5, "hello..."},
		{"Multibyte", "déjà vu", 4, "déjà..."},
		{"Negative", "hello", -1, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.text, tt.maxLen))
		})
	}
}
