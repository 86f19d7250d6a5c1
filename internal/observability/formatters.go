// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/speech-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Truncate shortens text to maxLen runes followed by "..." when it is longer.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen < 0 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, Truncate(line, boxWidth-7))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs the score, the feedback lists and the metric details of a report.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	fb := report.Feedback
	p.printBox("SCORE", fmt.Sprintf("%.1f / 10   %s   [%s]", fb.ScoreGlobal, report.Rating, report.Language))

	if len(fb.Strengths) > 0 {
		p.printBox("STRENGTHS", bulletList("✓", fb.Strengths))
	}
	if len(fb.Improvements) > 0 {
		p.printBox("IMPROVEMENTS", bulletList("⚠", fb.Improvements))
	}
	if len(fb.Recommendations) > 0 {
		p.printBox("RECOMMENDATIONS", bulletList("→", fb.Recommendations))
	}

	p.PrintAnalysis(&report.Analysis)
}

// PrintAnalysis outputs the metric details of an analysis bundle.
func (p *Printer) PrintAnalysis(a *types.AnalysisBundle) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Words:      %d (%d unique, %.1f%% richness)\n",
		a.Stats.WordCount, a.Stats.UniqueWords, a.Stats.VocabularyRichness))
	sb.WriteString(fmt.Sprintf("Sentences:  %d (avg %.1f words)\n", a.Stats.SentenceCount, a.Stats.AvgSentenceLength))
	sb.WriteString(fmt.Sprintf("Sentiment:  %s (polarity %.2f, subjectivity %.2f)\n",
		a.Sentiment.Sentiment, a.Sentiment.PolarityScore, a.Sentiment.Subjectivity))
	sb.WriteString(fmt.Sprintf("Clarity:    %s (%d/10)\n", a.Clarity.ClarityLevel, a.Clarity.ClarityScore))
	sb.WriteString(fmt.Sprintf("Structure:  %.1f/10 (%d transitions)\n", a.Structure.StructureScore, a.Structure.TransitionCount))
	sb.WriteString(fmt.Sprintf("Fillers:    %d (%.2f%%)", a.Fillers.TotalFillers, a.Fillers.FillerRatePercent))

	if len(a.Fillers.FillerDetails) > 0 {
		sb.WriteString("\n")
		terms := make([]string, 0, len(a.Fillers.FillerDetails))
		for term := range a.Fillers.FillerDetails {
			terms = append(terms, term)
		}
		// most frequent first, then alphabetical
		sort.Slice(terms, func(i, j int) bool {
			ci, cj := a.Fillers.FillerDetails[terms[i]], a.Fillers.FillerDetails[terms[j]]
			if ci != cj {
				return ci > cj
			}
			return terms[i] < terms[j]
		})

		count := min(len(terms), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("\n  • %q × %d", terms[i], a.Fillers.FillerDetails[terms[i]]))
		}
		if len(terms) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(terms)-maxItemsToShow))
		}
	}

	p.printBox("METRICS", sb.String())
}

// PrintBatchSummary outputs one line per evaluated document.
// reports and errs are indexed like names; a nil report means the document failed.
func (p *Printer) PrintBatchSummary(names []string, reports []*types.Report, errs []error) {
	if len(names) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for i, name := range names {
		switch {
		case i < len(errs) && errs[i] != nil:
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s: %s\n", Truncate(name, 20), errs[i]))
		case i < len(reports) && reports[i] != nil:
			sb.WriteString(fmt.Sprintf("✓ %s: %.1f %s\n", Truncate(name, 20), reports[i].Feedback.ScoreGlobal, reports[i].Rating))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d evaluated, %d failed", len(names)-failed, failed))

	p.printBox("BATCH SUMMARY", sb.String())
}

func bulletList(marker string, items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = marker + " " + item
	}
	return strings.Join(lines, "\n")
}
