// Package feedback turns an analysis bundle into strengths, improvements and
// recommendations using an ordered set of rules.
package feedback

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/scoring"
	"github.com/jonathan/speech-coach/internal/types"
)

// Thresholds used by the rules
const (
	MinWords = 100
	MaxWords = 500

	// LowFillerRate and HighFillerRate bound the filler rate (percent); values in between yield nothing
	LowFillerRate  = 2.0
	HighFillerRate = 5.0

	// GoodClarityScore is the lowest clarity score reported as a strength
	GoodClarityScore = 7
)

// Generator produces feedback records from analysis bundles.
// It holds only read-only data and is safe for concurrent use.
type Generator struct {
	pack  *lexicon.Pack
	rules []rule
}

// NewGenerator creates a Generator rendering messages from pack
func NewGenerator(pack *lexicon.Pack) *Generator {
	return &Generator{pack: pack, rules: defaultRules}
}

// Generate computes the global score and applies every rule in order.
// The returned lists are never nil.
func (g *Generator) Generate(bundle types.AnalysisBundle) types.Feedback {
	fb := types.NewFeedback(scoring.ComputeGlobalScore(bundle))
	for _, r := range g.rules {
		r(g, bundle, &fb)
	}
	return fb
}

func (g *Generator) render(template string, data map[string]string) string {
	return lexicon.Format(template, data)
}

// mostFrequentFiller returns the filler with the highest count. Ties go to the
// term declared first in the pack; terms unknown to the pack are considered last, sorted.
func (g *Generator) mostFrequentFiller(details map[string]int) string {
	best, bestCount := "", 0
	consider := func(term string) {
		if count := details[term]; count > bestCount {
			best, bestCount = term, count
		}
	}

	known := make(map[string]struct{}, len(g.pack.Fillers))
	for _, term := range g.pack.Fillers {
		known[term] = struct{}{}
		consider(term)
	}

	var extra []string
	for term := range details {
		if _, ok := known[term]; !ok {
			extra = append(extra, term)
		}
	}
	sort.Strings(extra)
	for _, term := range extra {
		consider(term)
	}
	return best
}

// formatRate prints a rate in its shortest form keeping at least one decimal ("6" -> "6.0")
func formatRate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
