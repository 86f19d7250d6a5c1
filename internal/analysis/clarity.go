package analysis

import "github.com/jonathan/speech-coach/internal/types"

// clarityBands maps average sentence length to a clarity bucket.
// Bands are checked in order with a strict upper bound; the first match wins.
var clarityBands = []struct {
	below float64
	level types.ClarityLevel
	score int
}{
	{15, types.ClarityVeryClear, 9},
	{20, types.ClarityClear, 7},
	{25, types.ClarityModeratelyClear, 5},
}

// clarity estimates readability from sentence length on original-case tokens
func clarity(words, sentences []string) types.ClarityResult {
	avg := ratio(len(words), len(sentences))

	level, score := types.ClarityComplex, 3
	for _, band := range clarityBands {
		if avg < band.below {
			level, score = band.level, band.score
			break
		}
	}

	return types.ClarityResult{
		ClarityLevel:      level,
		ClarityScore:      score,
		AvgSentenceLength: round(avg, 1),
	}
}
