package analysis

import (
	"math"

	"github.com/jonathan/speech-coach/internal/types"
)

const (
	// polarityThreshold separates Positive/Negative from Neutral (strict comparison)
	polarityThreshold = 0.2
	// subjectivityGain amplifies the density of sentiment terms
	subjectivityGain = 5.0
)

// sentiment scores polarity from the lexicon hits in words (lower-cased).
// The general-purpose estimator is consulted only when there are no hits at all.
func (e *Engine) sentiment(text string, words []string) types.SentimentResult {
	positive, negative := 0, 0
	for _, w := range words {
		if e.pack.IsPositive(w) {
			positive++
		}
		if e.pack.IsNegative(w) {
			negative++
		}
	}

	hits := positive + negative
	var polarity float64
	if hits > 0 {
		polarity = float64(positive-negative) / float64(hits)
	} else if e.estimator != nil {
		polarity = e.estimator.Polarity(text)
	}

	return types.SentimentResult{
		Sentiment:     classify(polarity),
		PolarityScore: round(polarity, 2),
		Subjectivity:  round(math.Min(1.0, ratio(hits, len(words))*subjectivityGain), 2),
	}
}

func classify(polarity float64) types.SentimentLabel {
	switch {
	case polarity > polarityThreshold:
		return types.SentimentPositive
	case polarity < -polarityThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
