// Package scoring combines analysis metrics into a single global score.
package scoring

import (
	"math"

	"github.com/jonathan/speech-coach/internal/types"
)

// Score weights. Clarity and structure dominate; fluency (absence of fillers) adjusts.
const (
	ClarityWeight   = 0.4
	StructureWeight = 0.4
	FluencyWeight   = 0.2

	// MaxFillerPenalty caps the fluency deduction
	MaxFillerPenalty = 3.0
	// FillerPenaltyDivisor converts a filler rate (percent) into penalty points
	FillerPenaltyDivisor = 2.0

	MinScore = 0.0
	MaxScore = 10.0
)

// Rating thresholds
const (
	ExcellentThreshold = 7.0
	GoodThreshold      = 5.0
)

// FillerPenalty returns the fluency deduction for a filler rate in percent
func FillerPenalty(ratePercent float64) float64 {
	return math.Min(MaxFillerPenalty, ratePercent/FillerPenaltyDivisor)
}

// ComputeGlobalScore returns the weighted global score in [0, 10], rounded to one decimal.
func ComputeGlobalScore(bundle types.AnalysisBundle) float64 {
	score := float64(bundle.Clarity.ClarityScore)*ClarityWeight +
		bundle.Structure.StructureScore*StructureWeight +
		(MaxScore-FillerPenalty(bundle.Fillers.FillerRatePercent))*FluencyWeight

	return round1(clamp(score, MinScore, MaxScore))
}

// Rate maps a global score to its rating band
func Rate(score float64) types.Rating {
	switch {
	case score >= ExcellentThreshold:
		return types.RatingExcellent
	case score >= GoodThreshold:
		return types.RatingGood
	default:
		return types.RatingNeedsImprovement
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round1 rounds half away from zero to one decimal
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
