package feedback

import (
	"strconv"

	"github.com/jonathan/speech-coach/internal/types"
)

// rule inspects one metric group and appends to fb
type rule func(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback)

// defaultRules are applied in this order, which fixes the order of every output list
var defaultRules = []rule{
	lengthRule,
	toneRule,
	fillerRule,
	clarityRule,
	structureRule,
}

func lengthRule(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback) {
	msgs := g.pack.Messages
	data := map[string]string{"Words": strconv.Itoa(bundle.Stats.WordCount)}

	switch n := bundle.Stats.WordCount; {
	case n < MinWords:
		fb.Improvements = append(fb.Improvements, g.render(msgs.LengthShort, data))
		fb.Recommendations = append(fb.Recommendations, msgs.LengthShortAdvice)
	case n > MaxWords:
		fb.Improvements = append(fb.Improvements, g.render(msgs.LengthLong, data))
		fb.Recommendations = append(fb.Recommendations, msgs.LengthLongAdvice)
	default:
		fb.Strengths = append(fb.Strengths, g.render(msgs.LengthOK, data))
	}
}

func toneRule(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback) {
	msgs := g.pack.Messages

	switch bundle.Sentiment.Sentiment {
	case types.SentimentPositive:
		fb.Strengths = append(fb.Strengths, msgs.TonePositive)
	case types.SentimentNegative:
		fb.Improvements = append(fb.Improvements, msgs.ToneNegative)
		fb.Recommendations = append(fb.Recommendations, msgs.ToneNegativeAdvice)
	}
}

func fillerRule(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback) {
	msgs := g.pack.Messages
	rate := bundle.Fillers.FillerRatePercent

	switch {
	case rate < LowFillerRate:
		fb.Strengths = append(fb.Strengths, msgs.FillersFew)
	case rate > HighFillerRate:
		fb.Improvements = append(fb.Improvements, g.render(msgs.FillersMany, map[string]string{"Rate": formatRate(rate)}))
		if len(bundle.Fillers.FillerDetails) > 0 {
			term := g.mostFrequentFiller(bundle.Fillers.FillerDetails)
			fb.Recommendations = append(fb.Recommendations, g.render(msgs.FillersManyAdvice, map[string]string{"Term": term}))
		}
	}
}

func clarityRule(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback) {
	msgs := g.pack.Messages
	data := map[string]string{"Level": g.pack.LevelLabel(string(bundle.Clarity.ClarityLevel))}

	if bundle.Clarity.ClarityScore >= GoodClarityScore {
		fb.Strengths = append(fb.Strengths, g.render(msgs.ClarityOK, data))
		return
	}
	fb.Improvements = append(fb.Improvements, g.render(msgs.ClarityPoor, data))
	fb.Recommendations = append(fb.Recommendations, msgs.ClarityPoorAdvice)
}

func structureRule(g *Generator, bundle types.AnalysisBundle, fb *types.Feedback) {
	msgs := g.pack.Messages

	if bundle.Structure.HasStructure {
		data := map[string]string{"Count": strconv.Itoa(bundle.Structure.TransitionCount)}
		fb.Strengths = append(fb.Strengths, g.render(msgs.StructureOK, data))
		return
	}
	fb.Improvements = append(fb.Improvements, msgs.StructureMissing)
	fb.Recommendations = append(fb.Recommendations, msgs.StructureMissingAdvice)
}
