//nolint:revive // types is a standard Go package name pattern
package types

// Feedback is the coaching record produced from an AnalysisBundle.
// The three lists keep rule insertion order and are never nil.
type Feedback struct {
	ScoreGlobal     float64  `json:"score_global"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// NewFeedback returns a Feedback with the given score and empty lists
func NewFeedback(score float64) Feedback {
	return Feedback{
		ScoreGlobal:     score,
		Strengths:       []string{},
		Improvements:    []string{},
		Recommendations: []string{},
	}
}

// Rating is a coarse label for the global score
type Rating string

// Ratings, best first
const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingNeedsImprovement Rating = "NeedsImprovement"
)

// Report bundles the metrics and the feedback for one discourse.
// It carries no identifiers or timestamps so identical input yields identical output.
type Report struct {
	Language string         `json:"language"`
	Rating   Rating         `json:"rating"`
	Analysis AnalysisBundle `json:"analysis"`
	Feedback Feedback       `json:"feedback"`
}
