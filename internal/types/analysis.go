// Package types provides type definitions for structured data used throughout the speech-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SentimentLabel classifies the overall polarity of a discourse
type SentimentLabel string

// Sentiment labels
const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// ClarityLevel is the discretized readability bucket derived from sentence length
type ClarityLevel string

// Clarity levels, from shortest to longest average sentence
const (
	ClarityVeryClear       ClarityLevel = "VeryClear"
	ClarityClear           ClarityLevel = "Clear"
	ClarityModeratelyClear ClarityLevel = "ModeratelyClear"
	ClarityComplex         ClarityLevel = "Complex"
)

// BasicStats holds word and sentence counts for a text
type BasicStats struct {
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	UniqueWords        int     `json:"unique_words"`
	VocabularyRichness float64 `json:"vocabulary_richness"` // percent of distinct words
}

// SentimentResult holds the lexicon-driven sentiment estimate
type SentimentResult struct {
	Sentiment     SentimentLabel `json:"sentiment"`
	PolarityScore float64        `json:"polarity_score"` // [-1, 1]
	Subjectivity  float64        `json:"subjectivity"`   // [0, 1]
}

// FillerResult holds filler word occurrences
type FillerResult struct {
	TotalFillers      int            `json:"total_fillers"`
	FillerDetails     map[string]int `json:"filler_details"` // only terms with a count > 0
	FillerRatePercent float64        `json:"filler_rate_percent"`
}

// ClarityResult holds the sentence-length based clarity estimate
type ClarityResult struct {
	ClarityLevel      ClarityLevel `json:"clarity_level"`
	ClarityScore      int          `json:"clarity_score"`
	AvgSentenceLength float64      `json:"avg_sentence_length"`
}

// StructureResult holds the transition-marker based structure estimate
type StructureResult struct {
	HasStructure    bool    `json:"has_structure"`
	TransitionCount int     `json:"transition_count"`
	StructureScore  float64 `json:"structure_score"` // [0, 10]
}

// AnalysisBundle is the complete output of the metrics engine for one text
type AnalysisBundle struct {
	Stats     BasicStats      `json:"stats"`
	Sentiment SentimentResult `json:"sentiment"`
	Fillers   FillerResult    `json:"fillers"`
	Clarity   ClarityResult   `json:"clarity"`
	Structure StructureResult `json:"structure"`
}
