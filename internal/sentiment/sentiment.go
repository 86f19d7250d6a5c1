// Package sentiment provides the general-purpose polarity estimator used when a
// text contains no lexicon sentiment terms.
package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"
)

// Estimator returns a polarity in [-1, 1] for a text
type Estimator interface {
	Polarity(text string) float64
}

// EstimatorFunc adapts a function to the Estimator interface
type EstimatorFunc func(text string) float64

// Polarity calls f(text)
func (f EstimatorFunc) Polarity(text string) float64 {
	return f(text)
}

// Vader estimates polarity with the VADER compound score
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var (
	defaultVader     *Vader
	defaultVaderOnce sync.Once
)

// Default returns the process-wide VADER estimator, building it on first use.
func Default() *Vader {
	defaultVaderOnce.Do(func() {
		defaultVader = &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
	})
	return defaultVader
}

// Polarity returns the VADER compound score clamped to [-1, 1]
func (v *Vader) Polarity(text string) float64 {
	if text == "" {
		return 0
	}
	return Clamp(v.analyzer.PolarityScores(text).Compound)
}

// Clamp limits a polarity to [-1, 1].
func Clamp(p float64) float64 {
	if p < -1 {
		return -1
	}
	if p > 1 {
		return 1
	}
	return p
}
