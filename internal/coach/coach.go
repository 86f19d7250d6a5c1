// Package coach composes the metrics engine and the feedback generator into a
// single text-in, report-out entry point.
package coach

import (
	"github.com/jonathan/speech-coach/internal/analysis"
	"github.com/jonathan/speech-coach/internal/feedback"
	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/scoring"
	"github.com/jonathan/speech-coach/internal/types"
)

// Coach evaluates discourses in one language. It is safe for concurrent use.
type Coach struct {
	engine    *analysis.Engine
	generator *feedback.Generator
}

// New creates a Coach for a language using the embedded lexicon pack
func New(lang string) (*Coach, error) {
	engine, err := analysis.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	return FromEngine(engine), nil
}

// FromPackFile creates a Coach from a custom lexicon pack on disk
func FromPackFile(path string) (*Coach, error) {
	pack, err := lexicon.LoadFile(path)
	if err != nil {
		return nil, err
	}
	engine, err := analysis.WithPack(pack)
	if err != nil {
		return nil, err
	}
	return FromEngine(engine), nil
}

// FromEngine wraps an existing engine, rendering feedback from the engine's pack
func FromEngine(engine *analysis.Engine) *Coach {
	return &Coach{
		engine:    engine,
		generator: feedback.NewGenerator(engine.Pack()),
	}
}

// Language returns the coach's language
func (c *Coach) Language() string {
	return c.engine.Language()
}

// Pack returns the lexicon pack feedback is rendered from
func (c *Coach) Pack() *lexicon.Pack {
	return c.engine.Pack()
}

// Analyze returns only the metrics for text
func (c *Coach) Analyze(text string) types.AnalysisBundle {
	return c.engine.Analyze(text)
}

// Evaluate analyzes text and synthesizes feedback. It never fails; callers
// screen empty or too-short input beforehand.
func (c *Coach) Evaluate(text string) *types.Report {
	bundle := c.engine.Analyze(text)
	fb := c.generator.Generate(bundle)

	return &types.Report{
		Language: c.engine.Language(),
		Rating:   scoring.Rate(fb.ScoreGlobal),
		Analysis: bundle,
		Feedback: fb,
	}
}
