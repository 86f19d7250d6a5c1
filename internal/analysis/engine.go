// Package analysis computes the linguistic metrics of a discourse: basic statistics,
// sentiment, filler words, clarity and structure.
package analysis

import (
	"math"
	"strings"

	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/sentiment"
	"github.com/jonathan/speech-coach/internal/tokenize"
	"github.com/jonathan/speech-coach/internal/types"
)

// Engine runs the five analyses for one configured language.
// An Engine holds only read-only dependencies and is safe for concurrent use.
type Engine struct {
	tokenizer tokenize.Tokenizer
	pack      *lexicon.Pack
	estimator sentiment.Estimator
}

// NewEngine creates an Engine from explicit dependencies.
func NewEngine(tok tokenize.Tokenizer, pack *lexicon.Pack, est sentiment.Estimator) *Engine {
	return &Engine{tokenizer: tok, pack: pack, estimator: est}
}

// ForLanguage creates an Engine backed by the default tokenizer, the embedded
// lexicon pack and the VADER estimator for lang. Resolution errors are returned unchanged.
func ForLanguage(lang string) (*Engine, error) {
	pack, err := lexicon.Get(lang)
	if err != nil {
		return nil, err
	}
	return WithPack(pack)
}

// WithPack creates an Engine for a pack loaded elsewhere (e.g. from a custom file).
func WithPack(pack *lexicon.Pack) (*Engine, error) {
	tok, err := tokenize.ForLanguage(pack.Language)
	if err != nil {
		return nil, err
	}
	return NewEngine(tok, pack, sentiment.Default()), nil
}

// Language returns the language of the engine's lexicon pack
func (e *Engine) Language() string {
	return e.pack.Language
}

// Pack returns the engine's lexicon pack
func (e *Engine) Pack() *lexicon.Pack {
	return e.pack
}

// Analyze runs every analysis over text. It never fails: empty or degenerate
// input yields zero-valued metrics.
func (e *Engine) Analyze(text string) types.AnalysisBundle {
	lower := strings.ToLower(text)
	sentences := e.tokenizer.Sentences(text)
	lowerWords := e.tokenizer.Words(lower)

	return types.AnalysisBundle{
		Stats:     basicStats(lowerWords, sentences),
		Sentiment: e.sentiment(text, lowerWords),
		Fillers:   detectFillers(lower, lowerWords, e.pack.Fillers),
		Clarity:   clarity(e.tokenizer.Words(text), sentences),
		Structure: structure(sentences, e.pack.Transitions),
	}
}

// ratio returns num/den, or 0 when den is 0
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// round rounds half away from zero to the given number of decimals
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
