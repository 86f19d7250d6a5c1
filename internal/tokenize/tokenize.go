// Package tokenize adapts sentence and word segmentation for the configured language.
package tokenize

import (
	"fmt"
	"strings"
	"sync"

	prose "github.com/jdkato/prose/tokenize"
)

// Tokenizer splits text into ordered sentences and words.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Sentences(text string) []string
	Words(text string) []string
}

// UnavailableError is returned when no tokenizer can be provided for a language
type UnavailableError struct {
	Language string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tokenizer unavailable for language %q: %v", e.Language, e.Cause)
	}
	return fmt.Sprintf("tokenizer unavailable for language %q", e.Language)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// factories maps a language to the constructor of its tokenizer.
// The Punkt model shipped with prose is trained on English; French text
// segments correctly with it apart from a few French-only abbreviations.
var factories = map[string]func() (Tokenizer, error){
	"en": newPunkt,
	"fr": newPunkt,
}

type entry struct {
	once sync.Once
	tok  Tokenizer
	err  error
}

var (
	instances   = make(map[string]*entry)
	instancesMu sync.Mutex
)

// ForLanguage returns the process-wide tokenizer for a language, building it on first use.
func ForLanguage(lang string) (Tokenizer, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	factory, ok := factories[lang]
	if !ok {
		return nil, &UnavailableError{Language: lang}
	}

	instancesMu.Lock()
	e, ok := instances[lang]
	if !ok {
		e = &entry{}
		instances[lang] = e
	}
	instancesMu.Unlock()

	e.once.Do(func() {
		e.tok, e.err = factory()
	})
	if e.err != nil {
		return nil, &UnavailableError{Language: lang, Cause: e.err}
	}
	return e.tok, nil
}

// Supported reports whether a tokenizer is registered for a language
func Supported(lang string) bool {
	_, ok := factories[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// punkt pairs the Punkt sentence splitter with the Treebank word tokenizer,
// tokenizing words sentence by sentence.
type punkt struct {
	sentences *prose.PunktSentenceTokenizer
	words     *prose.TreebankWordTokenizer
}

func newPunkt() (tok Tokenizer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to load punkt model: %v", r)
		}
	}()
	return &punkt{
		sentences: prose.NewPunktSentenceTokenizer(),
		words:     prose.NewTreebankWordTokenizer(),
	}, nil
}

// Sentences returns the non-blank sentences of text in order
func (p *punkt) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	raw := p.sentences.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Words returns the word tokens of text, including punctuation tokens
func (p *punkt) Words(text string) []string {
	words := []string{}
	for _, sentence := range p.Sentences(text) {
		for _, w := range p.words.Tokenize(sentence) {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
	}
	return words
}
