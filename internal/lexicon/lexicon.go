// Package lexicon provides the per-language word lists and feedback messages used by the analyzer.
// Packs are stored as TOML files and embedded at compile time.
package lexicon

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// DefaultLanguage is the language used when none is configured
const DefaultLanguage = "en"

//go:embed *.toml
var packFiles embed.FS

// cache stores parsed packs to avoid repeated TOML decoding
var (
	cache   = make(map[string]*Pack)
	cacheMu sync.RWMutex
)

// Pack holds the fixed lexicons for one language.
// A Pack returned by this package is shared and must be treated as read-only.
type Pack struct {
	Language    string            `toml:"language"`
	Name        string            `toml:"name"`
	Fillers     []string          `toml:"fillers"`
	Positive    []string          `toml:"positive"`
	Negative    []string          `toml:"negative"`
	Transitions []string          `toml:"transitions"`
	Levels      map[string]string `toml:"levels"`
	Messages    Messages          `toml:"messages"`

	positiveSet map[string]struct{}
	negativeSet map[string]struct{}
}

// NotFoundError is returned when no pack exists for a language
type NotFoundError struct {
	Language string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no lexicon pack for language %q", e.Language)
}

// InvalidPackError is returned when a pack fails to decode or is incomplete
type InvalidPackError struct {
	Source  string
	Message string
	Cause   error
}

func (e *InvalidPackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid lexicon pack %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid lexicon pack %s: %s", e.Source, e.Message)
}

func (e *InvalidPackError) Unwrap() error {
	return e.Cause
}

// NormalizeLanguage lower-cases a language tag and strips any region ("en-US" -> "en").
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

// Get returns the embedded pack for a language.
func Get(lang string) (*Pack, error) {
	lang = NormalizeLanguage(lang)
	if lang == "" {
		lang = DefaultLanguage
	}

	cacheMu.RLock()
	if pack, exists := cache[lang]; exists {
		cacheMu.RUnlock()
		return pack, nil
	}
	cacheMu.RUnlock()

	data, err := packFiles.ReadFile(lang + ".toml")
	if err != nil {
		return nil, &NotFoundError{Language: lang}
	}

	pack, err := decode(lang+".toml", data)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[lang] = pack
	cacheMu.Unlock()

	return pack, nil
}

// LoadFile decodes a pack from a TOML file on disk. The result is not cached.
func LoadFile(filePath string) (*Pack, error) {
	var pack Pack
	if _, err := toml.DecodeFile(filePath, &pack); err != nil {
		return nil, &InvalidPackError{Source: filePath, Message: "failed to decode", Cause: err}
	}
	if err := pack.finish(filePath); err != nil {
		return nil, err
	}
	return &pack, nil
}

// Languages returns the languages with an embedded pack, sorted.
func Languages() []string {
	entries, err := packFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) == ".toml" {
			langs = append(langs, strings.TrimSuffix(name, ".toml"))
		}
	}
	sort.Strings(langs)
	return langs
}

// ClearCache clears the pack cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*Pack)
	cacheMu.Unlock()
}

// IsPositive reports whether word is a positive sentiment term
func (p *Pack) IsPositive(word string) bool {
	_, ok := p.positiveSet[word]
	return ok
}

// IsNegative reports whether word is a negative sentiment term
func (p *Pack) IsNegative(word string) bool {
	_, ok := p.negativeSet[word]
	return ok
}

// LevelLabel returns the display label for a clarity level, defaulting to the level itself.
func (p *Pack) LevelLabel(level string) string {
	if label, ok := p.Levels[level]; ok && label != "" {
		return label
	}
	return level
}

func decode(source string, data []byte) (*Pack, error) {
	var pack Pack
	if _, err := toml.Decode(string(data), &pack); err != nil {
		return nil, &InvalidPackError{Source: source, Message: "failed to decode", Cause: err}
	}
	if err := pack.finish(source); err != nil {
		return nil, err
	}
	return &pack, nil
}

// finish validates the pack and builds the lookup sets
func (p *Pack) finish(source string) error {
	p.Language = NormalizeLanguage(p.Language)
	if p.Language == "" {
		return &InvalidPackError{Source: source, Message: "language is required"}
	}
	if len(p.Fillers) == 0 {
		return &InvalidPackError{Source: source, Message: "fillers must not be empty"}
	}
	if len(p.Transitions) == 0 {
		return &InvalidPackError{Source: source, Message: "transitions must not be empty"}
	}
	if missing := p.Messages.missing(); len(missing) > 0 {
		return &InvalidPackError{Source: source, Message: "missing messages: " + strings.Join(missing, ", ")}
	}

	p.Fillers = lowerAll(p.Fillers)
	p.Transitions = lowerAll(p.Transitions)
	p.positiveSet = toSet(p.Positive)
	p.negativeSet = toSet(p.Negative)
	return nil
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, term := range lowerAll(terms) {
		set[term] = struct{}{}
	}
	return set
}
