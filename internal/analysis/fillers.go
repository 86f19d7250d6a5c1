package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/speech-coach/internal/types"
)

// detectFillers counts whole-word occurrences of each filler term in lower.
// words is the lower-cased token list used as the rate denominator.
func detectFillers(lower string, words []string, fillers []string) types.FillerResult {
	details := make(map[string]int)
	total := 0

	for _, filler := range fillers {
		if count := countWholeWord(lower, filler); count > 0 {
			details[filler] = count
			total += count
		}
	}

	return types.FillerResult{
		TotalFillers:      total,
		FillerDetails:     details,
		FillerRatePercent: round(ratio(total, len(words))*100, 2),
	}
}

// countWholeWord counts non-overlapping occurrences of term in text whose
// neighbouring runes are not word characters.
func countWholeWord(text, term string) int {
	if term == "" {
		return 0
	}

	count := 0
	for start := 0; start <= len(text)-len(term); {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			break
		}
		begin := start + idx
		end := begin + len(term)

		if atBoundary(text, begin, end) {
			count++
			start = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[begin:])
		start = begin + size
	}
	return count
}

// atBoundary reports whether text[begin:end] is delimited by non-word runes or the text edges
func atBoundary(text string, begin, end int) bool {
	if begin > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:begin])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
