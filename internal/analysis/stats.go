package analysis

import "github.com/jonathan/speech-coach/internal/types"

// basicStats counts words and sentences. words must already be lower-cased.
func basicStats(words, sentences []string) types.BasicStats {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	return types.BasicStats{
		WordCount:          len(words),
		SentenceCount:      len(sentences),
		AvgSentenceLength:  round(ratio(len(words), len(sentences)), 1),
		UniqueWords:        len(unique),
		VocabularyRichness: round(ratio(len(unique), len(words))*100, 1),
	}
}
