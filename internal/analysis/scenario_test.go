package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/tokenize"
	"github.com/jonathan/speech-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twelveWords = "The committee reviewed every budget line during the long afternoon meeting yesterday"

func TestForLanguage_TwelveWordSentence(t *testing.T) {
	e, err := ForLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, "en", e.Language())

	b := e.Analyze(twelveWords)

	assert.Equal(t, 12, b.Stats.WordCount)
	assert.Equal(t, 1, b.Stats.SentenceCount)
	assert.Equal(t, 12.0, b.Stats.AvgSentenceLength)
	assert.Equal(t, 0, b.Fillers.TotalFillers)
	assert.Equal(t, 0.0, b.Fillers.FillerRatePercent)
	assert.Equal(t, types.ClarityVeryClear, b.Clarity.ClarityLevel)
	assert.Equal(t, 9, b.Clarity.ClarityScore)
	assert.False(t, b.Structure.HasStructure)
	assert.Equal(t, 0.0, b.Structure.StructureScore)
	assert.Equal(t, 0.0, b.Sentiment.Subjectivity)
}

func TestForLanguage_FillerHeavyText(t *testing.T) {
	e, err := ForLanguage("en")
	require.NoError(t, err)

	text := strings.Repeat("um ", 6) + strings.TrimSpace(strings.Repeat("word ", 94))
	b := e.Analyze(text)

	assert.Equal(t, 100, b.Stats.WordCount)
	assert.Equal(t, 6, b.Fillers.TotalFillers)
	assert.Equal(t, map[string]int{"um": 6}, b.Fillers.FillerDetails)
	assert.Equal(t, 6.0, b.Fillers.FillerRatePercent)
}

func TestForLanguage_French(t *testing.T) {
	e, err := ForLanguage("fr")
	require.NoError(t, err)

	b := e.Analyze("Premièrement, euh, le projet est un échec. Ensuite, nous avons corrigé le problème.")
	assert.Equal(t, 2, b.Stats.SentenceCount)
	assert.Equal(t, 1, b.Fillers.FillerDetails["euh"])
	assert.Equal(t, 2, b.Structure.TransitionCount)
	assert.Equal(t, 10.0, b.Structure.StructureScore)
	assert.Equal(t, types.SentimentNegative, b.Sentiment.Sentiment)
	assert.Equal(t, -1.0, b.Sentiment.PolarityScore)
}

func TestForLanguage_Unknown(t *testing.T) {
	_, err := ForLanguage("xx")
	require.Error(t, err)
	var notFound *lexicon.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestWithPack_NoTokenizer(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "lexicon", "en.toml"))
	require.NoError(t, err)
	custom := strings.Replace(string(data), `language = "en"`, `language = "de"`, 1)

	p := filepath.Join(t.TempDir(), "de.toml")
	require.NoError(t, os.WriteFile(p, []byte(custom), 0644))
	pack, err := lexicon.LoadFile(p)
	require.NoError(t, err)

	_, err = WithPack(pack)
	require.Error(t, err)
	var unavailable *tokenize.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "de", unavailable.Language)
}
