//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedback_EmptyListsSerializeAsArrays(t *testing.T) {
	fb := NewFeedback(5.6)

	jsonBytes, err := json.Marshal(fb)
	require.NoError(t, err)

	s := string(jsonBytes)
	assert.Contains(t, s, `"score_global":5.6`)
	assert.Contains(t, s, `"strengths":[]`)
	assert.Contains(t, s, `"improvements":[]`)
	assert.Contains(t, s, `"recommendations":[]`)
}

func TestReport_JSONKeys(t *testing.T) {
	report := Report{
		Language: "en",
		Rating:   RatingGood,
		Analysis: AnalysisBundle{
			Fillers: FillerResult{FillerDetails: map[string]int{"like": 2}},
			Clarity: ClarityResult{ClarityLevel: ClarityVeryClear, ClarityScore: 9},
		},
		Feedback: NewFeedback(6),
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)

	s := string(jsonBytes)
	assert.Contains(t, s, `"rating": "Good"`)
	assert.Contains(t, s, `"stats": {`)
	assert.Contains(t, s, `"sentiment": {`)
	assert.Contains(t, s, `"clarity_level": "VeryClear"`)
	assert.Contains(t, s, `"like": 2`)
	assert.Contains(t, s, `"has_structure": false`)
}
