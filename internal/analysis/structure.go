package analysis

import (
	"math"
	"strings"

	"github.com/jonathan/speech-coach/internal/types"
)

const (
	// transitionGain converts the share of sentences with a transition into a 0-10 score
	transitionGain = 20.0
	maxStructure   = 10.0
)

// structure counts sentences containing at least one transition marker (substring match)
func structure(sentences []string, transitions []string) types.StructureResult {
	found := 0
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, marker := range transitions {
			if strings.Contains(lower, marker) {
				found++
				break
			}
		}
	}

	score := math.Min(maxStructure, ratio(found, len(sentences))*transitionGain)

	return types.StructureResult{
		HasStructure:    found > 0,
		TransitionCount: found,
		StructureScore:  round(score, 1),
	}
}
