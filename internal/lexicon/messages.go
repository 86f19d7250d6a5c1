package lexicon

import (
	"fmt"
	"strings"
)

// Messages holds the feedback templates for one language.
// Templates use {{.Key}} placeholders filled by Format.
type Messages struct {
	LengthOK               string `toml:"length_ok"`
	LengthShort            string `toml:"length_short"`
	LengthShortAdvice      string `toml:"length_short_advice"`
	LengthLong             string `toml:"length_long"`
	LengthLongAdvice       string `toml:"length_long_advice"`
	TonePositive           string `toml:"tone_positive"`
	ToneNegative           string `toml:"tone_negative"`
	ToneNegativeAdvice     string `toml:"tone_negative_advice"`
	FillersFew             string `toml:"fillers_few"`
	FillersMany            string `toml:"fillers_many"`
	FillersManyAdvice      string `toml:"fillers_many_advice"`
	ClarityOK              string `toml:"clarity_ok"`
	ClarityPoor            string `toml:"clarity_poor"`
	ClarityPoorAdvice      string `toml:"clarity_poor_advice"`
	StructureOK            string `toml:"structure_ok"`
	StructureMissing       string `toml:"structure_missing"`
	StructureMissingAdvice string `toml:"structure_missing_advice"`
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// missing returns the TOML keys of empty templates
func (m Messages) missing() []string {
	fields := []struct {
		key   string
		value string
	}{
		{"length_ok", m.LengthOK},
		{"length_short", m.LengthShort},
		{"length_short_advice", m.LengthShortAdvice},
		{"length_long", m.LengthLong},
		{"length_long_advice", m.LengthLongAdvice},
		{"tone_positive", m.TonePositive},
		{"tone_negative", m.ToneNegative},
		{"tone_negative_advice", m.ToneNegativeAdvice},
		{"fillers_few", m.FillersFew},
		{"fillers_many", m.FillersMany},
		{"fillers_many_advice", m.FillersManyAdvice},
		{"clarity_ok", m.ClarityOK},
		{"clarity_poor", m.ClarityPoor},
		{"clarity_poor_advice", m.ClarityPoorAdvice},
		{"structure_ok", m.StructureOK},
		{"structure_missing", m.StructureMissing},
		{"structure_missing_advice", m.StructureMissingAdvice},
	}

	var keys []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			keys = append(keys, f.key)
		}
	}
	return keys
}
