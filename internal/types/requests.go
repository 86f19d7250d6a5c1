//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBatchItems is the maximum number of texts accepted in one batch request
const MaxBatchItems = 50

// validate is shared; validator caches struct metadata and is safe for concurrent use.
// Field names in errors use the JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AnalyzeRequest represents the request to analyze a single discourse.
type AnalyzeRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en fr"`
}

// AnalyzeResponse wraps the report of a single analysis.
type AnalyzeResponse struct {
	RequestID string  `json:"request_id,omitempty"`
	Report    *Report `json:"report"`
}

// BatchRequest represents the request to analyze several discourses at once.
type BatchRequest struct {
	Items []AnalyzeRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

// BatchItemResult holds either a report or an error message for one batch item.
type BatchItemResult struct {
	Index  int     `json:"index"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// BatchResponse represents the response for a batch request.
type BatchResponse struct {
	RequestID string            `json:"request_id,omitempty"`
	Results   []BatchItemResult `json:"results"`
}

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validate.Struct(r)
}
