package fetch

import (
	"net/url"
	"strings"
)

// Source identifies a known transcript publisher.
type Source string

const (
	// SourceTED is ted.com talk transcripts
	SourceTED Source = "ted"
	// SourceRev is the rev.com transcript library
	SourceRev Source = "rev"
	// SourceAmericanRhetoric is the americanrhetoric.com speech bank
	SourceAmericanRhetoric Source = "americanrhetoric"
	// SourceUnknown is any other site
	SourceUnknown Source = "unknown"
)

// DetectSource identifies the transcript publisher from a URL.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "ted.com" || strings.HasSuffix(host, ".ted.com"):
		return SourceTED
	case host == "rev.com" || strings.HasSuffix(host, ".rev.com"):
		return SourceRev
	case strings.HasSuffix(host, "americanrhetoric.com"):
		return SourceAmericanRhetoric
	default:
		return SourceUnknown
	}
}

// SourceContentSelectors returns content selectors for a publisher.
func SourceContentSelectors(source Source) []string {
	switch source {
	case SourceTED:
		return []string{
			"[data-testid='transcript-text']",
			"#transcript",
			".transcript",
			"main",
		}
	case SourceRev:
		return []string{
			".fl-callout-text",
			".fl-rich-text",
			"#transcription",
			"article",
		}
	case SourceAmericanRhetoric:
		return []string{
			"td.moduletable",
			"table",
		}
	default:
		return TranscriptSelectors()
	}
}

// SourceNoiseSelectors returns elements to drop before extracting text.
func SourceNoiseSelectors(source Source) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".social-links",
		".cookie-consent",
		".gdpr-notice",
		".newsletter",
		".comments",
		"#comments",
	}

	switch source {
	case SourceTED:
		return append(common,
			".talk-sharing",
			"[data-testid='related-talks']",
		)
	case SourceRev:
		return append(common,
			".fl-cta-wrap",
			".timestamp",
		)
	default:
		return common
	}
}
