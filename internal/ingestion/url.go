package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/speech-coach/internal/fetch"
	"github.com/sirupsen/logrus"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be retrieved
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures FromURL
type URLOptions struct {
	// UseBrowser renders the page in headless Chrome when plain HTTP yields too little text
	UseBrowser bool
	Fetch      *fetch.Options
	Logger     logrus.FieldLogger
}

// FromURL fetches a transcript page and returns its cleaned text.
// Plain-text responses are used as-is; HTML is reduced with publisher-specific selectors.
// A failed browser rendering falls back to the HTTP content.
func FromURL(ctx context.Context, urlStr string, opts URLOptions) (*Document, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	source := fetch.DetectSource(urlStr)
	log = log.WithFields(logrus.Fields{"url": urlStr, "source": source})

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.WithField("bytes", len(result.HTML)).Debug("fetched page")

	rendered := false
	var text string
	if fetch.IsPlainText(result.ContentType) {
		text = result.HTML
	} else {
		contentSelectors := fetch.SourceContentSelectors(source)
		noiseSelectors := fetch.SourceNoiseSelectors(source)

		text, err = fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}

		if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
			log.WithField("chars", len(text)).Debug("content too short, rendering with browser")
			html, browserErr := fetch.BrowserSimple(ctx, urlStr, log)
			if browserErr != nil {
				log.WithError(browserErr).Warn("browser rendering failed, using HTTP content")
			} else if browserText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr != nil {
				log.WithError(extractErr).Warn("browser content extraction failed")
			} else {
				text = browserText
				rendered = true
			}
		}
	}

	cleaned := CleanText(text)
	meta := NewMetadata(cleaned)
	meta.URL = urlStr
	meta.Source = string(source)
	meta.Rendered = rendered
	log.WithField("words", meta.WordCount).Debug("extracted transcript")

	return &Document{Text: cleaned, Metadata: meta}, nil
}
