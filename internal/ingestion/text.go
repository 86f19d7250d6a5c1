// Package ingestion reads transcripts from files, readers and web pages and
// normalizes them before analysis.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrEmptyText is returned when a transcript has no content after cleaning
	ErrEmptyText = errors.New("text is empty")
	// ErrTextTooShort is returned when a transcript has fewer words than required
	ErrTextTooShort = errors.New("text is too short")
)

// MaxFileSize caps the size of a transcript read from disk or a reader
const MaxFileSize = 5 << 20

var whitespaceRun = regexp.MustCompile(`\s+`)

// Document is a cleaned transcript with its provenance
type Document struct {
	Text     string
	Metadata *Metadata
}

// CleanText collapses every whitespace run (including line breaks) to a single
// space and trims the result.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))
}

// CountWords returns the number of whitespace-separated tokens in text
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CheckLength screens a transcript before analysis.
func CheckLength(text string, minWords int) error {
	n := CountWords(text)
	if n == 0 {
		return ErrEmptyText
	}
	if n < minWords {
		return fmt.Errorf("%w: %d words, at least %d required", ErrTextTooShort, n, minWords)
	}
	return nil
}

// FromFile reads and cleans a transcript file
func FromFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := FromReader(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	doc.Metadata.Path = path
	return doc, nil
}

// FromReader reads and cleans a transcript from r. name labels the source in metadata.
func FromReader(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("transcript exceeds %d bytes", MaxFileSize)
	}

	text := CleanText(string(data))
	meta := NewMetadata(text)
	meta.Name = name
	return &Document{Text: text, Metadata: meta}, nil
}
