package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/speech-coach/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"no scheme", "example.com"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromURL(context.Background(), tt.urlStr, URLOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
			var fetchErr *fetch.Error
			assert.ErrorAs(t, err, &fetchErr)
		})
	}
}

func TestFromURL_HTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Keynote</h1>
<div class="transcript">
<p>Firstly, thank you.</p>
<p>Finally, goodbye.</p>
</div>
</main>
<footer>Footer</footer>
</body>
</html>`))
	}))
	defer server.Close()

	doc, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Firstly, thank you. Finally, goodbye.", doc.Text)
	assert.Equal(t, server.URL, doc.Metadata.URL)
	assert.Equal(t, string(fetch.SourceUnknown), doc.Metadata.Source)
	assert.False(t, doc.Metadata.Rendered)
	assert.Equal(t, 5, doc.Metadata.WordCount)
}

func TestFromURL_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("<b>not html</b>\n\nplain   words"))
	}))
	defer server.Close()

	doc, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<b>not html</b> plain words", doc.Text)
}

func TestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
	assert.Contains(t, err.Error(), "404")
}

func TestFromURL_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := FromURL(context.Background(), url, URLOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}
