package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("debug", "json", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("language", "en").Debug("analyzed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analyzed", entry["msg"])
	assert.Equal(t, "en", entry["language"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewLogger_TextDefaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("loud", "text", nil)
	assert.ErrorContains(t, err, "invalid log level")

	_, err = NewLogger("info", "xml", nil)
	assert.ErrorContains(t, err, "invalid log format")
}
