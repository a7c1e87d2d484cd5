package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewWithWriter_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	log.Debug("hidden")
	log.Info("step advanced", "step", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "step advanced", entry["msg"])
	assert.EqualValues(t, 1, entry["step"])
}

func TestHashPII(t *testing.T) {
	assert.Empty(t, HashPII(""))
	assert.Len(t, HashPII("guest@example.com"), 12)
	assert.Equal(t, HashPII("Guest@Example.com "), HashPII("guest@example.com"))
	assert.NotEqual(t, HashPII("a@example.com"), HashPII("b@example.com"))
}
