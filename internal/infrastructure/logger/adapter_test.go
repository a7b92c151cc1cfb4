package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestWriterAdapter_KeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriterAdapter(&buf, "info")
	require.NoError(t, err)

	log.Info("Routing query", "tool", "validation", "length", 12)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "Routing query", entries[0]["message"])
	assert.Equal(t, "validation", entries[0]["tool"])
	assert.EqualValues(t, 12, entries[0]["length"])
	assert.Contains(t, entries[0], "timestamp")
}

func TestWriterAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriterAdapter(&buf, "warn")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestWriterAdapter_InvalidLevel(t *testing.T) {
	_, err := NewWriterAdapter(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriterAdapter(&buf, "debug")
	require.NoError(t, err)

	child := log.WithFields(map[string]any{"project": "gs1-isa", "location": "us-east4"})
	child.Error("failed")
	log.Info("plain")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "gs1-isa", entries[0]["project"])
	assert.Equal(t, "us-east4", entries[0]["location"])
	assert.NotContains(t, entries[1], "project")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Wat_betekent_AI_01", sanitize("Wat betekent AI 01"))
	assert.Equal(t, "run", sanitize(""))
	assert.Len(t, sanitize(strings.Repeat("a", 100)), 60)
}
