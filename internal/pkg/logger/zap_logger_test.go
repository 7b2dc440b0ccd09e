package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	l := NewZapLogger(path, true)

	l.Debug("FSM", "not in file", nil)
	l.Info("RENDER", "Slip rendered", map[string]interface{}{"artifact_id": "a1"})
	l.Error("CLEANUP", "Failed to delete artifact", map[string]interface{}{"error": "boom"})
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 2, "debug stays on the console")
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "RENDER", lines[0]["module"])
	assert.Equal(t, "Slip rendered", lines[0]["message"])
	assert.Equal(t, map[string]interface{}{"artifact_id": "a1"}, lines[0]["details"])
	assert.Contains(t, lines[0], "timestamp")

	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error_ref"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()

	assert.NotPanics(t, func() {
		l.Warn("ASSETS", "ignored", nil)
		_ = l.Sync()
	})
}
