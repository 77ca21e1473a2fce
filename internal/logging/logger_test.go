package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    Level
		wantErr bool
	}{
		{raw: "", want: LevelInfo},
		{raw: "DEBUG", want: LevelDebug},
		{raw: "warning", want: LevelWarn},
		{raw: " error ", want: LevelError},
		{raw: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLevel(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "json", LevelInfo).With("gameweek", 12)

	logger.Debug("hidden")
	logger.Warn("player not found", "name", "Sels", "error", errors.New("lookup miss"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "player not found", entry["msg"])
	assert.Equal(t, "Sels", entry["name"])
	assert.Equal(t, "lookup miss", entry["error"])
	assert.EqualValues(t, 12, entry["gameweek"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored", "k", "v")
	assert.NoError(t, logger.Sync())
	assert.NotNil(t, logger.With("k", "v"))
}
