package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConstCodeX/structurex/internal/engine"
)

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"simple map", map[string]string{"key": "value"}, "{\n  \"key\": \"value\"\n}"},
		{"empty map", map[string]string{}, "{}"},
		{"array", []string{"a", "b"}, "[\n  \"a\",\n  \"b\"\n]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatError(t *testing.T) {
	got := formatError(os.ErrNotExist)
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "file does not exist")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputJSON(&buf, map[string]int{"n": 1}))

	var v map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, 1, v["n"])
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		states []engine.ListedFile
		want   string
	}{
		{"single clean", []engine.ListedFile{{State: engine.FileClean}}, "1 file"},
		{
			"mixed",
			[]engine.ListedFile{{State: engine.FileClean}, {State: engine.FileModified}, {State: engine.FileMissing}},
			"3 files, 1 modified, 1 missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.states))
		})
	}
}

func TestPrintCount(t *testing.T) {
	assert.Equal(t, "1 action", PrintCount(1, "action", "actions"))
	assert.Equal(t, "0 actions", PrintCount(0, "action", "actions"))
}
