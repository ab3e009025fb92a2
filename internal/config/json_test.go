package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations in JSON may be strings like "30s" or raw nanosecond numbers.
	jsonBody := `{
		"app": { "version": "0.3.0" },
		"registry": {
			"host": "127.0.0.1",
			"namespace_server_port": 18861
		},
		"session": {
			"sync_request_timeout": "1h",
			"connection_file": "/tmp/conn.json"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.3.0", cfg.App.Version)
	assert.Equal(t, "127.0.0.1", cfg.Registry.Host)
	assert.Equal(t, 18861, cfg.Registry.NamespacePort)
	assert.Equal(t, time.Hour, cfg.Session.SyncRequestTimeout)
	assert.Equal(t, "/tmp/conn.json", cfg.Session.ConnectionFile)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"registry": `), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

// TestDuration_UnmarshalJSON covers the three accepted duration encodings:
// duration strings, raw nanosecond numbers, and rejection of other types.
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "duration string", input: `"90m"`, expected: 90 * time.Minute},
		{name: "nanosecond number", input: `1000000000`, expected: time.Second},
		{name: "invalid string", input: `"not-a-duration"`, wantErr: true},
		{name: "wrong type", input: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(30 * time.Second)

	raw, err := d.MarshalJSON()

	require.NoError(t, err)
	assert.JSONEq(t, `"30s"`, string(raw))
}
