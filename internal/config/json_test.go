package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJSON_AllFields(t *testing.T) {
	// Arrange
	p := writeJSONFile(t, `{
		"app": { "version": "2.0.0", "log_file": "client.log" },
		"storage": { "db": { "dsn": "registry.db", "driver": "sqlite" } },
		"server": { "http_address": ":8080", "request_timeout": "15s" },
		"adapter": { "http_address": "localhost:8080", "request_timeout": 2000000000 },
		"sync": { "max_push_attempts": 3 },
		"workers": { "sync_interval": "45s" }
	}`)

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "client.log", cfg.App.LogFile)
	assert.Equal(t, "registry.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3, cfg.Sync.MaxPushAttempts)
	assert.Equal(t, 45*time.Second, cfg.Workers.SyncInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{ this is not json }`))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{ "workers": { "sync_interval": "not-a-duration" } }`))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_EmptyObject(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{}`))

	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

// ── Duration ───────────────────────────────────────────────────────────────

func TestDuration_RoundTrip(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(data))

	var d Duration
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, Duration(90*time.Second), d)
}

func TestDuration_RejectsBool(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
