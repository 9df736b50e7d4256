package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ── NewLogger ──────────────────────────────────────────────────────────────

// TestNewLogger_Fields verifies that entries carry the role, a timestamp and
// the "func" caller field.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("registry-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "registry-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestNewLogger_GlobalLevelIsDebug verifies that NewLogger sets the global
// zerolog level to Debug.
func TestNewLogger_GlobalLevelIsDebug(t *testing.T) {
	NewLogger("level-role")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// ── NewClientLogger ────────────────────────────────────────────────────────

// TestNewClientLogger_WritesToFile verifies that the client logger appends
// entries to the configured file and creates missing directories.
func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	l := NewClientLogger("registry-client", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"registry-client"`)
	assert.Contains(t, string(data), "to file")
}

// TestNewClientLogger_UnwritablePathDiscards verifies that an unusable path
// yields a working logger instead of a nil one.
func TestNewClientLogger_UnwritablePathDiscards(t *testing.T) {
	dir := t.TempDir()
	l := NewClientLogger("registry-client", dir) // a directory cannot be opened for writing
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info().Msg("dropped") })
}

// ── Nop ────────────────────────────────────────────────────────────────────

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// ── child loggers ──────────────────────────────────────────────────────────

// TestGetChildLogger_InheritsFields verifies that the child is a distinct
// instance which keeps the parent's context fields.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", decodeEntry(t, &buf)["role"])
}

// TestWithComponent_AddsField verifies the "component" tag.
func TestWithComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("client")
	l.Logger = l.Output(&buf)

	l.WithComponent("sweep").Info().Msg("tagged")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "sweep", entry["component"])
	assert.Equal(t, "client", entry["role"])
}

// ── context lookup ─────────────────────────────────────────────────────────

// TestFromContext_NotNil verifies that FromContext never returns nil, even
// when no logger has been attached to the context.
func TestFromContext_NotNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

// TestFromContext_ReturnsAttachedLogger verifies that FromContext returns the
// logger previously attached with zerolog's WithContext.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest reads the
// logger from the request context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeEntry(t, &buf)["req-key"])
}
