package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestNewEnvironmentLogger_Production(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := NewEnvironmentLogger("go-tours-server", "production")
	l.Logger = l.Output(&buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	l.Debug().Msg("tour cache refreshed")
	assert.Empty(t, buf.String(), "debug entries are dropped in production")

	l.Info().Str("address", ":3000").Msg("received configs")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "go-tours-server", entry["role"])
	assert.Equal(t, ":3000", entry["address"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestNewEnvironmentLogger_Development(t *testing.T) {
	l := NewEnvironmentLogger("go-tours-server", "development")
	require.NotNil(t, l)

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_EmitsJSONWithRole(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("go-tours-migrator")
	l.Logger = l.Output(&buf)

	l.Debug().Int("version", 3).Msg("migration applied")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "go-tours-migrator", entry["role"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["version"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

// A request logger carries its own fields without changing the
// application logger it was derived from.
func TestGetChildLogger_RequestFieldsStayOnChild(t *testing.T) {
	var buf bytes.Buffer
	app := &Logger{zerolog.New(&buf).With().Str("role", "go-tours-server").Logger()}

	child := app.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "trip-42")
	})

	child.Info().Msg("tour created")
	app.Info().Msg("server started")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var fromChild, fromApp map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &fromChild))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &fromApp))

	assert.Equal(t, "trip-42", fromChild["trace_id"])
	assert.Equal(t, "go-tours-server", fromChild["role"])
	assert.NotContains(t, fromApp, "trace_id")
}

func TestFromRequest_ReturnsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := &Logger{zerolog.New(&buf)}

	child := app.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "trip-43")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
	req = req.WithContext(child.WithContext(req.Context()))

	FromRequest(req).Warn().Msg("slow query")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "trip-43", entry["trace_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestFromContext_WithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)

	assert.NotPanics(t, func() { l.Info().Msg("no logger attached") })
}
