package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Component: ComponentHTTP, Output: &buf})

	logger.With(FieldRequestID, "req_1").WithComponent(ComponentRegister).Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, ComponentRegister, lines[0][FieldComponent])
	assert.Equal(t, "req_1", lines[0][FieldRequestID])
	assert.Equal(t, 1, strings.Count(buf.String(), `"component"`))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLogSettlementLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf})
	sl := NewStructuredLogger(logger)

	sl.LogSettlement(context.Background(), "237", "500", "accepted", nil, NewFields().WithBreakdown("263.00", 5, "0.00"))
	assert.Empty(t, buf.String(), "accepted settlements log at debug")

	sl.LogSettlement(context.Background(), "NaN", "0", "rejected", []string{"invalid_bill_amount", "invalid_cash_amount"}, nil)
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "rejected", lines[0][FieldOutcome])
	assert.Equal(t, OpSettle, lines[0][FieldOperation])
	assert.Len(t, lines[0][FieldReasons], 2)
}

func TestFromContextFallback(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, "unknown", logger.Component())

	custom := New(DefaultConfig()).WithComponent(ComponentCLI)
	assert.Same(t, custom, FromContext(WithContext(context.Background(), custom)))
}
