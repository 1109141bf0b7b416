package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	inner := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(&contextHandler{inner: inner})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	return fields
}

func TestContextHandlerInjectsMeta(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := WithRID(context.Background(), "7:100:200")
	ctx = WithUpdateMeta(ctx, 7, 200, 100)
	ctx = WithHandler(ctx, "wallet")

	log.LogAttrs(ctx, slog.LevelInfo, "handler.handled", slog.String("status", "ok"))

	fields := decodeLine(t, &buf)
	assert.Equal(t, "7:100:200", fields["rid"])
	assert.Equal(t, float64(7), fields["update_id"])
	assert.Equal(t, float64(200), fields["user_id"])
	assert.Equal(t, float64(100), fields["chat_id"])
	assert.Equal(t, "wallet", fields["handler"])
	assert.Equal(t, "ok", fields["status"])
}

func TestContextHandlerKeepsExplicitAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := WithRID(context.Background(), "from-context")
	log.LogAttrs(ctx, slog.LevelInfo, "event", slog.String("rid", "explicit"))

	fields := decodeLine(t, &buf)
	assert.Equal(t, "explicit", fields["rid"])
}

func TestContextHandlerWithoutContextMeta(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.LogAttrs(context.Background(), slog.LevelInfo, "event")

	fields := decodeLine(t, &buf)
	_, hasRID := fields["rid"]
	assert.False(t, hasRID)
}

func TestSanitizeLimit(t *testing.T) {
	assert.Equal(t, "abc", SanitizeLimit("abc\x00\x1b", 10))
	assert.Equal(t, "ab", SanitizeLimit("abcdef", 2))
	assert.Equal(t, "", SanitizeLimit("abc", 0))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	allowed := 0
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)
}
