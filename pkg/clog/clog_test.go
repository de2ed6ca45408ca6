package clog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAttributes(t *testing.T) {
	ctx := context.Background()
	AddAttribute(ctx, "ignored", 1)
	assert.Nil(t, GetAttributes(ctx))

	ctx = ContextWithSlog(ctx)
	AddAttribute(ctx, "ticket_id", int64(42))
	AddAttributes(ctx, map[string]any{
		"project_id": "p1",
		"nested":     map[string]any{"a": 1},
	})
	AddAttributes(ctx, map[string]any{"nested": map[string]any{"b": 2}})

	assert.Equal(t, int64(42), GetAttribute[int64](ctx, "ticket_id"))
	assert.Equal(t, "", GetAttribute[string](ctx, "ticket_id"))
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, GetAttributes(ctx)["nested"])

	err := errors.New("boom")
	AddError(ctx, err)
	assert.Equal(t, err, GetError(ctx))
}

func TestAttributesHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewAttributesHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := ContextWithSlog(context.Background())
	AddAttribute(ctx, "project_id", "p1")
	logger.InfoContext(ctx, "loaded", "count", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.Equal(t, "p1", rec["project_id"])
	assert.Equal(t, float64(3), rec["count"])
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTextHandler(&buf, WithColor(false), WithLevel(slog.LevelInfo)))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.With("project_id", "p1").Warn("ticket status commit failed",
		"ticket_id", 42,
		"status", "done",
		ErrorAttributeKey, "write failed",
	)
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN p1 42 \"ticket status commit failed\" \"write failed\"")
	assert.Equal(t, "    status=done", lines[1])
}

func TestLevels(t *testing.T) {
	assert.Equal(t, LevelInfo, HTTPStatusToLevel(http.StatusOK))
	assert.Equal(t, LevelWarn, HTTPStatusToLevel(http.StatusNotFound))
	assert.Equal(t, LevelError, HTTPStatusToLevel(http.StatusInternalServerError))
	assert.Equal(t, LevelInfo, ConnectCodeToLevel(connect.CodeNotFound))
	assert.Equal(t, LevelError, ConnectCodeToLevel(connect.CodeInternal))
}

func TestSlogChiMiddleware(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewAttributesHandler(slog.NewJSONHandler(&buf, nil))))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := SlogChiMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddAttribute(r.Context(), "ticket_id", 7)
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tickets/7", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/api/tickets/7", rec["procedure"])
	assert.Equal(t, float64(404), rec["status"])
	assert.Equal(t, float64(7), rec["ticket_id"])
}
