package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestID(ctx)
	assert.False(t, ok, "empty context should have no request ID")

	ctx = WithRequestID(ctx, "abc123")
	id, ok := RequestID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestRequestIDHandler_InjectsAttribute(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestIDHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler)

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "resolving drug")

	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRequestIDHandler_NoIDNoAttribute(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestIDHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler)

	logger.InfoContext(context.Background(), "resolving drug")

	assert.NotContains(t, buf.String(), "request_id")
}

func TestWithDrug_AddsField(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	WithDrug("aspirin").Warn("unreadable sentiment document")

	assert.Contains(t, buf.String(), "drug_name=aspirin")
}

func TestWithError_AddsField(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	WithError(errors.New("rename failed")).Warn("cache entry not cleared")

	assert.Contains(t, buf.String(), "rename failed")
}
