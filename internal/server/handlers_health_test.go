package server

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockSentimentService{})

	c, rec := getRequest(srv, "/health/live")
	require.NoError(t, srv.handleLiveness(c))

	assert.Equal(t, 200, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")
}

func TestHandleReadiness_Ready(t *testing.T) {
	srv := newTestServer(t, &mockSentimentService{})

	c, rec := getRequest(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestHandleReadiness_MissingCacheDir(t *testing.T) {
	srv := newTestServer(t, &mockSentimentService{})
	require.NoError(t, os.RemoveAll(srv.config.CacheDir))

	c, rec := getRequest(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, 503, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "cache_dir", body["failed_check"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, &mockSentimentService{})

	c, rec := getRequest(srv, "/version")
	require.NoError(t, srv.handleVersion(c))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "version")
}
