package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "drug-dashboard", cfg.S3Bucket)
	assert.Equal(t, "agg/", cfg.S3KeyPrefix)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.HasAWSCredentials())
}

func TestLoad_CredentialsMustPair(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CredentialsConfigured(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasAWSCredentials())
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("S3_REQUEST_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AllowedOriginsList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://rxu.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://rxu.example.com"}, cfg.AllowedOrigins)
}
