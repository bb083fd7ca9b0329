package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// Sentiment cache tiers
	CacheDir    string
	FallbackDir string

	// Drug catalog
	DrugDataCSV string

	// Remote sentiment store (S3). Credentials are optional: without them
	// the remote tier is simply never consulted.
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3KeyPrefix        string
	S3RequestTimeout   time.Duration

	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		CacheDir:           getEnv("SENTIMENT_CACHE_DIR", "data/cache/sentiment"),
		FallbackDir:        getEnv("SENTIMENT_FALLBACK_DIR", "data/agg/daily"),
		DrugDataCSV:        getEnv("DRUG_DATA_CSV", "data/drugs.csv"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:           getEnv("S3_BUCKET_NAME", "drug-dashboard"),
		S3KeyPrefix:        getEnv("S3_KEY_PREFIX", "agg/"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	timeout, err := time.ParseDuration(getEnv("S3_REQUEST_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("S3_REQUEST_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("S3_REQUEST_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.S3RequestTimeout = timeout

	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("SENTIMENT_CACHE_DIR is required")
	}

	// Credentials only make sense as a pair
	if (cfg.AWSAccessKeyID == "") != (cfg.AWSSecretAccessKey == "") {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}

	return cfg, nil
}

// HasAWSCredentials reports whether the remote sentiment tier is configured.
func (c *Config) HasAWSCredentials() bool {
	return c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
