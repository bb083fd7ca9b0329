package sentiment

import (
	"log/slog"

	"github.com/Austin-TB/RxU-backend/internal/metrics"
)

// Tier identifies one of the ordered data sources consulted during resolution.
type Tier string

const (
	TierCache    Tier = "cache"
	TierRemote   Tier = "remote"
	TierFallback Tier = "fallback"
	TierNone     Tier = "none"
)

// RemoteErrorKind classifies remote-tier failures. All of them degrade to the
// next tier; the kind only matters for diagnostics.
type RemoteErrorKind string

const (
	RemoteErrNotFound      RemoteErrorKind = "not_found"
	RemoteErrBucketMissing RemoteErrorKind = "bucket_missing"
	RemoteErrAccessDenied  RemoteErrorKind = "access_denied"
	RemoteErrUnavailable   RemoteErrorKind = "unavailable"
	RemoteErrMalformedBody RemoteErrorKind = "malformed_body"
	RemoteErrOther         RemoteErrorKind = "other"
)

// TierObserver receives structured resolution events. Injected so tests can
// assert which tier satisfied a request without parsing log output.
type TierObserver interface {
	ResolvedFrom(key string, tier Tier)
	ResolveMiss(key string)
	RemoteError(key string, kind RemoteErrorKind, err error)
	CacheWriteFailed(key string, err error)
}

// logObserver is the production observer: structured logs plus prometheus counters.
type logObserver struct{}

// NewLogObserver returns the default observer used outside tests.
func NewLogObserver() TierObserver {
	return logObserver{}
}

func (logObserver) ResolvedFrom(key string, tier Tier) {
	metrics.SentimentResolutionsTotal.WithLabelValues(string(tier), "hit").Inc()
	slog.Debug("Sentiment document resolved", "drug_key", key, "tier", tier)
}

func (logObserver) ResolveMiss(key string) {
	metrics.SentimentResolutionsTotal.WithLabelValues(string(TierNone), "miss").Inc()
	slog.Info("Sentiment document not found in any tier", "drug_key", key)
}

func (logObserver) RemoteError(key string, kind RemoteErrorKind, err error) {
	metrics.SentimentRemoteErrorsTotal.WithLabelValues(string(kind)).Inc()
	slog.Warn("Remote sentiment tier failed, falling through", "drug_key", key, "kind", kind, "error", err)
}

func (logObserver) CacheWriteFailed(key string, err error) {
	metrics.SentimentCacheWritesTotal.WithLabelValues("error").Inc()
	slog.Warn("Failed to populate sentiment cache", "drug_key", key, "error", err)
}
