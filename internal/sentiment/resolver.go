package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/metrics"
)

const documentExt = ".json"

// remoteState is the lifetime state of the remote tier, decided once at
// construction. A missing or broken configuration never recovers within the
// process; the tier just stays dark.
type remoteState int

const (
	remoteUnconfigured remoteState = iota
	remoteConfigured
	remoteFailed
)

// RemoteTier is the explicit three-state remote configuration.
type RemoteTier struct {
	state remoteState
	store domain.ObjectStore
}

// RemoteDisabled returns a remote tier that is never consulted (no credentials).
func RemoteDisabled() RemoteTier {
	return RemoteTier{state: remoteUnconfigured}
}

// RemoteEnabled returns a remote tier backed by the given object store.
func RemoteEnabled(store domain.ObjectStore) RemoteTier {
	if store == nil {
		return RemoteDisabled()
	}
	return RemoteTier{state: remoteConfigured, store: store}
}

// RemoteBroken returns a remote tier whose client construction failed.
// Distinct from disabled only for diagnostics; both short-circuit to a miss.
func RemoteBroken() RemoteTier {
	return RemoteTier{state: remoteFailed}
}

// resolver walks the three tiers for a normalized drug key.
type resolver struct {
	cacheDir    string
	fallbackDir string
	keyPrefix   string
	remote      RemoteTier
	timeout     time.Duration
	observer    TierObserver
}

// resolve returns the document bytes for key and the tier that supplied them.
// Strict order, first success wins. A remote or fallback hit populates the
// local cache; population failure degrades to serving the source bytes directly.
func (r *resolver) resolve(ctx context.Context, key string) ([]byte, Tier, bool) {
	timer := time.Now()
	defer func() {
		metrics.SentimentResolveDuration.Observe(time.Since(timer).Seconds())
	}()

	// Tier 1: local cache. Presence is the only validity signal.
	cachePath := r.cachePath(key)
	if data, err := os.ReadFile(cachePath); err == nil {
		r.observer.ResolvedFrom(key, TierCache)
		return data, TierCache, true
	}

	// Tier 2: remote object store.
	if data, ok := r.fetchRemote(ctx, key); ok {
		r.writeCache(key, data)
		r.observer.ResolvedFrom(key, TierRemote)
		return data, TierRemote, true
	}

	// Tier 3: bundled fallback dataset.
	fallbackPath := filepath.Join(r.fallbackDir, key+documentExt)
	if r.fallbackDir != "" {
		if data, err := os.ReadFile(fallbackPath); err == nil {
			r.writeCache(key, data)
			r.observer.ResolvedFrom(key, TierFallback)
			return data, TierFallback, true
		}
	}

	r.observer.ResolveMiss(key)
	return nil, TierNone, false
}

// fetchRemote requests {prefix}{key}.json from the object store. Every failure
// shape maps to a diagnostic event and a fall-through; nothing propagates.
func (r *resolver) fetchRemote(ctx context.Context, key string) ([]byte, bool) {
	switch r.remote.state {
	case remoteUnconfigured:
		return nil, false
	case remoteFailed:
		r.observer.RemoteError(key, RemoteErrUnavailable, domain.ErrRemoteUnavailable)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := r.remote.store.Get(ctx, r.keyPrefix+key+documentExt)
	if err != nil {
		r.observer.RemoteError(key, classifyRemoteError(err), err)
		return nil, false
	}

	// The remote body must at least parse as a JSON object before it is
	// allowed into the cache. Corrupt bytes fall through to the next tier.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		r.observer.RemoteError(key, RemoteErrMalformedBody, fmt.Errorf("remote body for %q: %w", key, err))
		return nil, false
	}

	return data, true
}

// writeCache persists document bytes to the cache path via a temp file and
// rename, so a racing reader never observes a partial document.
func (r *resolver) writeCache(key string, data []byte) {
	tmp, err := os.CreateTemp(r.cacheDir, key+".*.tmp")
	if err != nil {
		r.observer.CacheWriteFailed(key, err)
		return
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		r.observer.CacheWriteFailed(key, err)
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		r.observer.CacheWriteFailed(key, err)
		return
	}
	if err := os.Rename(tmpName, r.cachePath(key)); err != nil {
		_ = os.Remove(tmpName)
		r.observer.CacheWriteFailed(key, err)
		return
	}
	metrics.SentimentCacheWritesTotal.WithLabelValues("success").Inc()
}

func (r *resolver) cachePath(key string) string {
	return filepath.Join(r.cacheDir, key+documentExt)
}

func classifyRemoteError(err error) RemoteErrorKind {
	switch {
	case errors.Is(err, domain.ErrObjectNotFound):
		return RemoteErrNotFound
	case errors.Is(err, domain.ErrBucketNotFound):
		return RemoteErrBucketMissing
	case errors.Is(err, domain.ErrAccessDenied):
		return RemoteErrAccessDenied
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return RemoteErrUnavailable
	default:
		return RemoteErrOther
	}
}
