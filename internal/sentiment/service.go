package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/logging"
	"github.com/Austin-TB/RxU-backend/internal/metrics"
)

const defaultRemoteTimeout = 5 * time.Second

// ServiceConfig carries everything the cache service needs. An explicitly
// constructed service replaces the process-wide singleton the first iteration
// of this system grew around.
type ServiceConfig struct {
	// CacheDir is the local cache tier. Created at construction; a directory
	// that cannot be created is a fatal misconfiguration.
	CacheDir string
	// FallbackDir is the read-only bundled dataset, consulted last. Optional.
	FallbackDir string
	// Remote is the three-state remote tier configuration.
	Remote RemoteTier
	// KeyPrefix is prepended to object keys in the remote store, e.g. "agg/".
	KeyPrefix string
	// RemoteTimeout bounds each remote request. Defaults to 5s.
	RemoteTimeout time.Duration
	// Observer receives resolution events. Defaults to the logging observer.
	Observer TierObserver
}

// Service orchestrates the validator and the tiered resolver into the public
// sentiment operations consumed by the HTTP layer.
type Service struct {
	resolver *resolver
	observer TierObserver
}

var _ domain.SentimentService = (*Service)(nil)

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("sentiment cache directory is required")
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sentiment cache directory %q: %w", cfg.CacheDir, err)
	}

	observer := cfg.Observer
	if observer == nil {
		observer = NewLogObserver()
	}
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	return &Service{
		resolver: &resolver{
			cacheDir:    cfg.CacheDir,
			fallbackDir: cfg.FallbackDir,
			keyPrefix:   cfg.KeyPrefix,
			remote:      cfg.Remote,
			timeout:     timeout,
			observer:    observer,
		},
		observer: observer,
	}, nil
}

// FetchDrugSentiment resolves the sentiment document for a drug. Blank input,
// a miss in every tier, unreadable bytes and schema-invalid documents all
// return the empty response; none of them are errors.
//
// Concurrent cold lookups for the same key are not coordinated: both may hit
// the remote tier and both write the same cache file. The overwrite is
// idempotent, so this is wasteful but harmless at this system's traffic.
func (s *Service) FetchDrugSentiment(ctx context.Context, drugName string) *domain.SentimentDocument {
	key := domain.NormalizeDrugKey(drugName)
	if !safeKey(key) {
		return domain.EmptySentiment(drugName)
	}
	data, _, ok := s.resolver.resolve(ctx, key)
	if !ok {
		return domain.EmptySentiment(drugName)
	}

	doc, err := Validate(data)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			metrics.SentimentInvalidDocumentsTotal.Inc()
			logging.WithDrug(drugName).Warn("Invalid sentiment document structure", "drug_key", key, "missing_fields", schemaErr.MissingFields)
		} else {
			logging.WithDrug(drugName).Warn("Unreadable sentiment document", "drug_key", key, "error", err)
		}
		return domain.EmptySentiment(drugName)
	}
	return doc
}

// ListAvailableDrugs returns the sorted, deduplicated union of keys present in
// the cache and fallback tiers. Never touches the network; missing directories
// contribute nothing.
func (s *Service) ListAvailableDrugs(_ context.Context) *domain.AvailableDrugs {
	seen := make(map[string]struct{})
	for _, dir := range []string{s.resolver.cacheDir, s.resolver.fallbackDir} {
		for _, key := range listDocumentKeys(dir) {
			seen[key] = struct{}{}
		}
	}

	drugs := make([]string, 0, len(seen))
	for key := range seen {
		drugs = append(drugs, key)
	}
	sort.Strings(drugs)

	return &domain.AvailableDrugs{
		AvailableDrugs: drugs,
		TotalCount:     len(drugs),
	}
}

// ClearCache removes the cache entry for a single drug. Clearing an absent
// entry is a logged no-op. Never touches the network.
func (s *Service) ClearCache(_ context.Context, drugName string) error {
	key := domain.NormalizeDrugKey(drugName)
	if !safeKey(key) {
		slog.Info("Ignoring cache clear for unsafe drug key", "drug_key", key)
		return nil
	}
	err := os.Remove(s.resolver.cachePath(key))
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("No cache entry to clear", "drug_key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear cache entry for %q: %w", key, err)
	}
	metrics.SentimentCacheClearsTotal.WithLabelValues("single").Inc()
	slog.Info("Cache entry cleared", "drug_key", key)
	return nil
}

// ClearAllCache removes every entry in the local cache tier, returning how
// many were removed.
func (s *Service) ClearAllCache(_ context.Context) (int, error) {
	entries, err := os.ReadDir(s.resolver.cacheDir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), documentExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.resolver.cacheDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	metrics.SentimentCacheClearsTotal.WithLabelValues("all").Inc()
	slog.Info("Cache cleared", "entries_removed", removed)
	return removed, nil
}

// ForceFetch discards the cache entry for a drug and re-resolves it, so tiers
// two and three are consulted again. If the remote tier no longer has the
// document this yields the empty response rather than stale data. The same
// holds when the stale entry cannot be removed: a refresh must never answer
// from the entry it was asked to discard.
func (s *Service) ForceFetch(ctx context.Context, drugName string) *domain.SentimentDocument {
	if !safeKey(domain.NormalizeDrugKey(drugName)) {
		return domain.EmptySentiment(drugName)
	}
	if err := s.ClearCache(ctx, drugName); err != nil {
		logging.WithError(err).Warn("Force fetch could not clear cache entry", "drug_name", drugName)
		return domain.EmptySentiment(drugName)
	}
	return s.FetchDrugSentiment(ctx, drugName)
}

// safeKey reports whether a normalized key addresses a single file inside a
// tier directory. Path separators or parent references in a drug name must
// not reach filepath.Join against the tier roots.
func safeKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && !strings.Contains(key, "..")
}

// listDocumentKeys returns the normalized keys of every document file in dir.
// A missing directory yields an empty list, not an error.
func listDocumentKeys(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, documentExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, documentExt))
	}
	return keys
}
