// Package server implements the HTTP API using Echo framework.
//
// Routes: drug search and info (/api/drugs/...), sentiment retrieval backed by
// the tiered cache, cache admin (/admin/cache...), health and metrics.
// Handlers split by concern: handlers_api.go, handlers_admin.go, handlers_health.go.
package server
