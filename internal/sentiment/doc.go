// Package sentiment implements the read-through sentiment document cache.
//
// Documents resolve through three tiers in strict order: local cache directory,
// remote object store, bundled fallback directory. Whichever tier answers
// populates the local cache so the next lookup short-circuits at tier one.
// Every expected failure (missing document, unreachable remote, malformed
// content) degrades to the canonical empty response; nothing here surfaces an
// error to the HTTP layer for an absent document.
package sentiment
