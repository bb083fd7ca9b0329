// Package database provides the SQLite-backed drug catalog.
//
// The catalog ships as a flat CSV and is ingested into an in-memory SQLite
// database at startup; nothing is persisted between runs. Search is a
// case-insensitive substring match over name, generic name and synonyms.
package database
