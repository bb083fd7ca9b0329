// Package config provides environment-based configuration.
//
// Loads settings from process environment with sensible development defaults,
// validates the cache directory and credential pairing, and exposes a single
// Config struct passed by reference to the rest of the application.
package config
