// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers both the one-shot comparison run
// (items file, item count, capacity) and the HTTP service settings.
package config
