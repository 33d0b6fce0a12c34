// Package config loads, normalizes, and validates creatoriq configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, loads a .env file, and honours environment fallbacks such as
// OPENROUTER_API_KEY. The Config type centralizes every knob the CLI needs:
// where the database lives, which extraction provider to call, how the
// quality gates are tuned, and how topic syncs are serialized.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
