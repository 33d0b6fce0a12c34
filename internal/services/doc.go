// Package services defines shared utilities consumed by the sync pipelines and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp creator IDs, stage names, and sync correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     persistence failures (retry the stage) from caller mistakes (do not).
//
// Use these helpers when wiring new pipeline logic so operational behaviour stays
// uniform across the intelligence and quality engines.
package services
