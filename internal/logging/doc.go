// Package logging assembles the slog loggers used by the creatoriq CLI.
//
// Console output goes to stderr so that command results written to stdout
// stay machine readable. When a log directory is configured every record is
// also appended as JSON to creatoriq.log. Records pick up creator, sync and
// stage identifiers from the context they are logged with.
package logging
