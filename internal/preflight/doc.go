// Package preflight provides readiness checks for the filesystem paths and
// external services creatoriq depends on.
//
// The CLI "creatoriq status" command runs RunAll and renders each Result.
// Checks tied to optional features (redis locking) only run when that
// feature is selected in config.
package preflight
