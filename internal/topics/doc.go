// Package topics aggregates a creator's video intelligence into topic nodes
// and ranks them as product suggestions.
//
// Sync always clusters the complete record corpus and replaces the
// creator's topics as a whole generation while holding a per-creator lock.
// When the extraction service is unavailable or returns nothing usable,
// videos are bucketed by their leading problem, outcome, or theme instead.
package topics
