// Package main hosts the creatoriq CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, opens the SQLite store, and
// hands transcript rows, topic syncs, and artifact evaluations to the
// internal packages. Output is a table on a terminal and JSON otherwise.
package main
