// Package store persists creator knowledge in SQLite.
//
// It implements the repository interfaces declared by the intelligence,
// topics and quality consumers: per-video intelligence records keyed by
// (creator, video), topic nodes swapped in whole generations, published
// artifact HTML, and an audit trail of quality evaluations. Writes retry
// briefly on SQLITE_BUSY so concurrent CLI invocations share one database.
package store
