// Package lock serializes work per key across processes.
//
// The file backend takes an advisory flock on one file per key inside the
// configured lock directory. The redis backend uses SET NX with a TTL and
// releases only while it still owns the token, so a crashed holder expires
// instead of blocking forever.
package lock
