// Package intelligence turns creator transcripts into per-video knowledge
// records.
//
// Sync fingerprints every transcript, skips videos whose stored checksum
// already matches, and sends digests of the rest to the extraction service
// in fixed-size batches. A batch that fails, times out, or omits a video
// degrades to a deterministic record built from the digest alone, so a sync
// only returns an error when the store does.
package intelligence
