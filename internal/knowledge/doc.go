// Package knowledge holds the domain types shared by the intelligence, topic,
// quality, and storage packages: transcript rows, per-video intelligence
// records, topic nodes, ranked suggestions, and the product type enum.
package knowledge
