package intelligence

import (
	"crypto/sha256"
	"encoding/hex"

	"creatoriq/internal/knowledge"
)

// ChecksumVersion prefixes every transcript checksum. Bump it when the
// hashed fields or their encoding change so stored records go stale.
const ChecksumVersion = "v1"

// Checksum fingerprints the exact source text a record is derived from.
func Checksum(row knowledge.TranscriptRow) string {
	h := sha256.New()
	h.Write([]byte(row.Title))
	h.Write([]byte{0})
	h.Write([]byte(row.Description))
	h.Write([]byte{0})
	h.Write([]byte(row.Transcript))
	return ChecksumVersion + ":" + hex.EncodeToString(h.Sum(nil))
}
