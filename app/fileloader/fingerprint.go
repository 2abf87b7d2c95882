package fileloader

import (
	"encoding/hex"
	"strings"

	"github.com/minio/highwayhash"
)

// fingerprintKey is a fixed 32-byte HighwayHash key. Fingerprints only need
// to be stable across runs, not secret.
var fingerprintKey = []byte("planillas-dataset-fingerprint-k1")

// Fingerprint hashes a raw payload. It is computed over the decompressed
// bytes so a .json and its .json.gz share cache entries.
func Fingerprint(data []byte) string {
	sum := highwayhash.Sum128(data, fingerprintKey)
	return hex.EncodeToString(sum[:])
}

// combineFingerprints derives one fingerprint from ordered shard fingerprints
func combineFingerprints(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return Fingerprint([]byte(strings.Join(parts, "|")))
}
