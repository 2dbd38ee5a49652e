package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a sha256 content hash; render caches key on it.
type Digest [32]byte

// HashContent digests raw manifest bytes.
func HashContent(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine folds extra digests into content in the given order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashString digests s, for folding request options into a cache key.
func HashString(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
