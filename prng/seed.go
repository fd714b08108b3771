package prng

import (
	"encoding/binary"
	"time"
)

// Seed is the 128-bit value that roots a reproducible random stream
// (§4.B). It is represented as two 64-bit halves, Hi being the more
// significant half.
type Seed struct {
	Hi uint64
	Lo uint64
}

// NewSeed derives a Seed from the current wall-clock millisecond count,
// used when the caller does not supply one explicitly.
func NewSeed() Seed {
	return Seed{Hi: 0, Lo: uint64(time.Now().UnixMilli())}
}

// SeedFromUint64 builds a Seed from a single 64-bit value, for callers
// that only need the low half (e.g. CLI flags parsed as int64/uint64).
func SeedFromUint64(v uint64) Seed {
	return Seed{Hi: 0, Lo: v}
}

// key expands the seed to a 32-byte ChaCha20 key. The reference
// implementation writes the seed's big-endian bytes into the front of a
// 32-byte buffer, then writes its little-endian bytes into the back by
// zipping a *reverse* iterator over the buffer with the forward
// little-endian byte sequence. That double reversal cancels out: the
// back 16 bytes end up holding the same big-endian pattern as the front,
// not a little-endian one. It reads like a bug, but §9's open question
// is explicit that the exact byte pattern — not the prose description of
// it — is the reproducibility contract, so it is reproduced verbatim
// here rather than "fixed".
func (s Seed) key() [32]byte {
	var key [32]byte

	binary.BigEndian.PutUint64(key[0:8], s.Hi)
	binary.BigEndian.PutUint64(key[8:16], s.Lo)
	binary.BigEndian.PutUint64(key[16:24], s.Hi)
	binary.BigEndian.PutUint64(key[24:32], s.Lo)

	return key
}
