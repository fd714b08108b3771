// Package prng provides the seeded, reproducible random stream that
// drives instance generation (§4.B). One seed yields one deterministic
// stream of uniform and Gaussian draws, backed by a ChaCha20 keystream.
package prng

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/chacha20"
)

// Source is a seeded stream of pseudo-random draws. It is not safe for
// concurrent use; the generator that owns it is single-threaded (§5).
type Source struct {
	cipher *chacha20.Cipher
	// gaussCache holds a second standard-normal sample produced alongside
	// the first by the Box-Muller transform, spent on the next call.
	gaussCache    float64
	hasGaussCache bool
}

// New creates a Source rooted at seed.
func New(seed Seed) *Source {
	key := seed.key()
	var nonce [chacha20.NonceSize]byte // all-zero: the key alone carries the seed's entropy.
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// chacha20.NewUnauthenticatedCipher only fails on malformed
		// key/nonce lengths, which are both fixed-size arrays here.
		panic("prng: unreachable chacha20 construction failure: " + err.Error())
	}
	return &Source{cipher: cipher}
}

// nextUint64 draws the next 8 bytes of keystream as a big-endian uint64.
func (s *Source) nextUint64() uint64 {
	var zero, out [8]byte
	s.cipher.XORKeyStream(out[:], zero[:])
	return binary.BigEndian.Uint64(out[:])
}

// Float64 draws a uniform sample in [0, 1).
func (s *Source) Float64() float64 {
	// Keep the mantissa's 53 significant bits; this is the standard
	// technique for deriving a uniform float64 from a random integer.
	return float64(s.nextUint64()>>11) / (1 << 53)
}

// Uniform draws a uniform sample in [min, max], inclusive of both ends.
func (s *Source) Uniform(min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	// Dividing the 53 random bits by 2^53-1 rather than 2^53 (as Float64
	// does) puts the top draw exactly on max.
	u := float64(s.nextUint64()>>11) / ((1 << 53) - 1)
	return min + (max-min)*u
}

// Gaussian draws a sample from a normal distribution with the given mean
// and standard deviation, via the Box-Muller transform. Draws may fall
// outside any bounding box the caller has in mind; no rejection is
// performed here (§4.D step 4).
func (s *Source) Gaussian(mean, std float64) float64 {
	if s.hasGaussCache {
		s.hasGaussCache = false
		return mean + std*s.gaussCache
	}

	var u1, u2 float64
	for u1 == 0 {
		u1 = s.Float64()
	}
	u2 = s.Float64()

	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	z0 := r * math.Cos(theta)
	z1 := r * math.Sin(theta)

	s.gaussCache = z1
	s.hasGaussCache = true

	return mean + std*z0
}
