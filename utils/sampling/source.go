// Package sampling implements a seeded source of randomness.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/zeebo/blake3"
)

// Source is a deterministic stream of bytes expanded from a 32-byte seed
// with the blake3 XOF in keyed mode.
// A Source must not be used by multiple goroutines at the same time,
// derive one per goroutine with [Source.NewSource] instead.
type Source struct {
	seed   [32]byte
	digest *blake3.Digest
	buf    [8]byte
}

// NewSeed returns a fresh random 32-byte seed.
func NewSeed() (seed [32]byte) {
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Errorf("cannot NewSeed: %w", err))
	}
	return
}

// NewSource instantiates a new [Source] from the given seed.
func NewSource(seed [32]byte) *Source {
	h, err := blake3.NewKeyed(seed[:])

	// Sanity check, only fails if the key is not 32 bytes.
	if err != nil {
		panic(fmt.Errorf("cannot NewSource: %w", err))
	}

	return &Source{
		seed:   seed,
		digest: h.Digest(),
	}
}

// Seed returns the seed of the receiver.
func (s *Source) Seed() [32]byte {
	return s.seed
}

// NewSource derives a new independent [Source] from the receiver.
func (s *Source) NewSource() *Source {
	var seed [32]byte
	s.Read(seed[:])
	return NewSource(seed)
}

// Read fills p with pseudo-random bytes. It never fails.
func (s *Source) Read(p []byte) (n int, err error) {
	return s.digest.Read(p)
}

// Uint64 returns a pseudo-random uint64.
func (s *Source) Uint64() uint64 {
	s.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Uint64n returns a uniform pseudo-random value in [0, n).
func (s *Source) Uint64n(n uint64) uint64 {

	if n == 0 {
		panic("cannot Uint64n: n = 0")
	}

	if n&(n-1) == 0 {
		return s.Uint64() & (n - 1)
	}

	mask := uint64(1)<<bits.Len64(n) - 1
	for {
		if x := s.Uint64() & mask; x < n {
			return x
		}
	}
}

// Int64n returns a uniform pseudo-random value in [-bound, bound].
func (s *Source) Int64n(bound int64) int64 {
	if bound < 0 {
		panic("cannot Int64n: bound < 0")
	}
	return int64(s.Uint64n(2*uint64(bound)+1)) - bound
}
