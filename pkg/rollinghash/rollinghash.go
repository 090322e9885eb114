// Package rollinghash implements an ntHash-style rolling hash over DNA
// windows: a 64-bit primary value updatable in O(1) when a boundary base
// changes, from which a tuple of independent hash values is derived for
// membership-filter probing.
package rollinghash

import (
	"fmt"
	"math/bits"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

// Per-base seeds from the published ntHash tables.
const (
	seedA = 0x3c8bfbb395c60474
	seedC = 0x3193c18562a02b4c
	seedG = 0x20323ed082572324
	seedT = 0x295549f54be24456
)

// Constants for deriving the extra hash values from the primary one,
// matching ntHash's multi-hash scheme.
const (
	multiSeed  = 0x90b45d39fb6da1fa
	multiShift = 27
)

var baseSeeds [256]uint64

func init() {
	baseSeeds['A'] = seedA
	baseSeeds['C'] = seedC
	baseSeeds['G'] = seedG
	baseSeeds['T'] = seedT
}

func seedOf(b byte) uint64 {
	s := baseSeeds[b]
	if s == 0 {
		panic(fmt.Sprintf("rollinghash: invalid base %q", b))
	}
	return s
}

// Hash is the rolling hash state for one window. It is a small value
// type; copying it copies the state.
//
// The primary value of a window s is
//
//	h = XOR over i of rol(seed(s[i]), k-1-i)
//
// so the contribution of each base is its seed rotated by the base's
// distance from the right end of the window. Every update below follows
// from that identity.
type Hash struct {
	k         int
	numHashes int
	h         uint64
}

// New computes the hash of window directly in O(k). The window must
// contain only ACGT bases and numHashes must be at least 1.
func New(window []byte, numHashes, k int) (Hash, error) {
	if len(window) != k {
		return Hash{}, fmt.Errorf("rollinghash: window length %d does not match k %d", len(window), k)
	}
	if numHashes < 1 {
		return Hash{}, fmt.Errorf("rollinghash: numHashes must be >= 1, got %d", numHashes)
	}
	var h uint64
	for i, b := range window {
		if !kmer.IsValidBase(b) {
			return Hash{}, fmt.Errorf("rollinghash: invalid base %q at position %d", b, i)
		}
		h ^= bits.RotateLeft64(seedOf(b), k-1-i)
	}
	return Hash{k: k, numHashes: numHashes, h: h}, nil
}

// K returns the configured window length.
func (h Hash) K() int { return h.k }

// NumHashes returns the size of the hash tuple.
func (h Hash) NumHashes() int { return h.numHashes }

// Sum64 returns the primary hash value.
func (h Hash) Sum64() uint64 { return h.h }

// RollRight advances the window one position in the sense direction:
// out is the base leaving at the left end, in the base entering at the
// right end. O(1).
func (h *Hash) RollRight(out, in byte) {
	h.h = bits.RotateLeft64(h.h, 1) ^
		bits.RotateLeft64(seedOf(out), h.k) ^
		seedOf(in)
}

// RollLeft advances the window one position in the antisense direction:
// in is the base entering at the left end, out the base leaving at the
// right end. O(1).
func (h *Hash) RollLeft(in, out byte) {
	h.h = bits.RotateLeft64(h.h^seedOf(out), -1) ^
		bits.RotateLeft64(seedOf(in), h.k-1)
}

// SetLastBase replaces the rightmost base of the window, old with nu.
// The result is identical to hashing the edited window directly. O(1).
func (h *Hash) SetLastBase(old, nu byte) {
	h.h ^= seedOf(old) ^ seedOf(nu)
}

// SetFirstBase replaces the leftmost base of the window. O(1).
func (h *Hash) SetFirstBase(old, nu byte) {
	h.h ^= bits.RotateLeft64(seedOf(old)^seedOf(nu), h.k-1)
}

// Hashes fills dst with the numHashes-value tuple used for membership
// probing and returns it. dst is grown if its capacity is insufficient;
// passing a reused buffer avoids allocation on the probe path.
func (h Hash) Hashes(dst []uint64) []uint64 {
	if cap(dst) < h.numHashes {
		dst = make([]uint64, h.numHashes)
	}
	dst = dst[:h.numHashes]
	dst[0] = h.h
	for i := 1; i < h.numHashes; i++ {
		t := h.h * (uint64(i) ^ uint64(h.k)*multiSeed)
		t ^= t >> multiShift
		dst[i] = t
	}
	return dst
}

// MaskedSum64 hashes only the informative positions of window under
// seed, with each base keeping its in-window rotation distance. It is
// the identity-hash primitive: windows that are equal under the seed
// produce equal masked sums. O(k), computed on demand.
func MaskedSum64(window []byte, seed kmer.SpacedSeed) uint64 {
	k := len(window)
	var h uint64
	for i, b := range window {
		if seed.Informative(i) {
			h ^= bits.RotateLeft64(seedOf(b), k-1-i)
		}
	}
	return h
}
