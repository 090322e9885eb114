// Package bloom implements the membership oracle behind the de Bruijn
// graph: a Bloom filter over k-mer hash tuples with lock-free reads,
// atomic insertion, and a compressed on-disk format.
package bloom

import (
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

// Filter is a fixed-size Bloom filter. Insert-only: once population is
// finished the filter is treated as read-only by every graph view that
// references it, and Contains is safe under concurrent readers. There is
// no delete and no resize; a membership oracle must never produce false
// negatives, and bit removal would break that contract.
type Filter struct {
	words []uint64
	m     uint64 // number of bits
	cfg   kmer.Config

	inserts atomic.Uint64
}

// MinBits is the smallest permitted filter size.
const MinBits = 64

// New allocates a filter with at least bitCount bits (rounded up to a
// whole number of 64-bit words) for k-mers described by cfg.
func New(bitCount uint64, cfg kmer.Config) (*Filter, error) {
	cfg.MustBeUsable()
	if bitCount < MinBits {
		return nil, fmt.Errorf("bloom: filter size %d below minimum %d bits", bitCount, MinBits)
	}
	nwords := (bitCount + 63) / 64
	return &Filter{
		words: make([]uint64, nwords),
		m:     nwords * 64,
		cfg:   cfg,
	}, nil
}

// Config returns the k-mer configuration the filter was built for.
func (f *Filter) Config() kmer.Config { return f.cfg }

// Bits returns the filter size in bits.
func (f *Filter) Bits() uint64 { return f.m }

// Inserts returns the number of Insert calls so far. Duplicate keys are
// counted; the filter cannot distinguish them.
func (f *Filter) Inserts() uint64 { return f.inserts.Load() }

// Insert sets the bit addressed by each hash value. Safe for concurrent
// use by multiple builder goroutines; the per-word atomic OR makes
// overlapping inserts commute.
func (f *Filter) Insert(hashes []uint64) {
	for _, h := range hashes {
		pos := h % f.m
		atomic.OrUint64(&f.words[pos/64], 1<<(pos%64))
	}
	f.inserts.Add(1)
}

// Contains reports whether every bit addressed by the hash tuple is set.
// A true result may be a false positive at the configured rate; a false
// result is always correct (no false negatives for inserted keys).
func (f *Filter) Contains(hashes []uint64) bool {
	for _, h := range hashes {
		pos := h % f.m
		if atomic.LoadUint64(&f.words[pos/64])&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// PopCount returns the number of set bits.
func (f *Filter) PopCount() uint64 {
	var n uint64
	for i := range f.words {
		n += uint64(bits.OnesCount64(atomic.LoadUint64(&f.words[i])))
	}
	return n
}

// Occupancy returns the fraction of set bits, 0..1.
func (f *Filter) Occupancy() float64 {
	return float64(f.PopCount()) / float64(f.m)
}

// EstimatedFalsePositiveRate estimates the probability that a never-
// inserted key probes only set bits, using the standard occupancy^h
// approximation.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return math.Pow(f.Occupancy(), float64(f.cfg.NumHashes))
}
