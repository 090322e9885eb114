package kmer

import "fmt"

// Kmer is a fixed-length DNA window, mutable in place through
// single-symbol edits only. It carries no hash state of its own; the
// graph layer keeps the window and its rolling hash synchronized.
type Kmer struct {
	seq []byte
}

// New validates seq against k and returns a window backed by a private
// copy of the sequence.
func New(k int, seq string) (Kmer, error) {
	if len(seq) != k {
		return Kmer{}, fmt.Errorf("%w: len %d, k %d", ErrLengthMismatch, len(seq), k)
	}
	buf := make([]byte, k)
	for i := 0; i < k; i++ {
		if !IsValidBase(seq[i]) {
			return Kmer{}, fmt.Errorf("%w: %q at position %d", ErrInvalidBase, seq[i], i)
		}
		buf[i] = seq[i]
	}
	return Kmer{seq: buf}, nil
}

// Len returns the window length.
func (m Kmer) Len() int { return len(m.seq) }

// At returns the base at position i.
func (m Kmer) At(i int) byte { return m.seq[i] }

// First returns the leftmost base.
func (m Kmer) First() byte { return m.seq[0] }

// Last returns the rightmost base.
func (m Kmer) Last() byte { return m.seq[len(m.seq)-1] }

// Bytes returns the window's backing bytes. The slice is shared with the
// window; callers must not retain it across mutations.
func (m Kmer) Bytes() []byte { return m.seq }

// String returns the literal window content.
func (m Kmer) String() string { return string(m.seq) }

// Clone returns an independent copy. Required before destructive
// mutation so the origin window survives iteration.
func (m Kmer) Clone() Kmer {
	buf := make([]byte, len(m.seq))
	copy(buf, m.seq)
	return Kmer{seq: buf}
}

// ShiftRight slides the window one position in the sense direction:
// drops the first base and appends in at the right end.
func (m *Kmer) ShiftRight(in byte) {
	copy(m.seq, m.seq[1:])
	m.seq[len(m.seq)-1] = in
}

// ShiftLeft slides the window one position in the antisense direction:
// drops the last base and prepends in at the left end.
func (m *Kmer) ShiftLeft(in byte) {
	copy(m.seq[1:], m.seq)
	m.seq[0] = in
}

// SetLast overwrites the rightmost base.
func (m *Kmer) SetLast(b byte) { m.seq[len(m.seq)-1] = b }

// SetFirst overwrites the leftmost base.
func (m *Kmer) SetFirst(b byte) { m.seq[0] = b }

// EqualUnder compares two windows position by position, skipping the
// seed's don't-care positions.
func (m Kmer) EqualUnder(seed SpacedSeed, o Kmer) bool {
	if len(m.seq) != len(o.seq) {
		return false
	}
	for i := range m.seq {
		if seed.Informative(i) && m.seq[i] != o.seq[i] {
			return false
		}
	}
	return true
}
