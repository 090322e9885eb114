// Package dbg implements an implicit de Bruijn graph over a Bloom-filter
// membership oracle. Vertices are k-mer windows paired with rolling-hash
// state; edges are never stored. Adjacency is discovered by probing the
// four possible one-base extensions of a window against the oracle.
package dbg

import (
	"fmt"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
	"github.com/dd0wney/cluso-bloomdbg/pkg/rollinghash"
)

// Direction selects which way a window slides along the sequence:
// Forward is the sense strand direction (window gains a base on the
// right), Backward the antisense direction (gains a base on the left).
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// placeholderBase fills the newly exposed position during a shift until
// the enumerator overwrites it with each candidate.
const placeholderBase = 'A'

// Vertex is a de Bruijn graph vertex: a k-mer window plus the rolling
// hash of its literal content. The two are kept synchronized through
// Shift and SetLastBase; mutating the window any other way is a contract
// violation that the graph detects and fails fast on.
//
// Vertices are value objects: Clone before destructive mutation, discard
// after use. They have no identity beyond their content.
type Vertex struct {
	cfg kmer.Config
	win kmer.Kmer
	rh  rollinghash.Hash
}

// NewVertex builds a vertex from a literal k-mer, hashing it directly.
func NewVertex(cfg kmer.Config, seq string) (Vertex, error) {
	cfg.MustBeUsable()
	win, err := kmer.New(cfg.K, seq)
	if err != nil {
		return Vertex{}, err
	}
	rh, err := rollinghash.New(win.Bytes(), cfg.NumHashes, cfg.K)
	if err != nil {
		return Vertex{}, err
	}
	return Vertex{cfg: cfg, win: win, rh: rh}, nil
}

// ConstructVertex assembles a vertex from a window and a pre-computed
// hash snapshot. The snapshot must match the window's literal content;
// a mismatch surfaces as a panic at the next graph operation.
func ConstructVertex(cfg kmer.Config, win kmer.Kmer, rh rollinghash.Hash) Vertex {
	cfg.MustBeUsable()
	return Vertex{cfg: cfg, win: win, rh: rh}
}

// Clone returns an independent copy whose mutations do not affect the
// original.
func (v Vertex) Clone() Vertex {
	return Vertex{cfg: v.cfg, win: v.win.Clone(), rh: v.rh}
}

// Kmer returns the literal window content.
func (v Vertex) Kmer() string { return v.win.String() }

// String returns the literal window content.
func (v Vertex) String() string { return v.win.String() }

// Name returns the canonical name of the vertex: the window content with
// don't-care positions of the active spaced seed rendered as 'N'.
func (v Vertex) Name() string {
	if v.cfg.Seed.AllSet() {
		return v.win.String()
	}
	return string(v.cfg.Seed.Project(v.win.Bytes()))
}

// Shift slides the window one position in dir, filling the exposed
// position with in and updating the hash incrementally. O(1), never a
// full rehash.
func (v *Vertex) Shift(dir Direction, in byte) {
	if dir == Forward {
		v.rh.RollRight(v.win.First(), in)
		v.win.ShiftRight(in)
	} else {
		v.rh.RollLeft(in, v.win.Last())
		v.win.ShiftLeft(in)
	}
}

// SetLastBase overwrites the most recently exposed base for dir: the
// rightmost base for Forward, the leftmost for Backward. The hash is
// updated for that single change and ends up identical to what direct
// construction with the final base would produce.
func (v *Vertex) SetLastBase(dir Direction, base byte) {
	if dir == Forward {
		v.rh.SetLastBase(v.win.Last(), base)
		v.win.SetLast(base)
	} else {
		v.rh.SetFirstBase(v.win.First(), base)
		v.win.SetFirst(base)
	}
}

// Equals compares two vertices under the active spaced seed. Equal hash
// state short-circuits to equal; otherwise the windows are compared
// position by position, skipping don't-care positions.
func (v Vertex) Equals(o Vertex) bool {
	if v.rh.Sum64() == o.rh.Sum64() {
		return true
	}
	return v.win.EqualUnder(v.cfg.Seed, o.win)
}

// IdentityHash returns a value suitable as a hashed-container key. It is
// computed over the seed's informative positions only, so vertices that
// are Equals produce equal identity hashes. Distinct from the multi-value
// tuple used for oracle probing, which always hashes literal content.
func (v Vertex) IdentityHash() uint64 {
	if v.cfg.Seed.AllSet() {
		return v.rh.Sum64()
	}
	return rollinghash.MaskedSum64(v.win.Bytes(), v.cfg.Seed)
}

// ReverseComplement returns the vertex for the reverse complement of the
// window, with freshly constructed hash state.
func (v Vertex) ReverseComplement() Vertex {
	rc := kmer.ReverseComplement(v.win.Bytes())
	out, err := NewVertex(v.cfg, string(rc))
	if err != nil {
		panic(fmt.Sprintf("dbg: reverse complement of valid vertex failed: %v", err))
	}
	return out
}

// hashTuple fills dst with the oracle probe tuple for the current window.
func (v Vertex) hashTuple(dst []uint64) []uint64 {
	return v.rh.Hashes(dst)
}

// checkSync panics if the hash state no longer matches the literal
// window content. Graph operations run this before probing so a
// desynchronized vertex fails fast instead of returning wrong adjacency.
func (v Vertex) checkSync() {
	fresh, err := rollinghash.New(v.win.Bytes(), v.cfg.NumHashes, v.cfg.K)
	if err != nil || fresh.Sum64() != v.rh.Sum64() {
		panic("dbg: vertex hash state out of sync with window content")
	}
}
