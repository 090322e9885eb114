package dbg

import "github.com/dd0wney/cluso-bloomdbg/pkg/kmer"

// AdjacencyIterator lazily enumerates the forward neighbors of a vertex.
// It is positioned on its first yield at construction and is finite
// (at most four yields) and non-restartable: re-enumeration requires a
// fresh iterator from the graph.
//
// The cursor walks the alphabet in fixed order; every index is probed
// even when it does not yield, so two enumerations over the same state
// produce identical sequences.
type AdjacencyIterator struct {
	g       *Graph
	cur     Vertex
	i       int
	hashBuf []uint64
}

func newAdjacencyIterator(g *Graph, u Vertex) *AdjacencyIterator {
	v := u.Clone()
	v.Shift(Forward, placeholderBase)
	it := &AdjacencyIterator{g: g, cur: v}
	it.probe()
	return it
}

// probe advances the cursor to the next candidate present in the oracle,
// or to the exhausted position.
func (it *AdjacencyIterator) probe() {
	for ; it.i < kmer.AlphabetSize; it.i++ {
		it.cur.SetLastBase(Forward, kmer.Alphabet[it.i])
		it.hashBuf = it.cur.hashTuple(it.hashBuf)
		if it.g.lookup(it.hashBuf, Forward.String()) {
			return
		}
	}
}

// Exhausted reports whether the iterator has probed all four extensions.
func (it *AdjacencyIterator) Exhausted() bool {
	return it.i == kmer.AlphabetSize
}

// Vertex returns an independent copy of the current neighbor. Panics if
// the iterator is exhausted.
func (it *AdjacencyIterator) Vertex() Vertex {
	if it.Exhausted() {
		panic("dbg: Vertex on exhausted adjacency iterator")
	}
	return it.cur.Clone()
}

// Advance moves to the next present neighbor. Panics if the iterator is
// already exhausted.
func (it *AdjacencyIterator) Advance() {
	if it.Exhausted() {
		panic("dbg: Advance on exhausted adjacency iterator")
	}
	it.i++
	it.probe()
}

// Equal compares iterator positions. Any two exhausted iterators are
// equal, regardless of originating graph or vertex; a probing iterator
// never equals an exhausted one.
func (it *AdjacencyIterator) Equal(o *AdjacencyIterator) bool {
	return it.i == o.i
}

// Edge is an ordered (source, target) vertex pair where the target's
// window is the source's shifted one position forward. Edges are derived
// on demand and never stored.
type Edge struct {
	Source Vertex
	Target Vertex
}

// EdgeIterator lazily enumerates the incident edges of a vertex in one
// direction. For Forward the origin vertex is every edge's source and
// the probed neighbor its target; for Backward the probed neighbor is
// the source and the origin the target. Same cursor semantics as
// AdjacencyIterator.
type EdgeIterator struct {
	g       *Graph
	origin  Vertex
	cur     Vertex
	dir     Direction
	i       int
	hashBuf []uint64
}

func newEdgeIterator(g *Graph, u Vertex, dir Direction) *EdgeIterator {
	v := u.Clone()
	v.Shift(dir, placeholderBase)
	it := &EdgeIterator{g: g, origin: u.Clone(), cur: v, dir: dir}
	it.probe()
	return it
}

func (it *EdgeIterator) probe() {
	for ; it.i < kmer.AlphabetSize; it.i++ {
		it.cur.SetLastBase(it.dir, kmer.Alphabet[it.i])
		it.hashBuf = it.cur.hashTuple(it.hashBuf)
		if it.g.lookup(it.hashBuf, it.dir.String()) {
			return
		}
	}
}

// Exhausted reports whether the iterator has probed all four extensions.
func (it *EdgeIterator) Exhausted() bool {
	return it.i == kmer.AlphabetSize
}

// Edge returns the current edge with independent vertex copies. Panics
// if the iterator is exhausted.
func (it *EdgeIterator) Edge() Edge {
	if it.Exhausted() {
		panic("dbg: Edge on exhausted edge iterator")
	}
	if it.dir == Forward {
		return Edge{Source: it.origin.Clone(), Target: it.cur.Clone()}
	}
	return Edge{Source: it.cur.Clone(), Target: it.origin.Clone()}
}

// Advance moves to the next present edge. Panics if the iterator is
// already exhausted.
func (it *EdgeIterator) Advance() {
	if it.Exhausted() {
		panic("dbg: Advance on exhausted edge iterator")
	}
	it.i++
	it.probe()
}

// Equal compares iterator positions. Any two exhausted iterators are
// equal regardless of graph, vertex, or direction; probing iterators are
// equal only at the same cursor in the same direction.
func (it *EdgeIterator) Equal(o *EdgeIterator) bool {
	if it.Exhausted() && o.Exhausted() {
		return true
	}
	return it.dir == o.dir && it.i == o.i
}
