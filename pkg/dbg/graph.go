package dbg

import (
	"errors"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

// Oracle answers set-membership queries over k-mer hash tuples. The
// contract is the Bloom filter contract: no false negatives for inserted
// keys, false positives at the oracle's own configured rate. The oracle
// is populated before any Graph references it and is read-only and
// shareable afterwards; it must outlive every Graph built over it.
type Oracle interface {
	Contains(hashes []uint64) bool
}

// ProbeObserver receives the outcome of every oracle probe a Graph
// issues. Implemented by the metrics registry; nil disables observation.
type ProbeObserver interface {
	ObserveProbe(direction string, hit bool)
}

// GraphOptions carries optional Graph collaborators.
type GraphOptions struct {
	Probes ProbeObserver
}

// Sentinel errors for graph construction.
var (
	// ErrNilOracle indicates a Graph was constructed without an oracle.
	ErrNilOracle = errors.New("dbg: oracle must not be nil")
	// ErrNoConfig indicates a Graph was constructed with a zero Config.
	ErrNoConfig = errors.New("dbg: k-mer configuration must be set before use")
)

// Graph is a read-only view of the implicit de Bruijn graph defined by
// an oracle and a k-mer configuration. It holds no graph state of its
// own: every operation composes oracle probes. Graphs are cheap; many
// may share one oracle, including from different goroutines as long as
// the oracle's Contains is safe under concurrent reads.
type Graph struct {
	oracle Oracle
	cfg    kmer.Config
	probes ProbeObserver
}

// NewGraph builds a graph view over oracle for k-mers described by cfg.
func NewGraph(oracle Oracle, cfg kmer.Config) (*Graph, error) {
	return NewGraphWithOptions(oracle, cfg, GraphOptions{})
}

// NewGraphWithOptions is NewGraph with optional collaborators attached.
func NewGraphWithOptions(oracle Oracle, cfg kmer.Config, opts GraphOptions) (*Graph, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if cfg.IsZero() {
		return nil, ErrNoConfig
	}
	return &Graph{oracle: oracle, cfg: cfg, probes: opts.Probes}, nil
}

// Config returns the graph's k-mer configuration.
func (g *Graph) Config() kmer.Config { return g.cfg }

// Vertex builds a vertex from a literal k-mer using the graph's
// configuration.
func (g *Graph) Vertex(seq string) (Vertex, error) {
	return NewVertex(g.cfg, seq)
}

// lookup runs one oracle probe and reports it to the observer.
func (g *Graph) lookup(hashes []uint64, direction string) bool {
	hit := g.oracle.Contains(hashes)
	if g.probes != nil {
		g.probes.ObserveProbe(direction, hit)
	}
	return hit
}

// checkVertex fails fast on the contract violations a caller can commit:
// a vertex from a different configuration, or hash state that no longer
// matches the window.
func (g *Graph) checkVertex(u Vertex) {
	if !u.cfg.Equal(g.cfg) {
		panic("dbg: vertex was built with a different configuration than the graph")
	}
	u.checkSync()
}

// VertexExists reports whether the vertex's own hash tuple is present in
// the oracle. This single probe is the primitive every other operation
// composes from. Subject to the oracle's false-positive rate.
func (g *Graph) VertexExists(u Vertex) bool {
	g.checkVertex(u)
	var buf [kmer.MaxNumHashes]uint64
	return g.lookup(u.hashTuple(buf[:0]), "vertex")
}

// AdjacentVertices returns a fresh enumerator over the forward neighbors
// of u, in fixed ACGT candidate order.
func (g *Graph) AdjacentVertices(u Vertex) *AdjacencyIterator {
	g.checkVertex(u)
	return newAdjacencyIterator(g, u)
}

// OutEdges returns a fresh enumerator over edges (u, neighbor).
func (g *Graph) OutEdges(u Vertex) *EdgeIterator {
	g.checkVertex(u)
	return newEdgeIterator(g, u, Forward)
}

// InEdges returns a fresh enumerator over edges (neighbor, u).
func (g *Graph) InEdges(u Vertex) *EdgeIterator {
	g.checkVertex(u)
	return newEdgeIterator(g, u, Backward)
}

// OutDegree counts u's forward neighbors by full enumeration: always
// four oracle probes, no shortcut.
func (g *Graph) OutDegree(u Vertex) int {
	n := 0
	for it := g.AdjacentVertices(u); !it.Exhausted(); it.Advance() {
		n++
	}
	return n
}

// InDegree counts u's backward neighbors by full enumeration.
func (g *Graph) InDegree(u Vertex) int {
	n := 0
	for it := g.InEdges(u); !it.Exhausted(); it.Advance() {
		n++
	}
	return n
}

// NoProperty is the empty payload bundled with vertices and edges; the
// graph attaches no data to either.
type NoProperty struct{}

// VertexName returns the canonical (seed-masked) name of u.
func (g *Graph) VertexName(u Vertex) string { return u.Name() }

// VertexComplement returns the reverse complement of u.
func (g *Graph) VertexComplement(u Vertex) Vertex { return u.ReverseComplement() }

// VertexRemoved always reports false: the graph has no deletion model.
func (g *Graph) VertexRemoved(Vertex) bool { return false }

// VertexBundle returns the (empty) vertex payload.
func (g *Graph) VertexBundle(Vertex) NoProperty { return NoProperty{} }

// EdgeBundle returns the (empty) edge payload.
func (g *Graph) EdgeBundle(Edge) NoProperty { return NoProperty{} }
