package rollinghash

import (
	"testing"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

func mustHash(t *testing.T, window string, numHashes, k int) Hash {
	t.Helper()
	h, err := New([]byte(window), numHashes, k)
	if err != nil {
		t.Fatalf("New(%q): %v", window, err)
	}
	return h
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]byte("GACT"), 2, 5); err == nil {
		t.Error("expected error for window shorter than k")
	}
	if _, err := New([]byte("GACTN"), 2, 5); err == nil {
		t.Error("expected error for invalid base")
	}
	if _, err := New([]byte("GACTC"), 0, 5); err == nil {
		t.Error("expected error for numHashes=0")
	}
}

func TestDeterministicAndContentSensitive(t *testing.T) {
	a := mustHash(t, "GACTC", 2, 5)
	b := mustHash(t, "GACTC", 2, 5)
	c := mustHash(t, "GAGTC", 2, 5)
	if a.Sum64() != b.Sum64() {
		t.Error("same window hashed to different values")
	}
	if a.Sum64() == c.Sum64() {
		t.Error("distinct windows hashed to the same value")
	}
	// Position sensitivity: permutations must not collide.
	d := mustHash(t, "CTCAG", 2, 5)
	if a.Sum64() == d.Sum64() {
		t.Error("permuted window hashed to the same value")
	}
}

// TestRollRightMatchesDirect verifies the O(1) forward roll against
// direct construction at every position of a longer sequence.
func TestRollRightMatchesDirect(t *testing.T) {
	const seq = "GACTCTGACCTAGGTACCAT"
	const k = 5
	h := mustHash(t, seq[:k], 3, k)
	for i := 1; i+k <= len(seq); i++ {
		h.RollRight(seq[i-1], seq[i+k-1])
		want := mustHash(t, seq[i:i+k], 3, k)
		if h.Sum64() != want.Sum64() {
			t.Fatalf("RollRight at offset %d: got %x, want %x", i, h.Sum64(), want.Sum64())
		}
	}
}

// TestRollLeftMatchesDirect walks the same sequence backwards.
func TestRollLeftMatchesDirect(t *testing.T) {
	const seq = "GACTCTGACCTAGGTACCAT"
	const k = 5
	last := len(seq) - k
	h := mustHash(t, seq[last:], 3, k)
	for i := last - 1; i >= 0; i-- {
		h.RollLeft(seq[i], seq[i+k])
		want := mustHash(t, seq[i:i+k], 3, k)
		if h.Sum64() != want.Sum64() {
			t.Fatalf("RollLeft at offset %d: got %x, want %x", i, h.Sum64(), want.Sum64())
		}
	}
}

// TestSetLastBaseMatchesDirect pins the equivalence the neighbor
// enumerator relies on: shifting with a placeholder and then overwriting
// the final base must hash identically to constructing the target
// window directly.
func TestSetLastBaseMatchesDirect(t *testing.T) {
	const k = 5
	for i := 0; i < kmer.AlphabetSize; i++ {
		base := kmer.Alphabet[i]

		h := mustHash(t, "GACTC", 2, k)
		h.RollRight('G', 'A') // shift forward with placeholder
		h.SetLastBase('A', base)
		want := mustHash(t, "ACTC"+string(base), 2, k)
		if h.Sum64() != want.Sum64() {
			t.Errorf("forward candidate %c: got %x, want %x", base, h.Sum64(), want.Sum64())
		}

		g := mustHash(t, "GACTC", 2, k)
		g.RollLeft('A', 'C') // shift backward with placeholder
		g.SetFirstBase('A', base)
		want = mustHash(t, string(base)+"GACT", 2, k)
		if g.Sum64() != want.Sum64() {
			t.Errorf("backward candidate %c: got %x, want %x", base, g.Sum64(), want.Sum64())
		}
	}
}

func TestSetBaseRepeatedOverwrites(t *testing.T) {
	// The enumerator overwrites the same position four times in a row.
	h := mustHash(t, "GACTA", 2, 5)
	prev := byte('A')
	for i := 0; i < kmer.AlphabetSize; i++ {
		base := kmer.Alphabet[i]
		h.SetLastBase(prev, base)
		prev = base
		want := mustHash(t, "GACT"+string(base), 2, 5)
		if h.Sum64() != want.Sum64() {
			t.Fatalf("overwrite %d (%c): got %x, want %x", i, base, h.Sum64(), want.Sum64())
		}
	}
}

func TestHashesTuple(t *testing.T) {
	h := mustHash(t, "GACTC", 4, 5)
	tuple := h.Hashes(nil)
	if len(tuple) != 4 {
		t.Fatalf("tuple length %d, want 4", len(tuple))
	}
	if tuple[0] != h.Sum64() {
		t.Error("first tuple value is not the primary hash")
	}
	seen := map[uint64]bool{}
	for _, v := range tuple {
		if seen[v] {
			t.Errorf("duplicate tuple value %x", v)
		}
		seen[v] = true
	}

	// Buffer reuse must not change the result.
	buf := make([]uint64, 0, 8)
	again := h.Hashes(buf)
	for i := range tuple {
		if tuple[i] != again[i] {
			t.Errorf("tuple differs on reused buffer at %d", i)
		}
	}
}

func TestMaskedSum64(t *testing.T) {
	seed, err := kmer.ParseSpacedSeed("11011")
	if err != nil {
		t.Fatal(err)
	}
	a := MaskedSum64([]byte("GACTC"), seed)
	b := MaskedSum64([]byte("GAGTC"), seed)
	if a != b {
		t.Error("windows equal under seed produced different masked sums")
	}
	c := MaskedSum64([]byte("GACTT"), seed)
	if a == c {
		t.Error("windows differing at an informative position collided")
	}

	all := kmer.AllInformative(5)
	h := mustHash(t, "GACTC", 2, 5)
	if MaskedSum64([]byte("GACTC"), all) != h.Sum64() {
		t.Error("all-informative masked sum differs from the primary hash")
	}
}

func TestInvalidBasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RollRight with invalid base did not panic")
		}
	}()
	h := mustHash(t, "GACTC", 2, 5)
	h.RollRight('G', 'N')
}
