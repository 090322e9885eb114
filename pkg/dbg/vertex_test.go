package dbg

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

func mustNewVertex(t *testing.T, cfg kmer.Config, seq string) Vertex {
	t.Helper()
	u, err := NewVertex(cfg, seq)
	if err != nil {
		t.Fatalf("NewVertex(%s): %v", seq, err)
	}
	return u
}

func TestNewVertexValidation(t *testing.T) {
	cfg := testConfig(t, "")
	if _, err := NewVertex(cfg, "GACT"); !errors.Is(err, kmer.ErrLengthMismatch) {
		t.Errorf("short sequence: got %v, want ErrLengthMismatch", err)
	}
	if _, err := NewVertex(cfg, "GACTN"); !errors.Is(err, kmer.ErrInvalidBase) {
		t.Errorf("invalid base: got %v, want ErrInvalidBase", err)
	}
}

func TestShiftTracksDirectConstruction(t *testing.T) {
	const seq = "GACTCTGACCTAGGT"
	cfg := testConfig(t, "")

	// Forward: slide left to right, checking window and hash agree with
	// a vertex built directly from the same substring.
	u := mustNewVertex(t, cfg, seq[:5])
	for i := 1; i+5 <= len(seq); i++ {
		u.Shift(Forward, seq[i+4])
		want := mustNewVertex(t, cfg, seq[i:i+5])
		if u.Kmer() != want.Kmer() {
			t.Fatalf("forward shift %d: window %s, want %s", i, u.Kmer(), want.Kmer())
		}
		u.checkSync()
	}

	// Backward: slide right to left.
	last := len(seq) - 5
	v := mustNewVertex(t, cfg, seq[last:])
	for i := last - 1; i >= 0; i-- {
		v.Shift(Backward, seq[i])
		want := mustNewVertex(t, cfg, seq[i:i+5])
		if v.Kmer() != want.Kmer() {
			t.Fatalf("backward shift %d: window %s, want %s", i, v.Kmer(), want.Kmer())
		}
		v.checkSync()
	}
}

func TestSetLastBaseKeepsSync(t *testing.T) {
	cfg := testConfig(t, "")
	for i := 0; i < kmer.AlphabetSize; i++ {
		base := kmer.Alphabet[i]

		u := mustNewVertex(t, cfg, "GACTC")
		u.Shift(Forward, placeholderBase)
		u.SetLastBase(Forward, base)
		if want := "ACTC" + string(base); u.Kmer() != want {
			t.Errorf("forward candidate %c: window %s, want %s", base, u.Kmer(), want)
		}
		u.checkSync()

		v := mustNewVertex(t, cfg, "GACTC")
		v.Shift(Backward, placeholderBase)
		v.SetLastBase(Backward, base)
		if want := string(base) + "GACT"; v.Kmer() != want {
			t.Errorf("backward candidate %c: window %s, want %s", base, v.Kmer(), want)
		}
		v.checkSync()
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := testConfig(t, "")
	u := mustNewVertex(t, cfg, "GACTC")
	c := u.Clone()

	c.Shift(Forward, 'T')
	if u.Kmer() != "GACTC" {
		t.Errorf("mutating a clone changed the original to %s", u.Kmer())
	}
	if c.Kmer() != "ACTCT" {
		t.Errorf("clone window = %s, want ACTCT", c.Kmer())
	}
}

func TestEqualsAndIdentityHash(t *testing.T) {
	cfg := testConfig(t, "")
	a := mustNewVertex(t, cfg, "GACTC")
	b := mustNewVertex(t, cfg, "GACTC")
	c := mustNewVertex(t, cfg, "GAGTC")

	if !a.Equals(a) || !a.Equals(b) || !b.Equals(a) {
		t.Error("equality is not reflexive/symmetric on identical content")
	}
	if a.Equals(c) {
		t.Error("distinct literals equal under the all-informative seed")
	}
	if a.IdentityHash() != b.IdentityHash() {
		t.Error("identical vertices have different identity hashes")
	}

	masked := testConfig(t, "11011")
	ma := mustNewVertex(t, masked, "GACTC")
	mc := mustNewVertex(t, masked, "GAGTC")
	if !ma.Equals(mc) {
		t.Error("GACTC and GAGTC differ under seed 11011")
	}
	if ma.IdentityHash() != mc.IdentityHash() {
		t.Error("seed-equal vertices have different identity hashes")
	}
	md := mustNewVertex(t, masked, "GACTT")
	if ma.Equals(md) {
		t.Error("windows differing at an informative position compare equal")
	}
}

func TestName(t *testing.T) {
	plain := testConfig(t, "")
	masked := testConfig(t, "11011")

	if got := mustNewVertex(t, plain, "GACTC").Name(); got != "GACTC" {
		t.Errorf("all-informative Name = %s, want GACTC", got)
	}
	if got := mustNewVertex(t, masked, "GACTC").Name(); got != "GANTC" {
		t.Errorf("masked Name = %s, want GANTC", got)
	}
}

func TestReverseComplement(t *testing.T) {
	cfg := testConfig(t, "")
	u := mustNewVertex(t, cfg, "GACTC")
	rc := u.ReverseComplement()

	if rc.Kmer() != "GAGTC" {
		t.Errorf("reverse complement = %s, want GAGTC", rc.Kmer())
	}
	rc.checkSync()
	if back := rc.ReverseComplement(); back.Kmer() != u.Kmer() {
		t.Errorf("double reverse complement = %s, want %s", back.Kmer(), u.Kmer())
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Backward.String() != "backward" {
		t.Errorf("Direction strings: %s/%s", Forward, Backward)
	}
}
