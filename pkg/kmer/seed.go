package kmer

import "fmt"

// SpacedSeed marks which positions of a k-mer window are informative.
// Don't-care positions are excluded from window comparison and identity
// hashing; they never affect membership probing, which always hashes the
// literal window content.
type SpacedSeed struct {
	pattern []bool
	ones    int
}

// AllInformative returns the seed in which every position is informative.
// Under this seed masked equality reduces to exact content equality.
func AllInformative(k int) SpacedSeed {
	pattern := make([]bool, k)
	for i := range pattern {
		pattern[i] = true
	}
	return SpacedSeed{pattern: pattern, ones: k}
}

// ParseSpacedSeed parses a pattern of '1' (informative) and '0' (don't
// care) characters, e.g. "11011". The boundary positions must be
// informative: the enumerator distinguishes neighbor candidates by their
// final base, which a don't-care boundary would erase.
func ParseSpacedSeed(s string) (SpacedSeed, error) {
	if len(s) == 0 {
		return SpacedSeed{}, fmt.Errorf("%w: empty pattern", ErrInvalidSeed)
	}
	pattern := make([]bool, len(s))
	ones := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			pattern[i] = true
			ones++
		case '0':
		default:
			return SpacedSeed{}, fmt.Errorf("%w: character %q at position %d", ErrInvalidSeed, s[i], i)
		}
	}
	if ones == 0 {
		return SpacedSeed{}, fmt.Errorf("%w: no informative positions", ErrInvalidSeed)
	}
	if !pattern[0] || !pattern[len(s)-1] {
		return SpacedSeed{}, fmt.Errorf("%w: boundary positions must be informative", ErrInvalidSeed)
	}
	return SpacedSeed{pattern: pattern, ones: ones}, nil
}

// Len returns the seed length, which always equals k.
func (s SpacedSeed) Len() int { return len(s.pattern) }

// Informative reports whether position i contributes to comparison and
// identity hashing.
func (s SpacedSeed) Informative(i int) bool { return s.pattern[i] }

// Weight returns the number of informative positions.
func (s SpacedSeed) Weight() int { return s.ones }

// AllSet reports whether every position is informative.
func (s SpacedSeed) AllSet() bool { return s.ones == len(s.pattern) }

// IsZero reports whether the seed is an unconfigured zero value.
func (s SpacedSeed) IsZero() bool { return s.pattern == nil }

// String renders the seed as a pattern of '1' and '0' characters.
func (s SpacedSeed) String() string {
	out := make([]byte, len(s.pattern))
	for i, set := range s.pattern {
		if set {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// Project returns the masked rendition of seq: informative positions keep
// their base, don't-care positions become 'N'. This is the canonical name
// of a window under the seed.
func (s SpacedSeed) Project(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		if s.pattern[i] {
			out[i] = b
		} else {
			out[i] = 'N'
		}
	}
	return out
}
