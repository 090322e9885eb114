// Package kmer provides the fixed-length DNA sequence windows, spaced-seed
// masks, and run configuration underlying the Bloom de Bruijn graph.
package kmer

// Alphabet is the ordered DNA alphabet. Neighbor enumeration probes bases
// in exactly this order, so the ordering is part of the graph contract.
const Alphabet = "ACGT"

// AlphabetSize is the number of symbols in the DNA alphabet.
const AlphabetSize = 4

// baseIndex maps a base to its position in Alphabet, or -1.
var baseIndex [256]int8

// complement maps a base to its Watson-Crick complement.
var complement [256]byte

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i := 0; i < AlphabetSize; i++ {
		baseIndex[Alphabet[i]] = int8(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// BaseIndex returns the alphabet position of b (0..3), or -1 if b is not
// one of ACGT. Lowercase and ambiguity codes are not valid bases.
func BaseIndex(b byte) int {
	return int(baseIndex[b])
}

// IsValidBase reports whether b is one of ACGT.
func IsValidBase(b byte) bool {
	return baseIndex[b] >= 0
}

// Complement returns the Watson-Crick complement of a single base.
// Panics if b is not a valid base.
func Complement(b byte) byte {
	c := complement[b]
	if c == 0 {
		panic("kmer: complement of invalid base")
	}
	return c
}

// ReverseComplement returns the reverse complement of seq as a new slice.
// Panics if seq contains a base outside ACGT.
func ReverseComplement(seq []byte) []byte {
	rc := make([]byte, len(seq))
	for i, b := range seq {
		rc[len(seq)-1-i] = Complement(b)
	}
	return rc
}
