package kmer

import "errors"

// Sentinel errors for window and configuration construction.
var (
	// ErrInvalidBase indicates a sequence contains a symbol outside ACGT.
	ErrInvalidBase = errors.New("kmer: sequence contains a base outside ACGT")
	// ErrLengthMismatch indicates a sequence does not match the configured k.
	ErrLengthMismatch = errors.New("kmer: sequence length does not match k")
	// ErrInvalidK indicates a k-mer length below the supported minimum.
	ErrInvalidK = errors.New("kmer: k must be at least 2")
	// ErrInvalidNumHashes indicates an unsupported hash count.
	ErrInvalidNumHashes = errors.New("kmer: number of hash functions must be at least 1")
	// ErrInvalidSeed indicates a malformed spaced-seed pattern.
	ErrInvalidSeed = errors.New("kmer: invalid spaced-seed pattern")
)
