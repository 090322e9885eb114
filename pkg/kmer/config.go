package kmer

import "fmt"

// Config carries the run-wide k-mer parameters: window length, hash count,
// and the active spaced seed. It is injected explicitly at construction
// time everywhere it is needed; there is no process-wide mutable state.
// A zero Config is unusable and using one is a contract violation.
type Config struct {
	K         int
	NumHashes int
	Seed      SpacedSeed
}

// MaxK bounds the window length so it fits the persistence header and
// keeps rotation distances meaningful.
const MaxK = 255

// MaxNumHashes bounds the oracle hash tuple size.
const MaxNumHashes = 16

// NewConfig builds and validates a Config. An empty seed pattern selects
// the all-informative seed; otherwise the pattern length must equal k.
func NewConfig(k, numHashes int, seedPattern string) (Config, error) {
	if k < 2 || k > MaxK {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if numHashes < 1 || numHashes > MaxNumHashes {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidNumHashes, numHashes)
	}
	var seed SpacedSeed
	if seedPattern == "" {
		seed = AllInformative(k)
	} else {
		var err error
		seed, err = ParseSpacedSeed(seedPattern)
		if err != nil {
			return Config{}, err
		}
		if seed.Len() != k {
			return Config{}, fmt.Errorf("%w: seed length %d != k %d", ErrInvalidSeed, seed.Len(), k)
		}
	}
	return Config{K: k, NumHashes: numHashes, Seed: seed}, nil
}

// IsZero reports whether the Config was never constructed through
// NewConfig.
func (c Config) IsZero() bool {
	return c.K == 0 || c.NumHashes == 0 || c.Seed.IsZero()
}

// MustBeUsable panics if the Config is a zero value. Construction paths
// call this so an unconfigured graph fails fast instead of silently
// defaulting.
func (c Config) MustBeUsable() {
	if c.IsZero() {
		panic("kmer: Config used before construction via NewConfig")
	}
}

// Equal reports whether two configs describe the same k, hash count, and
// seed pattern.
func (c Config) Equal(o Config) bool {
	return c.K == o.K && c.NumHashes == o.NumHashes && c.Seed.String() == o.Seed.String()
}
