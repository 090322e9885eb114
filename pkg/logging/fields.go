package logging

import "time"

// Generic field constructors.

func String(key, value string) Field      { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Uint64(key string, v uint64) Field   { return Field{Key: key, Value: v} }
func Float64(key string, v float64) Field { return Field{Key: key, Value: v} }

func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers.

// KmerLength records the window length k.
func KmerLength(k int) Field { return Int("k", k) }

// NumHashes records the hash tuple size.
func NumHashes(n int) Field { return Int("num_hashes", n) }

// SpacedSeed records the active seed pattern.
func SpacedSeed(pattern string) Field { return String("spaced_seed", pattern) }

// Reads records a read count.
func Reads(n uint64) Field { return Uint64("reads", n) }

// Kmers records a k-mer count.
func Kmers(n uint64) Field { return Uint64("kmers", n) }

// FilterBits records the filter size in bits.
func FilterBits(n uint64) Field { return Uint64("filter_bits", n) }

// Occupancy records the filter's set-bit fraction.
func Occupancy(f float64) Field { return Float64("occupancy", f) }

// Path records a file path.
func Path(p string) Field { return String("path", p) }

// Component records the emitting component name.
func Component(name string) Field { return String("component", name) }
