// Package build populates a Bloom filter with every k-mer of a stream of
// sequencing reads. Population happens entirely before any graph view is
// constructed; afterwards the filter is treated as read-only.
package build

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-bloomdbg/pkg/bloom"
	"github.com/dd0wney/cluso-bloomdbg/pkg/fasta"
	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
	"github.com/dd0wney/cluso-bloomdbg/pkg/logging"
	"github.com/dd0wney/cluso-bloomdbg/pkg/metrics"
	"github.com/dd0wney/cluso-bloomdbg/pkg/rollinghash"
)

// RecordSource yields sequencing reads until io.EOF. *fasta.Reader
// satisfies it; tests feed records from memory.
type RecordSource interface {
	Read() (fasta.Record, error)
}

// Options configures a build run.
type Options struct {
	// Workers is the number of insertion goroutines; 0 means NumCPU.
	Workers int
	// Logger receives progress and completion entries; nil disables logging.
	Logger logging.Logger
	// Metrics receives build totals and filter state; nil disables metrics.
	Metrics *metrics.Registry
}

// DefaultOptions returns the defaults used by the command-line builder.
func DefaultOptions() Options {
	return Options{Workers: runtime.NumCPU()}
}

// Stats summarizes one completed build.
type Stats struct {
	Reads          uint64
	Kmers          uint64
	SkippedWindows uint64 // windows lost to non-ACGT bases
	Duration       time.Duration
}

// Run streams reads from src and inserts every valid k-mer window into
// filter. The filter's atomic insertion makes the worker pool safe;
// reads containing non-ACGT bases contribute only their valid windows.
// Run returns early on context cancellation or a source error.
func Run(ctx context.Context, filter *bloom.Filter, src RecordSource, opts Options) (Stats, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop{}
	}

	cfg := filter.Config()
	start := time.Now()

	var reads, kmers, skipped atomic.Uint64

	work := make(chan fasta.Record, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range work {
				inserted, lost := insertRead(filter, cfg, rec.Seq)
				reads.Add(1)
				kmers.Add(inserted)
				skipped.Add(lost)
			}
		}()
	}

	var srcErr error
feed:
	for {
		rec, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			srcErr = fmt.Errorf("build: read input: %w", err)
			break
		}
		select {
		case work <- rec:
		case <-ctx.Done():
			srcErr = ctx.Err()
			break feed
		}
	}
	close(work)
	wg.Wait()

	stats := Stats{
		Reads:          reads.Load(),
		Kmers:          kmers.Load(),
		SkippedWindows: skipped.Load(),
		Duration:       time.Since(start),
	}
	if srcErr != nil {
		return stats, srcErr
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordBuild(stats.Reads, stats.Kmers, stats.SkippedWindows, stats.Duration)
		opts.Metrics.UpdateFilter(filter.Occupancy(), filter.EstimatedFalsePositiveRate())
	}
	log.Info("filter build complete",
		logging.Reads(stats.Reads),
		logging.Kmers(stats.Kmers),
		logging.Uint64("skipped_windows", stats.SkippedWindows),
		logging.Occupancy(filter.Occupancy()),
		logging.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// insertRead inserts every k-mer window of seq, rolling the hash across
// valid stretches: one O(k) initialization per stretch, O(1) per
// position after that. Returns inserted window and lost window counts.
func insertRead(filter *bloom.Filter, cfg kmer.Config, seq []byte) (inserted, lost uint64) {
	k := cfg.K
	if len(seq) < k {
		return 0, 0
	}
	normalize(seq)

	var rh rollinghash.Hash
	var buf [kmer.MaxNumHashes]uint64
	valid := 0
	for pos := 0; pos < len(seq); pos++ {
		if !kmer.IsValidBase(seq[pos]) {
			valid = 0
			continue
		}
		valid++
		if valid == k {
			var err error
			rh, err = rollinghash.New(seq[pos-k+1:pos+1], cfg.NumHashes, k)
			if err != nil {
				// unreachable: the stretch was just validated
				panic(fmt.Sprintf("build: hash init on validated window: %v", err))
			}
		} else if valid > k {
			rh.RollRight(seq[pos-k], seq[pos])
		}
		if valid >= k {
			filter.Insert(rh.Hashes(buf[:0]))
			inserted++
		}
	}
	possible := uint64(len(seq) - k + 1)
	return inserted, possible - inserted
}

// normalize uppercases lowercase bases in place; every other byte is
// left alone and treated as invalid.
func normalize(seq []byte) {
	for i, b := range seq {
		if b >= 'a' && b <= 'z' {
			seq[i] = b - 'a' + 'A'
		}
	}
}
