// bloomdbg-build populates a Bloom filter with the k-mers of one or more
// FASTA/FASTQ read sets and writes it to disk for bloomdbg-query and the
// assembly tooling built on the graph view.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/dd0wney/cluso-bloomdbg/pkg/bloom"
	"github.com/dd0wney/cluso-bloomdbg/pkg/build"
	"github.com/dd0wney/cluso-bloomdbg/pkg/config"
	"github.com/dd0wney/cluso-bloomdbg/pkg/fasta"
	"github.com/dd0wney/cluso-bloomdbg/pkg/logging"
	"github.com/dd0wney/cluso-bloomdbg/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override it)")
	k := flag.Int("k", 0, "k-mer length")
	hashes := flag.Int("hashes", 0, "number of hash functions")
	seed := flag.String("seed", "", "spaced-seed pattern of 1s and 0s, length k")
	bits := flag.Uint64("bits", 0, "Bloom filter size in bits")
	workers := flag.Int("workers", 0, "insertion workers (default: NumCPU)")
	out := flag.String("out", "", "output filter file (required)")
	logLevel := flag.String("log-level", "", "debug, info, warn, or error")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address during the build")
	flag.Parse()

	if *out == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: bloomdbg-build -out filter.cbdf [flags] reads.fa [reads2.fq ...]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *k != 0 {
		cfg.K = *k
	}
	if *hashes != 0 {
		cfg.NumHashes = *hashes
	}
	if *seed != "" {
		cfg.SpacedSeed = *seed
	}
	if *bits != 0 {
		cfg.FilterBits = *bits
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel)).
		With(logging.Component("bloomdbg-build"))

	kc, err := cfg.KmerConfig()
	if err != nil {
		log.Fatalf("invalid k-mer configuration: %v", err)
	}
	filter, err := bloom.New(cfg.FilterBits, kc)
	if err != nil {
		log.Fatalf("allocate filter: %v", err)
	}

	registry := metrics.NewRegistry()
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", registry.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Warn("metrics server stopped", logging.Err(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := build.Options{Workers: cfg.Workers, Logger: logger, Metrics: registry}
	var total build.Stats
	for _, path := range flag.Args() {
		stats, err := buildFile(ctx, filter, path, opts)
		if err != nil {
			log.Fatalf("build %s: %v", path, err)
		}
		total.Reads += stats.Reads
		total.Kmers += stats.Kmers
		total.SkippedWindows += stats.SkippedWindows
		total.Duration += stats.Duration
	}

	info, err := bloom.Save(*out, filter)
	if err != nil {
		log.Fatalf("save filter: %v", err)
	}
	logger.Info("filter saved",
		logging.Path(*out),
		logging.String("build_id", info.BuildID.String()),
		logging.KmerLength(kc.K),
		logging.NumHashes(kc.NumHashes),
		logging.FilterBits(filter.Bits()),
		logging.Reads(total.Reads),
		logging.Kmers(total.Kmers),
		logging.Occupancy(filter.Occupancy()),
		logging.Duration("total_duration", total.Duration),
	)
}

func buildFile(ctx context.Context, filter *bloom.Filter, path string, opts build.Options) (build.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return build.Stats{}, err
	}
	defer f.Close()
	return build.Run(ctx, filter, fasta.NewReader(f), opts)
}
