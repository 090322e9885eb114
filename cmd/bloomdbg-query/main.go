// bloomdbg-query loads a saved Bloom filter and answers graph queries
// for literal k-mers: existence, neighbors, degrees, and incident edges.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dd0wney/cluso-bloomdbg/pkg/bloom"
	"github.com/dd0wney/cluso-bloomdbg/pkg/dbg"
)

func main() {
	filterPath := flag.String("filter", "", "filter file written by bloomdbg-build (required)")
	flag.Parse()

	if *filterPath == "" || flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "usage: bloomdbg-query -filter filter.cbdf <exists|adjacent|degree|edges> kmer [kmer ...]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	filter, info, err := bloom.Load(*filterPath)
	if err != nil {
		log.Fatalf("load filter: %v", err)
	}
	cfg := filter.Config()
	fmt.Printf("# filter %s: k=%d hashes=%d seed=%s build=%s occupancy=%.4f\n",
		*filterPath, cfg.K, cfg.NumHashes, cfg.Seed, info.BuildID, filter.Occupancy())

	graph, err := dbg.NewGraph(filter, cfg)
	if err != nil {
		log.Fatalf("construct graph: %v", err)
	}

	op := flag.Arg(0)
	for _, seq := range flag.Args()[1:] {
		u, err := graph.Vertex(strings.ToUpper(seq))
		if err != nil {
			log.Fatalf("k-mer %q: %v", seq, err)
		}
		switch op {
		case "exists":
			fmt.Printf("%s\t%v\n", u, graph.VertexExists(u))
		case "adjacent":
			var neighbors []string
			for it := graph.AdjacentVertices(u); !it.Exhausted(); it.Advance() {
				neighbors = append(neighbors, it.Vertex().Kmer())
			}
			fmt.Printf("%s\t%s\n", u, strings.Join(neighbors, " "))
		case "degree":
			fmt.Printf("%s\tout=%d in=%d\n", u, graph.OutDegree(u), graph.InDegree(u))
		case "edges":
			var edges []string
			for it := graph.OutEdges(u); !it.Exhausted(); it.Advance() {
				e := it.Edge()
				edges = append(edges, fmt.Sprintf("%s->%s", e.Source, e.Target))
			}
			for it := graph.InEdges(u); !it.Exhausted(); it.Advance() {
				e := it.Edge()
				edges = append(edges, fmt.Sprintf("%s->%s", e.Source, e.Target))
			}
			fmt.Printf("%s\t%s\n", u, strings.Join(edges, " "))
		default:
			log.Fatalf("unknown operation %q", op)
		}
	}
}
