package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/daparic/antigrav/internal/oracle"
	"github.com/daparic/antigrav/perft"
	"github.com/daparic/antigrav/rules"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("perft: ")
	os.Exit(run(os.Args[1:]))
}

// run does the work of main so deferred cleanup happens before the exit code
// is returned.
func run(args []string) int {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fen := fs.String("fen", rules.StartFEN, "FEN string (defaults to initial position)")
	depth := fs.Int("depth", 0, "Perft depth (required)")
	divide := fs.Bool("divide", false, "Print per-move node counts at root")
	repeat := fs.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := fs.String("label", "", "Optional label prefix for one-line output")
	workers := fs.Int("workers", runtime.NumCPU(), "Root moves counted in parallel")
	hash := fs.Int("hash", 0, "Transposition cache entries per worker (0 disables)")
	verify := fs.Bool("verify", false, "Cross-check the count against dragontoothmg and goosemg")
	suite := fs.String("suite", "", "Check every position of a perft EPD suite up to -depth (0 = all listed depths)")
	cpuProf := fs.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := fs.String("memprofile", "", "Write heap profile to file after run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opt := perft.Options{Workers: *workers, HashEntries: *hash}

	if *suite != "" {
		return runSuite(*suite, *depth, opt)
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		return 2
	}

	pos, err := rules.ParseFEN(*fen)
	if err != nil {
		log.Printf("parse FEN: %v", err)
		return 2
	}

	if *divide {
		branches := perft.Run(pos, *depth, opt)
		for _, b := range branches {
			fmt.Printf("%s: %d\n", b.Move, b.Nodes)
		}
		fmt.Printf("Total: %d\n", perft.Total(branches))
		return 0
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Printf("creating cpuprofile: %v", err)
			return 2
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Printf("start cpu profile: %v", err)
			_ = f.Close()
			return 2
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes, nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes = perft.Total(perft.Run(pos, *depth, opt))
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Printf("creating memprofile: %v", err)
			return 2
		}
		err = pprof.WriteHeapProfile(f)
		_ = f.Close()
		if err != nil {
			log.Printf("write heap profile: %v", err)
			return 2
		}
	}

	if *verify {
		report, err := oracle.Check(*fen, *depth, nodes)
		if err != nil {
			log.Printf("verify: %v", err)
			return 2
		}
		if !report.OK() {
			log.Printf("mismatch: ours %d, dragontoothmg %d, goosemg %d; missing %v, extra %v",
				report.Nodes, report.DragontoothNodes, report.GooseNodes, report.Missing, report.Extra)
			return 1
		}
		fmt.Println("verified against dragontoothmg and goosemg")
	}
	return 0
}

func runSuite(path string, depth int, opt perft.Options) int {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("open suite: %v", err)
		return 2
	}
	defer f.Close()
	entries, err := perft.ParseSuite(f)
	if err != nil {
		log.Print(err)
		return 2
	}
	start := time.Now()
	bad := perft.Verify(entries, depth, opt)
	for _, m := range bad {
		fmt.Println("FAIL", m)
	}
	fmt.Printf("%d positions, %d failures, %s\n", len(entries), len(bad), time.Since(start))
	if len(bad) > 0 {
		return 1
	}
	return 0
}
