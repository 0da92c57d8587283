// Command traffic runs the traffic cellular automaton as a batch job,
// either as the single sequential reference loop or partitioned across a
// group of message-passing workers.
//
// Usage: traffic [flags] [road_length] [iterations] [density]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"traffic-ca/internal/run"
	"traffic-ca/internal/sims/traffic"
)

func main() {
	fs := flag.NewFlagSet("traffic", flag.ExitOnError)
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "worker count for the partitioned run")
	seed := fs.Int64("seed", 42, "seed for road initialization")
	sequential := fs.Bool("sequential", false, "run the non-partitioned reference variant")
	show := fs.Bool("show", false, "gather and print the final road (short roads only)")
	statsEvery := fs.Int("stats-every", 0, "report velocity every k iterations (0 disables)")
	resultsPath := fs.String("results", "results_ca.csv", "results log to append to (empty disables)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: traffic [flags] [road_length] [iterations] [density]")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	cfg := run.Config{
		RoadLength:  1000,
		Iterations:  1000,
		Density:     0.3,
		Workers:     *workers,
		Seed:        *seed,
		StatsEvery:  *statsEvery,
		ResultsPath: *resultsPath,
		Output:      os.Stdout,
	}

	args := fs.Args()
	fail := func(err error) {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}
	var err error
	if len(args) > 0 {
		if cfg.RoadLength, err = strconv.Atoi(args[0]); err != nil {
			fail(fmt.Errorf("road_length: %w", err))
		}
	}
	if len(args) > 1 {
		if cfg.Iterations, err = strconv.Atoi(args[1]); err != nil {
			fail(fmt.Errorf("iterations: %w", err))
		}
	}
	if len(args) > 2 {
		if cfg.Density, err = strconv.ParseFloat(args[2], 64); err != nil {
			fail(fmt.Errorf("density: %w", err))
		}
	}
	if *show {
		cfg.Gather = true
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	var res run.Result
	if *sequential {
		cfg.Workers = 1
		res, err = run.Sequential(cfg)
	} else {
		res, err = run.Parallel(cfg)
	}
	if err != nil {
		log.Fatal(err)
	}
	if res.Road != nil && len(res.Road) <= 100 {
		fmt.Println(traffic.FormatRoad(res.Road))
	}
}
