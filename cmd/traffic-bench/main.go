// Command traffic-bench sweeps the partitioned simulation across road
// lengths and worker counts, keeps the best time per case and reports
// speedup against the sequential baseline. Every run also lands in the
// shared results log.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"traffic-ca/internal/run"
)

type sweepCase struct {
	roadLength int
	workers    int
}

type sweepResult struct {
	c       sweepCase
	elapsed time.Duration
	speedup float64
}

func main() {
	iterations := flag.Int("iterations", 1000, "iterations per case")
	density := flag.Float64("density", 0.3, "initial car density")
	seed := flag.Int64("seed", 42, "seed for road initialization")
	lengths := flag.String("lengths", "1000,10000,100000", "comma-separated road lengths")
	workerList := flag.String("workers", "", "comma-separated worker counts (default 1..GOMAXPROCS)")
	repeat := flag.Int("repeat", 3, "runs per case, best time kept")
	resultsPath := flag.String("results", "results_ca.csv", "results log to append to (empty disables)")
	flag.Parse()

	ns, err := parseInts(*lengths)
	if err != nil {
		log.Fatalf("-lengths: %v", err)
	}
	var ws []int
	if *workerList == "" {
		for w := 1; w <= runtime.GOMAXPROCS(0); w++ {
			ws = append(ws, w)
		}
	} else if ws, err = parseInts(*workerList); err != nil {
		log.Fatalf("-workers: %v", err)
	}

	var out []sweepResult
	for _, n := range ns {
		baseCfg := run.Config{
			RoadLength:  n,
			Iterations:  *iterations,
			Density:     *density,
			Seed:        *seed,
			Workers:     1,
			ResultsPath: *resultsPath,
		}
		baseline, err := bestOf(*repeat, func() (run.Result, error) {
			return run.Sequential(baseCfg)
		})
		if err != nil {
			log.Fatalf("sequential n=%d: %v", n, err)
		}
		log.Printf("n=%d sequential baseline %.6fs", n, baseline.Seconds())

		for _, w := range ws {
			cfg := baseCfg
			cfg.Workers = w
			elapsed, err := bestOf(*repeat, func() (run.Result, error) {
				return run.Parallel(cfg)
			})
			if err != nil {
				log.Fatalf("parallel n=%d workers=%d: %v", n, w, err)
			}
			out = append(out, sweepResult{
				c:       sweepCase{roadLength: n, workers: w},
				elapsed: elapsed,
				speedup: baseline.Seconds() / elapsed.Seconds(),
			})
			log.Printf("n=%d workers=%d best %.6fs speedup %.2fx",
				n, w, elapsed.Seconds(), out[len(out)-1].speedup)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].c.roadLength != out[j].c.roadLength {
			return out[i].c.roadLength < out[j].c.roadLength
		}
		return out[i].c.workers < out[j].c.workers
	})
	fmt.Printf("%12s %8s %12s %8s\n", "road_length", "workers", "elapsed_s", "speedup")
	for _, r := range out {
		fmt.Printf("%12d %8d %12.6f %8.2f\n",
			r.c.roadLength, r.c.workers, r.elapsed.Seconds(), r.speedup)
	}
}

func bestOf(repeat int, f func() (run.Result, error)) (time.Duration, error) {
	if repeat < 1 {
		repeat = 1
	}
	var best time.Duration
	for i := 0; i < repeat; i++ {
		res, err := f()
		if err != nil {
			return 0, err
		}
		if best == 0 || res.Elapsed < best {
			best = res.Elapsed
		}
	}
	return best, nil
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if v < 1 {
			return nil, fmt.Errorf("value %d must be positive", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
