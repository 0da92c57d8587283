// Package run drives complete simulation runs: the sequential reference
// loop and the partitioned worker group with its halo-exchange protocol,
// timing and reporting.
package run

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"traffic-ca/internal/comm"
	"traffic-ca/internal/results"
	"traffic-ca/internal/ring"
	"traffic-ca/internal/sims/traffic"
)

// Roads longer than this are never rendered to the console.
const maxRenderLen = 100

// Config holds the parameters of one simulation run.
type Config struct {
	RoadLength int
	Iterations int
	Density    float64
	Workers    int
	Seed       int64

	// StatsEvery > 0 reports velocity every that many iterations (plus a
	// rendered road when it is short enough). The reporting pays for its
	// own reduction and gather; the default loop has neither.
	StatsEvery int

	// Gather collects the final road at the coordinator into Result.Road.
	Gather bool

	// InitialRoad, when set, replaces random seeding. Its length must equal
	// RoadLength.
	InitialRoad []uint8

	// ResultsPath, when non-empty, receives an appended
	// mode,road_length,iterations,worker_count,elapsed_seconds record.
	ResultsPath string

	// Output receives coordinator console reporting; nil silences it.
	Output io.Writer
}

// Validate rejects configurations the simulation must never start with.
func (c *Config) Validate() error {
	if c.RoadLength < 1 {
		return fmt.Errorf("road length must be positive, got %d", c.RoadLength)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iteration count must be positive, got %d", c.Iterations)
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("density must be within [0, 1], got %g", c.Density)
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be positive, got %d", c.Workers)
	}
	if c.Workers > c.RoadLength {
		// A worker with zero owned cells has no boundary cells to exchange.
		return fmt.Errorf("worker count %d exceeds road length %d", c.Workers, c.RoadLength)
	}
	if c.InitialRoad != nil && len(c.InitialRoad) != c.RoadLength {
		return fmt.Errorf("initial road has %d cells, road length is %d",
			len(c.InitialRoad), c.RoadLength)
	}
	return nil
}

func (c *Config) printf(format string, args ...any) {
	if c.Output != nil {
		fmt.Fprintf(c.Output, format, args...)
	}
}

// Result reports what the coordinator observed during a run.
type Result struct {
	TotalCars int
	Elapsed   time.Duration
	Road      []uint8 // final lattice, only when Config.Gather is set
}

// Sequential runs the non-partitioned reference variant.
func Sequential(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	road := traffic.NewRoad(cfg.RoadLength)
	if cfg.InitialRoad != nil {
		road.SetCells(cfg.InitialRoad)
	} else {
		road.Seed(cfg.Seed, cfg.Density)
	}
	total := road.Count()
	cfg.printf("road %d cells, %d iterations, density %.2f, 1 worker\n",
		cfg.RoadLength, cfg.Iterations, cfg.Density)
	cfg.printf("total cars: %d\n", total)

	start := time.Now()
	for t := 0; t < cfg.Iterations; t++ {
		moved := road.Step()
		if cfg.StatsEvery > 0 && (t+1)%cfg.StatsEvery == 0 {
			reportStats(&cfg, t+1, moved, total, road.Cells())
		}
	}
	elapsed := time.Since(start)
	cfg.printf("elapsed: %.6f s\n", elapsed.Seconds())

	res := Result{TotalCars: total, Elapsed: elapsed}
	if cfg.Gather {
		res.Road = append([]uint8(nil), road.Cells()...)
	}
	if cfg.ResultsPath != "" {
		if err := results.Append(cfg.ResultsPath, "sequential",
			cfg.RoadLength, cfg.Iterations, 1, elapsed.Seconds()); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Parallel runs the partitioned variant: Workers goroutines, each owning one
// road segment, coordinating only through the comm collectives. The drive
// sequence per worker is: allocate and seed, reduce the initial car count,
// barrier, then iterate exchange-step-swap, then a final barrier before the
// coordinator stops the clock.
func Parallel(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	group := comm.NewGroup(cfg.Workers)
	counts := ring.Counts(cfg.RoadLength, cfg.Workers)
	offsets := ring.Offsets(cfg.RoadLength, cfg.Workers)

	var res Result
	var eg errgroup.Group
	for rank := 0; rank < cfg.Workers; rank++ {
		rank := rank
		eg.Go(func() error {
			c := group.Comm(rank)
			w := traffic.NewWorker(c, cfg.RoadLength)
			if cfg.InitialRoad != nil {
				w.SeedFrom(cfg.InitialRoad)
			} else {
				w.Seed(cfg.Seed, cfg.Density)
			}

			total := c.AllReduceSum(w.Count())
			if rank == 0 {
				cfg.printf("road %d cells, %d iterations, density %.2f, %d workers\n",
					cfg.RoadLength, cfg.Iterations, cfg.Density, cfg.Workers)
				cfg.printf("total cars: %d\n", total)
			}

			c.Barrier()
			var start time.Time
			if rank == 0 {
				start = time.Now()
			}

			for t := 0; t < cfg.Iterations; t++ {
				w.Exchange()
				moved := w.Step()
				w.Swap()

				if cfg.StatsEvery > 0 && (t+1)%cfg.StatsEvery == 0 {
					globalMoved := c.AllReduceSum(moved)
					var full []uint8
					if cfg.RoadLength <= maxRenderLen {
						full = c.GatherV(w.Owned(), counts, offsets, cfg.RoadLength)
					}
					if rank == 0 {
						reportStats(&cfg, t+1, globalMoved, total, full)
					}
				}
			}

			c.Barrier()
			if rank == 0 {
				res.Elapsed = time.Since(start)
				res.TotalCars = total
				cfg.printf("elapsed: %.6f s\n", res.Elapsed.Seconds())
			}

			if cfg.Gather {
				if full := c.GatherV(w.Owned(), counts, offsets, cfg.RoadLength); rank == 0 {
					res.Road = full
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	if cfg.ResultsPath != "" {
		if err := results.Append(cfg.ResultsPath, "parallel",
			cfg.RoadLength, cfg.Iterations, cfg.Workers, res.Elapsed.Seconds()); err != nil {
			return res, err
		}
	}
	return res, nil
}

func reportStats(cfg *Config, iteration, moved, total int, road []uint8) {
	velocity := 0.0
	if total > 0 {
		velocity = float64(moved) / float64(total)
	}
	cfg.printf("iter %d: velocity=%.4f moved=%d\n", iteration, velocity, moved)
	if road != nil && len(road) <= maxRenderLen {
		cfg.printf("%s\n", traffic.FormatRoad(road))
	}
}
