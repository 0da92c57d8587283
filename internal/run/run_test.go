package run

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"traffic-ca/internal/core"
)

func TestValidateRejectsBadConfig(t *testing.T) {
	base := Config{RoadLength: 8, Iterations: 1, Density: 0.3, Workers: 1}

	for name, mutate := range map[string]func(*Config){
		"zero road length":        func(c *Config) { c.RoadLength = 0 },
		"negative iterations":     func(c *Config) { c.Iterations = -1 },
		"density above one":       func(c *Config) { c.Density = 1.5 },
		"negative density":        func(c *Config) { c.Density = -0.1 },
		"zero workers":            func(c *Config) { c.Workers = 0 },
		"more workers than cells": func(c *Config) { c.Workers = 9 },
		"initial road too big":    func(c *Config) { c.InitialRoad = make([]uint8, 9) },
	} {
		cfg := base
		mutate(&cfg)
		require.Error(t, cfg.Validate(), name)
		_, err := Parallel(cfg)
		require.Error(t, err, name)
	}
	require.NoError(t, base.Validate())
}

func TestParallelMatchesSequential(t *testing.T) {
	const n = 64
	initial := make([]uint8, n)
	core.NewRNG(5).FillDensity(initial, 0.35)

	base := Config{
		RoadLength:  n,
		Iterations:  10,
		Density:     0.35,
		Seed:        5,
		Workers:     1,
		Gather:      true,
		InitialRoad: initial,
	}

	seq, err := Sequential(base)
	require.NoError(t, err)

	for _, workers := range []int{1, 3, 5} {
		cfg := base
		cfg.Workers = workers
		par, err := Parallel(cfg)
		require.NoError(t, err)
		require.Equal(t, seq.TotalCars, par.TotalCars, "workers=%d", workers)
		require.Equal(t, seq.Road, par.Road, "workers=%d", workers)
	}
}

func TestParallelFullDensityFixedPoint(t *testing.T) {
	cfg := Config{
		RoadLength: 8,
		Iterations: 1,
		Density:    1.0,
		Seed:       1,
		Workers:    2,
		Gather:     true,
	}
	res, err := Parallel(cfg)
	require.NoError(t, err)
	require.Equal(t, 8, res.TotalCars)
	require.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 1}, res.Road)
}

func TestParallelAppendsResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_ca.csv")
	cfg := Config{
		RoadLength:  16,
		Iterations:  2,
		Density:     0.3,
		Seed:        9,
		Workers:     2,
		ResultsPath: path,
	}
	_, err := Parallel(cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "parallel,16,2,2,"),
		"unexpected record: %q", data)
}

func TestStatsReporting(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		RoadLength: 8,
		Iterations: 4,
		Density:    0.3,
		Seed:       2,
		Workers:    2,
		StatsEvery: 2,
		Output:     &out,
	}
	_, err := Parallel(cfg)
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "total cars:")
	require.Contains(t, text, "iter 2: velocity=")
	require.Contains(t, text, "iter 4: velocity=")
	require.Contains(t, text, "elapsed:")
}
