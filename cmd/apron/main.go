// cmd/apron/main.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// apron simulates an airport's ground resources: arriving aircraft
// compete for a fixed set of airstrips and are then towed, as ground
// crew becomes available, into load-balanced parking garages.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"

	"apron/log"
	"apron/sim"
	"apron/util"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	numAirplanes   = flag.Int("airplanes", 100, "number of airplanes to spawn")
	numHelicopters = flag.Int("helicopters", 0, "number of helicopters to spawn")
	numAirstrips   = flag.Int("airstrips", 9, "number of airstrips")
	numGarages     = flag.Int("garages", 6, "number of garages")
	seed           = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	maxPasses      = flag.Int("maxpasses", 0, "abort after this many control-loop passes (0 for no limit)")
	logLevel       = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir         = flag.String("logdir", "", "log file directory")
	savedSimPath   = flag.String("savefile", "", "path for saving an aborted simulation (and resuming it with -resume)")
	resumeSim      = flag.Bool("resume", false, "resume the simulation saved at -savefile")
	resetSim       = flag.Bool("resetsim", false, "discard the simulation saved at -savefile and do not try to resume it")
	numRuns        = flag.Int("runs", 1, "number of independently-seeded simulations to run")
	dumpState      = flag.Bool("dump", false, "dump the final simulation state for debugging")
	quiet          = flag.Bool("quiet", false, "suppress per-aircraft console messages")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	config := sim.NewSimConfiguration{
		NumAirplanes:   *numAirplanes,
		NumHelicopters: *numHelicopters,
		NumAirstrips:   *numAirstrips,
		NumGarages:     *numGarages,
		Seed:           *seed,
		MaxPasses:      *maxPasses,
	}

	var err error
	if *numRuns > 1 {
		err = runBatch(*numRuns, config, lg)
	} else {
		err = runOne(config, lg)
	}
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "apron: %v\n", err)
		os.Exit(1)
	}
}

func runOne(config sim.NewSimConfiguration, lg *log.Logger) error {
	if *resetSim {
		if *savedSimPath == "" {
			return fmt.Errorf("-resetsim requires -savefile")
		}
		if err := os.Remove(*savedSimPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("discarding saved simulation: %w", err)
		}
	}

	var s *sim.Sim
	var err error
	if *resumeSim && !*resetSim {
		if *savedSimPath == "" {
			return fmt.Errorf("-resume requires -savefile")
		}
		s, err = sim.LoadSim(*savedSimPath, lg)
	} else {
		s, err = sim.NewSim(config, lg)
	}
	if err != nil {
		return err
	}
	defer s.Destroy()

	sub := s.Subscribe()
	defer sub.Unsubscribe()

	for {
		done := s.Update()
		if !*quiet {
			for _, e := range sub.Get() {
				fmt.Println(formatEvent(e))
			}
		}
		if done {
			break
		}

		// A resumed simulation carries its own pass limit; don't let
		// the flag default silently lift it.
		if limit := s.PassLimit(); limit > 0 && s.Passes >= limit {
			if *savedSimPath != "" {
				if err := s.Save(*savedSimPath); err != nil {
					return fmt.Errorf("saving simulation: %w", err)
				}
				fmt.Printf("Pass limit reached; simulation saved to %s\n", *savedSimPath)
				return nil
			}
			return sim.ErrSimStalled
		}
	}

	u := s.GetStateUpdate()
	fmt.Printf("All aircraft parked after %d passes.\n", u.Passes)
	for _, g := range u.Garages {
		fmt.Printf("Garage %d holds %d aircraft.\n", g.Number, len(g.Callsigns))
	}

	if *dumpState {
		godump.Dump(u)
	}

	return nil
}

// runBatch executes n independently-seeded simulations concurrently and
// reports the distribution of pass counts.
func runBatch(n int, config sim.NewSimConfiguration, lg *log.Logger) error {
	baseSeed := config.Seed
	if baseSeed == 0 {
		baseSeed = 1
	}

	var mu sync.Mutex
	passes := make([]int, 0, n)
	garageTotals := make(map[int]int)

	eg := errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		eg.Go(func() error {
			cfg := config
			cfg.Seed = baseSeed + int64(i)

			s, err := sim.NewSim(cfg, lg)
			if err != nil {
				return err
			}
			defer s.Destroy()

			if err := s.Run(); err != nil {
				return fmt.Errorf("seed %d: %w", cfg.Seed, err)
			}

			u := s.GetStateUpdate()
			mu.Lock()
			passes = append(passes, u.Passes)
			for _, g := range u.Garages {
				garageTotals[g.Number] += len(g.Callsigns)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	lo := util.ReduceSlice(passes, func(v, r int) int { return min(v, r) }, passes[0])
	hi := util.ReduceSlice(passes, func(v, r int) int { return max(v, r) }, passes[0])
	sum := util.ReduceSlice(passes, func(v, r int) int { return v + r }, 0)

	fmt.Printf("%d runs, seeds %d..%d: passes min %d / mean %.1f / max %d\n",
		n, baseSeed, baseSeed+int64(n)-1, lo, float64(sum)/float64(n), hi)
	for _, num := range util.SortedMapKeys(garageTotals) {
		fmt.Printf("Garage %d parked %d aircraft in total.\n", num, garageTotals[num])
	}

	return nil
}
