// sim/export_test.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"apron/log"
	"apron/rand"
)

// NewTestSim creates a Sim with an empty fleet and the given resource
// counts, bypassing NewSim's configuration validation so that tests
// can construct boundary cases directly. Exported only to _test files
// via Go's export_test.go convention.
func NewTestSim(numAirstrips, numGarages int, seed int64, lg *log.Logger) *Sim {
	s := &Sim{
		Rand:        rand.MakeWithSeed(seed),
		eventStream: NewEventStream(lg),
		lg:          lg,
	}
	for i := range numAirstrips {
		s.Airstrips = append(s.Airstrips, &Airstrip{Number: i + 1})
	}
	for i := range numGarages {
		s.Garages = append(s.Garages, &Garage{Number: i + 1})
	}
	return s
}

func (s *Sim) AddTestAircraft(ac *Aircraft) {
	s.Aircraft = append(s.Aircraft, ac)
}

func (s *Sim) LeastLoadedGarage() *Garage {
	return s.leastLoadedGarage()
}

func (e *EventStream) Compact() { e.compact() }
