// sim/state.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"apron/util"

	"github.com/brunoga/deep"
)

// GarageSummary reports a garage's final occupancy for display.
type GarageSummary struct {
	Number    int
	Callsigns []Callsign
}

// StateUpdate is a point-in-time copy of the simulation's observable
// state; it shares no storage with the live Sim and is safe to hold
// across passes.
type StateUpdate struct {
	Passes int

	Airborne, Landed, Parked int

	Aircraft []*Aircraft
	Garages  []GarageSummary
}

func (s *Sim) GetStateUpdate() StateUpdate {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	u := StateUpdate{
		Passes:   s.Passes,
		Aircraft: deep.MustCopy(s.Aircraft),
		Garages: util.MapSlice(s.Garages, func(g *Garage) GarageSummary {
			return GarageSummary{
				Number: g.Number,
				Callsigns: util.MapSlice(g.Occupants(),
					func(ac *Aircraft) Callsign { return ac.Callsign }),
			}
		}),
	}

	u.Parked = len(util.FilterSlice(s.Aircraft, func(ac *Aircraft) bool { return ac.Parked }))
	u.Landed = len(util.FilterSlice(s.Aircraft, func(ac *Aircraft) bool { return ac.Landed && !ac.Parked }))
	u.Airborne = len(s.Aircraft) - u.Parked - u.Landed

	return u
}
