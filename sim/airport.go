// sim/airport.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"apron/util"
)

// Airstrip is a single-occupancy landing resource. It does no
// validation of its own: "only assign to a vacant strip" is the Sim's
// invariant, not the strip's.
type Airstrip struct {
	Number   int // 1-based
	occupant *Aircraft
}

func (a *Airstrip) Occupant() *Aircraft { return a.occupant }

// Assign unconditionally overwrites the strip's occupant; the caller
// must have confirmed the strip is vacant.
func (a *Airstrip) Assign(ac *Aircraft) { a.occupant = ac }

func (a *Airstrip) Release() { a.occupant = nil }

func (a *Airstrip) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("number", a.Number)}
	if a.occupant != nil {
		attrs = append(attrs, slog.Any("occupant", a.occupant))
	}
	return slog.GroupValue(attrs...)
}

// Garage is an unbounded parking resource. Aircraft are never removed
// once placed.
type Garage struct {
	Number    int // 1-based
	occupants []*Aircraft
}

// Place refuses aircraft that have not landed, leaving the garage
// unchanged; otherwise it marks the aircraft parked and appends it.
func (g *Garage) Place(ac *Aircraft) bool {
	if !ac.Landed {
		return false
	}

	ac.MarkParked()
	g.occupants = append(g.occupants, ac)
	return true
}

// Count returns the number of parked aircraft; this is the Sim's
// load-balancing metric.
func (g *Garage) Count() int { return len(g.occupants) }

func (g *Garage) Occupants() []*Aircraft { return util.DuplicateSlice(g.occupants) }

func (g *Garage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("number", g.Number),
		slog.Int("count", len(g.occupants)))
}
