// sim/aircraft.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"apron/log"
)

// Callsign is an aircraft's registration; unique within a simulation.
type Callsign string

func (c Callsign) String() string { return string(c) }

// AircraftKind distinguishes aircraft only for display purposes; all
// kinds follow the same airborne -> landed -> parked lifecycle.
type AircraftKind int

const (
	Airplane AircraftKind = iota
	Helicopter
	NumAircraftKinds
)

func (k AircraftKind) String() string {
	return []string{"Airplane", "Helicopter"}[k]
}

type Aircraft struct {
	Callsign Callsign
	Kind     AircraftKind

	// Both are one-way: once set they are never cleared, and Parked
	// implies Landed.
	Landed bool
	Parked bool
}

// MarkLanded records touchdown; a no-op if the aircraft is already on
// the ground. It carries no notification side effects: the Sim posts
// events for the transitions it drives.
func (ac *Aircraft) MarkLanded() {
	ac.Landed = true
}

// MarkParked records final placement in a garage; a no-op if already
// parked.
func (ac *Aircraft) MarkParked() {
	ac.Parked = true
}

// Check validates the aircraft's state invariants, logging errors for
// any violations.
func (ac *Aircraft) Check(lg *log.Logger) {
	if ac.Parked && !ac.Landed {
		lg.Error("aircraft parked without landing", slog.Any("aircraft", ac))
	}
	if ac.Callsign == "" {
		lg.Error("aircraft with empty callsign", slog.Any("aircraft", ac))
	}
}

func (ac *Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("callsign", string(ac.Callsign)),
		slog.String("kind", ac.Kind.String()),
		slog.Bool("landed", ac.Landed),
		slog.Bool("parked", ac.Parked))
}
