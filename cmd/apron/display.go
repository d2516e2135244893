// cmd/apron/display.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"apron/sim"
)

// kindMessages maps aircraft kind to the console message templates for
// the three per-aircraft notifications. Kinds differ only in wording,
// so a lookup table replaces per-kind types.
var kindMessages = map[sim.AircraftKind]struct {
	landing, parked, holding string
}{
	sim.Airplane: {
		landing: "Airplane %s is landing on airstrip %d.",
		parked:  "Airplane %s was towed to garage %d.",
		holding: "Airplane %s is holding on airstrip %d; no ground crew available.",
	},
	sim.Helicopter: {
		landing: "Helicopter %s is setting down on airstrip %d.",
		parked:  "Helicopter %s was wheeled into garage %d.",
		holding: "Helicopter %s is holding on airstrip %d; no ground crew available.",
	},
}

func formatEvent(e sim.Event) string {
	switch e.Type {
	case sim.AircraftLandedEvent:
		return fmt.Sprintf(kindMessages[e.Kind].landing, e.Callsign, e.Airstrip)
	case sim.AircraftParkedEvent:
		return fmt.Sprintf(kindMessages[e.Kind].parked, e.Callsign, e.Garage)
	case sim.AircraftHoldingEvent:
		return fmt.Sprintf(kindMessages[e.Kind].holding, e.Callsign, e.Airstrip)
	case sim.AirstripFreedEvent:
		return fmt.Sprintf("Airstrip %d is clear.", e.Airstrip)
	default:
		return e.WrittenText
	}
}
