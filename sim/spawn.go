// sim/spawn.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"apron/log"
	"apron/rand"
)

// I and O are excluded from registration suffixes, as in real-world
// tail numbers.
var registrationLetters = []byte("ABCDEFGHJKLMNPQRSTUVWXYZ")

// randomRegistration returns an N-number style registration, e.g.
// "N347TB".
func randomRegistration(r *rand.Rand) Callsign {
	var sb strings.Builder
	sb.WriteByte('N')
	sb.WriteByte(byte('1' + r.Intn(9)))
	for range 2 {
		sb.WriteByte(byte('0' + r.Intn(10)))
	}
	for range 2 {
		sb.WriteByte(rand.SampleSlice(r, registrationLetters))
	}
	return Callsign(sb.String())
}

// makeFleet creates the full set of aircraft for a run up front;
// aircraft exist for the lifetime of the simulation and are never
// destroyed. Registrations are unique within the fleet.
func makeFleet(numAirplanes, numHelicopters int, r *rand.Rand, lg *log.Logger) []*Aircraft {
	var fleet []*Aircraft

	taken := func(cs Callsign) bool {
		return slices.ContainsFunc(fleet, func(ac *Aircraft) bool { return ac.Callsign == cs })
	}

	spawn := func(kind AircraftKind, n int) {
		for range n {
			cs := randomRegistration(r)
			for range 100 {
				if !taken(cs) {
					break
				}
				cs = randomRegistration(r)
			}
			if taken(cs) {
				// The registration space is far larger than any plausible
				// fleet, but don't loop forever if we're unlucky.
				cs = Callsign(fmt.Sprintf("%s%d", cs, len(fleet)))
				lg.Warn("fell back to synthesized registration", slog.String("callsign", string(cs)))
			}

			fleet = append(fleet, &Aircraft{Callsign: cs, Kind: kind})
		}
	}

	spawn(Airplane, numAirplanes)
	spawn(Helicopter, numHelicopters)

	return fleet
}
