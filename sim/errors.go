// sim/errors.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrAircraftNotLanded     = errors.New("Aircraft has not landed")
	ErrAirstripVacant        = errors.New("Airstrip has no occupant")
	ErrNoAircraftConfigured  = errors.New("No aircraft configured")
	ErrNoAirstripsConfigured = errors.New("No airstrips configured")
	ErrNoGaragesConfigured   = errors.New("No garages configured")
	ErrSimStalled            = errors.New("Simulation did not complete within the pass limit")
	ErrUnknownCallsign       = errors.New("Unknown callsign in saved simulation")
)
