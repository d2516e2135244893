// sim/sim_test.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim_test

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"apron/log"
	"apron/sim"
)

func discardLogger() *log.Logger {
	return &log.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestNewSimValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  sim.NewSimConfiguration
		wantErr error
	}{
		{
			name:    "no aircraft",
			config:  sim.NewSimConfiguration{NumAirstrips: 1, NumGarages: 1},
			wantErr: sim.ErrNoAircraftConfigured,
		},
		{
			name:    "no garages",
			config:  sim.NewSimConfiguration{NumAirplanes: 1, NumAirstrips: 1},
			wantErr: sim.ErrNoGaragesConfigured,
		},
		{
			name:    "no airstrips",
			config:  sim.NewSimConfiguration{NumAirplanes: 1, NumGarages: 1},
			wantErr: sim.ErrNoAirstripsConfigured,
		},
		{
			name:    "negative garages",
			config:  sim.NewSimConfiguration{NumAirplanes: 1, NumAirstrips: 1, NumGarages: -1},
			wantErr: sim.ErrNoGaragesConfigured,
		},
		{
			name:    "negative airstrips",
			config:  sim.NewSimConfiguration{NumAirplanes: 1, NumAirstrips: -1, NumGarages: 1},
			wantErr: sim.ErrNoAirstripsConfigured,
		},
		{
			name:    "negative airplanes cancel helicopters",
			config:  sim.NewSimConfiguration{NumAirplanes: -3, NumHelicopters: 3, NumAirstrips: 1, NumGarages: 1},
			wantErr: sim.ErrNoAircraftConfigured,
		},
		{
			name:    "negative helicopters",
			config:  sim.NewSimConfiguration{NumAirplanes: 2, NumHelicopters: -1, NumAirstrips: 1, NumGarages: 1},
			wantErr: sim.ErrNoAircraftConfigured,
		},
		{
			name:   "minimal valid",
			config: sim.NewSimConfiguration{NumAirplanes: 1, NumAirstrips: 1, NumGarages: 1, Seed: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := sim.NewSim(tc.config, discardLogger())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v; expected %v", err, tc.wantErr)
			}
			if s != nil {
				s.Destroy()
			}
		})
	}
}

func TestRequestLandFirstFit(t *testing.T) {
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 3, NumAirstrips: 2, NumGarages: 1, Seed: 1,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	sub := s.Subscribe()
	defer sub.Unsubscribe()

	for i, ac := range s.Aircraft {
		admitted := s.RequestLand(ac)
		if want := i < 2; admitted != want {
			t.Errorf("aircraft %d: admitted %v; expected %v", i, admitted, want)
		}
	}

	// The first two aircraft take airstrips 1 and 2 in index order; the
	// third stays airborne.
	for i, ac := range s.Aircraft {
		if want := i < 2; ac.Landed != want {
			t.Errorf("aircraft %d: landed %v; expected %v", i, ac.Landed, want)
		}
	}
	for i, strip := range s.Airstrips {
		if strip.Occupant() != s.Aircraft[i] {
			t.Errorf("airstrip %d occupied by %v; expected %v", strip.Number,
				strip.Occupant(), s.Aircraft[i])
		}
	}

	events := sub.Get()
	landings := 0
	for _, e := range events {
		if e.Type == sim.AircraftLandedEvent {
			landings++
			if e.Airstrip != landings {
				t.Errorf("landed on airstrip %d; expected %d", e.Airstrip, landings)
			}
		}
	}
	if landings != 2 {
		t.Errorf("%d landing events; expected 2", landings)
	}
}

func TestRequestMoveToGarageVacantStrip(t *testing.T) {
	s := sim.NewTestSim(1, 1, 1, discardLogger())
	defer s.Destroy()

	if err := s.RequestMoveToGarage(s.Airstrips[0]); !errors.Is(err, sim.ErrAirstripVacant) {
		t.Errorf("got %v for vacant strip; expected ErrAirstripVacant", err)
	}
}

func TestStateMonotonic(t *testing.T) {
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 3, NumHelicopters: 2, NumAirstrips: 2, NumGarages: 2, Seed: 42,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	type state struct{ landed, parked bool }
	prev := make(map[sim.Callsign]state)

	for pass := 0; pass < 10000; pass++ {
		done := s.Update()
		for _, ac := range s.Aircraft {
			if ac.Parked && !ac.Landed {
				t.Fatalf("%s: parked but not landed", ac.Callsign)
			}
			if p := prev[ac.Callsign]; (p.landed && !ac.Landed) || (p.parked && !ac.Parked) {
				t.Fatalf("%s: state went backwards: %+v -> landed %v parked %v",
					ac.Callsign, p, ac.Landed, ac.Parked)
			}
			prev[ac.Callsign] = state{ac.Landed, ac.Parked}
		}
		if done {
			return
		}
	}
	t.Fatalf("simulation did not complete in 10000 passes")
}

func TestFirstPassAdmission(t *testing.T) {
	// With more aircraft than airstrips, the first pass lands exactly
	// len(airstrips) aircraft, in fleet order.
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 5, NumAirstrips: 2, NumGarages: 1, Seed: 7,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	s.Update()

	landed := 0
	for i, ac := range s.Aircraft {
		if ac.Landed {
			landed++
			if i >= 2 {
				t.Errorf("aircraft %d landed ahead of earlier arrivals", i)
			}
		}
	}
	if landed != 2 {
		t.Errorf("%d aircraft landed in first pass; expected 2", landed)
	}
}

func TestRunSingleAircraft(t *testing.T) {
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 1, NumAirstrips: 1, NumGarages: 1, Seed: 3, MaxPasses: 100000,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	sub := s.Subscribe()
	defer sub.Unsubscribe()

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	u := s.GetStateUpdate()
	if u.Parked != 1 || u.Landed != 0 || u.Airborne != 0 {
		t.Errorf("final states parked %d landed %d airborne %d; expected 1/0/0",
			u.Parked, u.Landed, u.Airborne)
	}
	if len(u.Garages) != 1 || len(u.Garages[0].Callsigns) != 1 {
		t.Fatalf("unexpected garage summary: %+v", u.Garages)
	}

	// Pass 1 lands the aircraft; every subsequent pass before the last
	// holds it on the strip; the last parks it and frees the strip.
	var landings, parkings, freed, holds int
	for _, e := range sub.Get() {
		switch e.Type {
		case sim.AircraftLandedEvent:
			landings++
		case sim.AircraftParkedEvent:
			parkings++
			if e.Garage != 1 {
				t.Errorf("parked in garage %d; expected 1", e.Garage)
			}
		case sim.AirstripFreedEvent:
			freed++
		case sim.AircraftHoldingEvent:
			holds++
		}
	}
	if landings != 1 || parkings != 1 || freed != 1 {
		t.Errorf("landings %d parkings %d freed %d; expected 1 each", landings, parkings, freed)
	}
	if holds != u.Passes-2 {
		t.Errorf("%d holding events over %d passes; expected %d", holds, u.Passes, u.Passes-2)
	}
}

func TestRunStalledAtPassLimit(t *testing.T) {
	// One pass is never enough: the drain phase precedes the admission
	// phase, so an aircraft can't park in the pass it landed.
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 1, NumAirstrips: 1, NumGarages: 1, Seed: 1, MaxPasses: 1,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	if err := s.Run(); !errors.Is(err, sim.ErrSimStalled) {
		t.Errorf("got %v; expected ErrSimStalled", err)
	}
}

func TestGarageLoadBalance(t *testing.T) {
	// Placing one aircraft at a time into the least-loaded garage keeps
	// the final occupancies within one of each other.
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 10, NumAirstrips: 3, NumGarages: 3, Seed: 99, MaxPasses: 100000,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	counts := make([]int, 0, 3)
	total := 0
	for _, g := range s.Garages {
		counts = append(counts, g.Count())
		total += g.Count()
	}
	if total != 10 {
		t.Errorf("parked %d aircraft; expected 10", total)
	}
	if slices.Max(counts)-slices.Min(counts) > 1 {
		t.Errorf("unbalanced garages: %v", counts)
	}
}

func TestSaveResume(t *testing.T) {
	lg := discardLogger()
	s, err := sim.NewSim(sim.NewSimConfiguration{
		NumAirplanes: 4, NumHelicopters: 2, NumAirstrips: 2, NumGarages: 2, Seed: 11, MaxPasses: 100000,
	}, lg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer s.Destroy()

	// Advance partway so the save captures a mix of airborne, landed,
	// and (likely) parked aircraft.
	for range 20 {
		if s.Update() {
			break
		}
	}

	path := filepath.Join(t.TempDir(), "sim.msgpack.zst")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	r, err := sim.LoadSim(path, lg)
	if err != nil {
		t.Fatalf("LoadSim: %v", err)
	}
	defer r.Destroy()

	if r.Passes != s.Passes {
		t.Errorf("resumed at pass %d; expected %d", r.Passes, s.Passes)
	}
	if r.PassLimit() != s.PassLimit() {
		t.Errorf("resumed with pass limit %d; expected %d", r.PassLimit(), s.PassLimit())
	}
	if len(r.Aircraft) != len(s.Aircraft) {
		t.Fatalf("resumed with %d aircraft; expected %d", len(r.Aircraft), len(s.Aircraft))
	}
	for i, ac := range s.Aircraft {
		rac := r.Aircraft[i]
		if rac.Callsign != ac.Callsign || rac.Kind != ac.Kind ||
			rac.Landed != ac.Landed || rac.Parked != ac.Parked {
			t.Errorf("aircraft %d mismatch: %+v vs %+v", i, rac, ac)
		}
	}
	for i, strip := range s.Airstrips {
		want, got := strip.Occupant(), r.Airstrips[i].Occupant()
		if (want == nil) != (got == nil) {
			t.Errorf("airstrip %d occupancy mismatch", strip.Number)
		} else if want != nil && want.Callsign != got.Callsign {
			t.Errorf("airstrip %d occupied by %s; expected %s", strip.Number, got.Callsign, want.Callsign)
		}
	}
	for i, g := range s.Garages {
		if rg := r.Garages[i]; rg.Count() != g.Count() {
			t.Errorf("garage %d count %d; expected %d", g.Number, rg.Count(), g.Count())
		}
	}

	// The resumed sim must run to completion like the original.
	if err := r.Run(); err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if !r.Done() {
		t.Errorf("resumed sim not done after Run")
	}
}
