// sim/sim.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"slices"

	"apron/log"
	"apron/rand"
	"apron/util"
)

// groundCrewOdds is the 1-in-N chance per pass that ground crew is
// available to tow an occupied airstrip's aircraft to a garage.
const groundCrewOdds = 10

// Sim mediates all airstrip and garage allocation. Airstrips and
// garages never talk to each other or to aircraft; every transition is
// driven from here, which keeps the occupancy invariants in one place.
type Sim struct {
	mu util.LoggingMutex

	Airstrips []*Airstrip
	Garages   []*Garage
	Aircraft  []*Aircraft

	// Passes counts completed drain+admission passes of the control
	// loop.
	Passes int

	config NewSimConfiguration

	Rand *rand.Rand

	eventStream *EventStream
	lg          *log.Logger
}

// NewSimConfiguration collects all of the information required to
// create a new Sim.
type NewSimConfiguration struct {
	NumAirplanes   int
	NumHelicopters int
	NumAirstrips   int
	NumGarages     int

	// Seed makes the run reproducible; 0 seeds from the clock.
	Seed int64

	// MaxPasses caps the control loop; 0 means run until every
	// aircraft is parked, which is only guaranteed to terminate in
	// expectation.
	MaxPasses int
}

func NewSim(config NewSimConfiguration, lg *log.Logger) (*Sim, error) {
	// Negative counts are rejected along with zero ones: a negative
	// kind count can make the totals lie, and makeFleet and the slice
	// loops below would silently treat them as zero.
	if config.NumAirplanes < 0 || config.NumHelicopters < 0 ||
		config.NumAirplanes+config.NumHelicopters == 0 {
		return nil, ErrNoAircraftConfigured
	}
	// With aircraft to handle, an empty garage set would leave
	// leastLoadedGarage undefined and an empty airstrip set would spin
	// forever; both are configuration errors, not degenerate runs.
	if config.NumGarages <= 0 {
		return nil, ErrNoGaragesConfigured
	}
	if config.NumAirstrips <= 0 {
		return nil, ErrNoAirstripsConfigured
	}

	s := &Sim{
		config:      config,
		Rand:        rand.Make(),
		eventStream: NewEventStream(lg),
		lg:          lg,
	}
	if config.Seed != 0 {
		s.Rand.Seed(config.Seed)
	}

	for i := range config.NumAirstrips {
		s.Airstrips = append(s.Airstrips, &Airstrip{Number: i + 1})
	}
	for i := range config.NumGarages {
		s.Garages = append(s.Garages, &Garage{Number: i + 1})
	}
	s.Aircraft = makeFleet(config.NumAirplanes, config.NumHelicopters, s.Rand, lg)

	lg.Info("created sim", slog.Int("aircraft", len(s.Aircraft)),
		slog.Int("airstrips", len(s.Airstrips)), slog.Int("garages", len(s.Garages)),
		slog.Int64("seed", config.Seed))

	return s, nil
}

func (s *Sim) Destroy() {
	s.eventStream.Destroy()
}

// Subscribe creates a new event subscription for this simulation.
// The caller is responsible for calling Unsubscribe when done.
func (s *Sim) Subscribe() *EventsSubscription {
	return s.eventStream.Subscribe()
}

func (s *Sim) PostEvent(e Event) {
	s.eventStream.Post(e)
}

func (s *Sim) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("passes", s.Passes),
		log.AnyPointerSlice("airstrips", s.Airstrips),
		log.AnyPointerSlice("garages", s.Garages))
}

// RequestLand is the admission-control gate: the aircraft is assigned
// the first vacant airstrip in index order and marked landed. It
// returns false, leaving the aircraft airborne to be retried on a
// later pass, if every airstrip is occupied.
func (s *Sim) RequestLand(ac *Aircraft) bool {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.requestLand(ac)
}

func (s *Sim) requestLand(ac *Aircraft) bool {
	for _, strip := range s.Airstrips {
		if strip.Occupant() != nil {
			continue
		}

		strip.Assign(ac)
		ac.MarkLanded()
		s.eventStream.Post(Event{
			Type:     AircraftLandedEvent,
			Callsign: ac.Callsign,
			Kind:     ac.Kind,
			Airstrip: strip.Number,
		})
		s.lg.Debug("landed", slog.Any("aircraft", ac), slog.Int("airstrip", strip.Number))
		return true
	}
	return false
}

// RequestMoveToGarage attempts to drain an occupied airstrip into the
// least-loaded garage. Ground crew availability is an exogenous
// probabilistic resource: with probability (groundCrewOdds-1)/groundCrewOdds
// nothing changes and the aircraft keeps blocking its strip until a
// later pass. Calling this for a vacant strip is a contract violation
// and reported as ErrAirstripVacant.
func (s *Sim) RequestMoveToGarage(strip *Airstrip) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.requestMoveToGarage(strip)
}

func (s *Sim) requestMoveToGarage(strip *Airstrip) error {
	ac := strip.Occupant()
	if ac == nil {
		return ErrAirstripVacant
	}

	if s.Rand.Intn(groundCrewOdds) != 0 {
		s.eventStream.Post(Event{
			Type:     AircraftHoldingEvent,
			Callsign: ac.Callsign,
			Kind:     ac.Kind,
			Airstrip: strip.Number,
		})
		return nil
	}

	garage := s.leastLoadedGarage()
	if !garage.Place(ac) {
		// Occupied strips only ever hold landed aircraft.
		s.lg.Error("garage refused aircraft from airstrip", slog.Any("aircraft", ac),
			slog.Any("garage", garage))
		return ErrAircraftNotLanded
	}
	strip.Release()

	s.eventStream.Post(Event{
		Type:     AircraftParkedEvent,
		Callsign: ac.Callsign,
		Kind:     ac.Kind,
		Garage:   garage.Number,
	})
	s.eventStream.Post(Event{
		Type:     AirstripFreedEvent,
		Airstrip: strip.Number,
	})
	s.lg.Debug("parked", slog.Any("aircraft", ac), slog.Int("garage", garage.Number),
		slog.Int("airstrip", strip.Number))
	return nil
}

// leastLoadedGarage returns the garage with the fewest parked aircraft,
// breaking ties by the lowest garage number. NewSim guarantees at least
// one garage exists.
func (s *Sim) leastLoadedGarage() *Garage {
	var best *Garage
	for _, g := range s.Garages {
		if best == nil || g.Count() < best.Count() {
			best = g
		}
	}
	return best
}

// Update runs a single control-loop pass: first the drain phase over
// airstrips in index order, then the admission phase over the fleet in
// creation order. It returns true once every aircraft is parked.
func (s *Sim) Update() bool {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if s.done() {
		return true
	}

	s.runPass()

	for _, ac := range s.Aircraft {
		ac.Check(s.lg)
	}

	return s.done()
}

func (s *Sim) runPass() {
	s.Passes++

	for _, strip := range s.Airstrips {
		if strip.Occupant() == nil {
			continue
		}
		if err := s.requestMoveToGarage(strip); err != nil {
			s.lg.Errorf("airstrip %d: %v", strip.Number, err)
		}
	}

	for _, ac := range s.Aircraft {
		if !ac.Landed {
			s.requestLand(ac)
		}
	}
}

func (s *Sim) done() bool {
	return !slices.ContainsFunc(s.Aircraft, func(ac *Aircraft) bool { return !ac.Parked })
}

// PassLimit returns the configured control-loop pass ceiling, 0 if
// none. A resumed simulation keeps the limit it was created with.
func (s *Sim) PassLimit() int { return s.config.MaxPasses }

// Done reports whether every aircraft has parked.
func (s *Sim) Done() bool {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.done()
}

// Run drives the control loop to completion. Termination is only
// probabilistic when MaxPasses is 0; with a pass limit configured,
// ErrSimStalled reports a run that hit it.
func (s *Sim) Run() error {
	for {
		s.mu.Lock(s.lg)

		if s.done() {
			s.mu.Unlock(s.lg)
			s.eventStream.Post(Event{
				Type:        StatusMessageEvent,
				WrittenText: fmt.Sprintf("All aircraft parked after %d passes.", s.Passes),
			})
			return nil
		}
		if s.config.MaxPasses > 0 && s.Passes >= s.config.MaxPasses {
			s.mu.Unlock(s.lg)
			s.lg.Warn("sim stalled", slog.Int("passes", s.Passes))
			return ErrSimStalled
		}

		s.runPass()
		s.mu.Unlock(s.lg)
	}
}
