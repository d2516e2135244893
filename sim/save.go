// sim/save.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"apron/log"
	"apron/rand"
	"apron/util"
)

// SavedSim is the serializable form of a Sim. Occupancy is expressed by
// callsign rather than by pointer so that aircraft identity survives
// the encode/decode round trip; Activate rebuilds the references.
type SavedSim struct {
	Config NewSimConfiguration
	Passes int

	Aircraft []Aircraft

	// One entry per airstrip in index order; "" marks a vacant strip.
	StripOccupants []Callsign
	// One list per garage in index order, in placement order.
	GarageOccupants [][]Callsign
}

// GetSerializeSim captures the current simulation state for saving.
func (s *Sim) GetSerializeSim() SavedSim {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ss := SavedSim{
		Config: s.config,
		Passes: s.Passes,
		Aircraft: util.MapSlice(s.Aircraft, func(ac *Aircraft) Aircraft {
			return *ac
		}),
		StripOccupants: util.MapSlice(s.Airstrips, func(strip *Airstrip) Callsign {
			if ac := strip.Occupant(); ac != nil {
				return ac.Callsign
			}
			return ""
		}),
		GarageOccupants: util.MapSlice(s.Garages, func(g *Garage) []Callsign {
			return util.MapSlice(g.Occupants(), func(ac *Aircraft) Callsign { return ac.Callsign })
		}),
	}
	return ss
}

// Save writes the simulation state to the given path.
func (s *Sim) Save(path string) error {
	ss := s.GetSerializeSim()
	return util.StoreObject(path, ss)
}

// Activate rehydrates a saved simulation: pointers between airstrips,
// garages, and aircraft are rebuilt from callsigns and the transient
// parts (event stream, logger, random source) are recreated. The
// random source starts a fresh sequence; the PCG's internal state is
// not captured in the save, so a resumed run draws differently than
// the original would have.
func (ss *SavedSim) Activate(lg *log.Logger) (*Sim, error) {
	s := &Sim{
		config:      ss.Config,
		Passes:      ss.Passes,
		Rand:        rand.Make(),
		eventStream: NewEventStream(lg),
		lg:          lg,
	}

	byCallsign := make(map[Callsign]*Aircraft)
	for _, sac := range ss.Aircraft {
		ac := sac
		s.Aircraft = append(s.Aircraft, &ac)
		byCallsign[ac.Callsign] = &ac
	}

	for i, cs := range ss.StripOccupants {
		strip := &Airstrip{Number: i + 1}
		if cs != "" {
			ac, ok := byCallsign[cs]
			if !ok {
				return nil, ErrUnknownCallsign
			}
			strip.Assign(ac)
		}
		s.Airstrips = append(s.Airstrips, strip)
	}

	for i, occupants := range ss.GarageOccupants {
		g := &Garage{Number: i + 1}
		for _, cs := range occupants {
			ac, ok := byCallsign[cs]
			if !ok {
				return nil, ErrUnknownCallsign
			}
			g.occupants = append(g.occupants, ac)
		}
		s.Garages = append(s.Garages, g)
	}

	for _, ac := range s.Aircraft {
		ac.Check(lg)
	}
	lg.Info("resumed sim", slog.Int("passes", s.Passes), slog.Int("aircraft", len(s.Aircraft)))

	return s, nil
}

// LoadSim reads a simulation saved by Save and activates it.
func LoadSim(path string, lg *log.Logger) (*Sim, error) {
	var ss SavedSim
	if err := util.RetrieveObject(path, &ss); err != nil {
		return nil, err
	}
	return ss.Activate(lg)
}
