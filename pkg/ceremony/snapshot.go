// pkg/ceremony/snapshot.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"github.com/brunoga/deep"

	"github.com/avfx/watersalute/pkg/truck"
)

// TruckSnapshot is the externally reportable state of one vehicle.
type TruckSnapshot struct {
	Side        truck.Side
	Position    [2]float32
	Elevation   float32
	Heading     float32
	FrontSteer  float32
	RearSteer   float32
	Speed       float32
	Positioned  bool
	Departed    bool
	ParticleCnt int
}

// Snapshot is a self-contained copy of the ceremony's reportable state;
// mutating it never touches the live system.
type Snapshot struct {
	State     State
	Intensity float32
	Trucks    []TruckSnapshot
}

func (s *System) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.State,
		Intensity: s.effect.intensity,
	}
	for _, t := range s.trucks {
		if t == nil {
			continue
		}
		snap.Trucks = append(snap.Trucks, TruckSnapshot{
			Side:        t.Side,
			Position:    t.Position,
			Elevation:   t.Elevation,
			Heading:     t.Heading,
			FrontSteer:  t.FrontSteer,
			RearSteer:   t.RearSteer,
			Speed:       t.Speed,
			Positioned:  t.Positioned,
			Departed:    t.Departed,
			ParticleCnt: t.ActiveParticles(),
		})
	}
	return deep.MustCopy(snap)
}
