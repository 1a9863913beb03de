// pkg/ceremony/datarefs.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/truck"
)

// Per-vehicle accessors exposed to the host. Reads against an Idle
// ceremony (no live trucks) return zero; writes are dropped.

func (s *System) vehicle(side truck.Side) *truck.Truck {
	for _, t := range s.trucks {
		if t != nil && t.Side == side {
			return t
		}
	}
	return nil
}

func (s *System) FrontSteer(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.FrontSteer
	}
	return 0
}

func (s *System) SetFrontSteer(side truck.Side, deg float32) {
	if t := s.vehicle(side); t != nil {
		t.FrontSteer = math.ClampSteeringAngle(deg)
	}
}

func (s *System) RearSteer(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.RearSteer
	}
	return 0
}

func (s *System) SetRearSteer(side truck.Side, deg float32) {
	if t := s.vehicle(side); t != nil {
		t.RearSteer = math.ClampSteeringAngle(deg)
	}
}

// WheelSpin is read-only, always in [0,360).
func (s *System) WheelSpin(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.WheelSpin
	}
	return 0
}

func (s *System) CannonPitch(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.CannonPitch
	}
	return 0
}

func (s *System) SetCannonPitch(side truck.Side, deg float32) {
	if t := s.vehicle(side); t != nil {
		t.CannonPitch = math.Clamp(deg, 0, 90)
	}
}

func (s *System) CannonYaw(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.CannonYaw
	}
	return 0
}

func (s *System) SetCannonYaw(side truck.Side, deg float32) {
	if t := s.vehicle(side); t != nil {
		t.CannonYaw = math.NormalizeRelativeHeading(deg)
	}
}

// Speed is the vehicle's current speed in meters per second, read-only.
func (s *System) Speed(side truck.Side) float32 {
	if t := s.vehicle(side); t != nil {
		return t.Speed
	}
	return 0
}
