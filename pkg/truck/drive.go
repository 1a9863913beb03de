// pkg/truck/drive.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package truck

import (
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/route"
)

// updateDirect steers straight at Target, slows linearly on final
// approach, then rotates in place to TargetHeading and marks the truck
// positioned. Steering uses the raw heading error in degrees; the
// ±45 degree lock bounds it.
func (t *Truck) updateDirect() {
	if t.Positioned {
		t.TargetSpeed = 0
		return
	}

	dist := math.Distance2f(t.Position, t.Target)
	if dist < ArrivalRadius {
		t.aligning = true
	}

	if t.aligning {
		herr := math.NormalizeRelativeHeading(t.TargetHeading - t.Heading)
		if math.Abs(herr) < HeadingTolerance {
			t.Positioned = true
			t.TargetSpeed = 0
			t.FrontSteer, t.RearSteer = 0, 0
			return
		}
		t.FrontSteer = math.ClampSteeringAngle(herr)
		t.RearSteer = math.RearSteerFromFront(t.FrontSteer)
		t.TargetSpeed = MinTurnSpeed
		return
	}

	bearing := math.Heading2f(t.Position, t.Target)
	herr := math.NormalizeRelativeHeading(bearing - t.Heading)
	t.FrontSteer = math.ClampSteeringAngle(herr)
	t.RearSteer = math.RearSteerFromFront(t.FrontSteer)

	if dist < SlowdownDistance {
		t.TargetSpeed = math.Max(t.Cruise*dist/SlowdownDistance, MinTurnSpeed)
	} else {
		t.TargetSpeed = t.Cruise
	}
}

// updateRouteFollowing tracks the route's current waypoint, blending in
// the heading of the path further ahead when a turn is coming up so the
// truck starts turning before the corner.
func (t *Truck) updateRouteFollowing() {
	wp, ok := t.Route.Current()
	if !ok {
		t.finishRoute()
		return
	}

	dist := math.Distance2f(t.Position, wp.P)
	if dist < ReachDistance {
		t.Route.Advance()
		if t.Route.Completed {
			t.finishRoute()
			return
		}
		wp, _ = t.Route.Current()
		dist = math.Distance2f(t.Position, wp.P)
	}

	desired := math.Heading2f(t.Position, wp.P)
	herr := math.NormalizeRelativeHeading(desired - t.Heading)

	if future, ok := t.lookAheadHeading(dist); ok {
		ferr := math.NormalizeRelativeHeading(future - t.Heading)
		if math.Abs(ferr) > math.Abs(herr) && dist < TurnAnticipationDistance {
			herr = 0.7*herr + 0.3*ferr
		}
	}

	t.FrontSteer = math.ClampSteeringAngle(herr)
	t.RearSteer = math.RearSteerFromFront(t.FrontSteer)

	// Cap speed by the turn radius the current steering implies so the
	// truck does not overshoot corners, then by the waypoint's speed
	// with a linear slowdown as the waypoint nears.
	tanSteer := math.Max(math.Abs(math.Tan(math.Radians(t.FrontSteer))), 1e-3)
	turnRadius := Wheelbase / tanSteer
	turnCap := math.Clamp(math.Sqrt(2*turnRadius), MinTurnSpeed, t.Cruise)

	wpSpeed := wp.Speed * math.Clamp(dist/SlowdownDistance, 0.3, 1)
	t.TargetSpeed = math.Max(math.Min(turnCap, wpSpeed), MinTurnSpeed)
}

func (t *Truck) finishRoute() {
	t.Positioned = true
	t.TargetSpeed = 0
	t.FrontSteer, t.RearSteer = 0, 0
}

// lookAheadHeading walks the remaining waypoints until LookAheadDistance
// of path is covered and returns the heading of the segment reached.
func (t *Truck) lookAheadHeading(distToCurrent float32) (float32, bool) {
	rem := t.Route.Remaining()
	if len(rem) < 2 {
		return 0, false
	}
	acc := distToCurrent
	var h float32
	for i := 0; i+1 < len(rem); i++ {
		h = math.Heading2f(rem[i].P, rem[i+1].P)
		acc += math.Distance2f(rem[i].P, rem[i+1].P)
		if acc >= LookAheadDistance {
			break
		}
	}
	return h, true
}

// updateDeparture turns the truck in place toward its departure heading,
// then drives off above cruise speed until it is clear of the aircraft.
func (t *Truck) updateDeparture(aircraft [2]float32) {
	herr := math.NormalizeRelativeHeading(t.DepartureHeading - t.Heading)

	if !t.departureAligned {
		if math.Abs(herr) < HeadingTolerance {
			t.departureAligned = true
		} else {
			t.FrontSteer = math.ClampSteeringAngle(herr)
			t.RearSteer = math.RearSteerFromFront(t.FrontSteer)
			t.TargetSpeed = MinTurnSpeed
			return
		}
	}

	t.FrontSteer = math.ClampSteeringAngle(herr)
	t.RearSteer = math.RearSteerFromFront(t.FrontSteer)
	t.TargetSpeed = t.Cruise * LeavingSpeedFactor

	if !t.Departed && math.Distance2f(t.Position, aircraft) > LeavingDistance {
		t.Departed = true
	}
}

// integrate applies one kinematics step: Ackermann turn rate from the
// current speed and steering, heading, speed smoothing, forward motion,
// terrain resample, and wheel spin.
func (t *Truck) integrate(dt float32) {
	rate := math.AckermannTurnRate(t.Speed, t.FrontSteer, t.RearSteer, Wheelbase)
	t.Heading = math.NormalizeHeading(t.Heading + rate*dt)

	t.Speed = math.SmoothSpeed(t.Speed, t.TargetSpeed, dt, Accel, Decel)

	d := t.Speed * dt
	t.Position = math.Offset2f(t.Position, t.Heading, d)
	t.Elevation = t.terrain.ElevationAt(t.Position)

	t.WheelSpin = math.NormalizeHeading(t.WheelSpin + 360*d/(2*math.Pi*WheelRadius))

	if t.visual != nil {
		t.visual.SetPose(t.Position, t.Elevation, t.Heading)
	}
}

// SetRoute hands the truck a planned route; a nil or invalid route falls
// back to direct driving toward Target.
func (t *Truck) SetRoute(r *route.Route) {
	t.Route = r
	t.Positioned = false
	t.aligning = false
}
