// pkg/truck/truck.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package truck implements the salute vehicles: Ackermann kinematics, the
// steering/throttle control loop that follows a planned route or a direct
// target, and the water-spray particle simulation.
package truck

import (
	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/log"
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/rand"
	"github.com/avfx/watersalute/pkg/route"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

const (
	Wheelbase   = 4.5 // meters
	WheelRadius = 0.5 // meters

	Accel = 2.5 // m/s^2
	Decel = 4.0 // m/s^2

	// MinTurnSpeed keeps the truck creeping while it rotates in place;
	// the Ackermann model produces no rotation at zero speed.
	MinTurnSpeed = 1.5 // m/s

	SlowdownDistance = 30 // meters; linear speed ramp before a target
	ArrivalRadius    = 2  // meters
	HeadingTolerance = 3  // degrees

	ReachDistance            = 4  // meters; waypoint cursor advance
	LookAheadDistance        = 25 // meters
	TurnAnticipationDistance = 15 // meters

	DepartureTurn      = 45  // degrees away from current heading
	LeavingSpeedFactor = 1.5 // multiple of cruise speed when departing
	LeavingDistance    = 150 // meters from the aircraft before "departed"
)

// VisualModel names the 3D asset the host is asked for; a missing asset
// degrades to an invisible truck.
const VisualModel = "firetruck"

// Truck is one salute vehicle. Position is planar (x, z); Elevation is
// resampled from the terrain every tick. All angles are degrees.
type Truck struct {
	Side      Side
	Position  [2]float32
	Elevation float32
	Heading   float32

	FrontSteer float32
	RearSteer  float32
	WheelSpin  float32 // [0,360)

	Speed       float32 // m/s
	TargetSpeed float32
	Cruise      float32

	CannonPitch  float32    // [0,90], up from horizontal
	CannonYaw    float32    // (-180,180], relative to vehicle heading
	NozzleOffset [3]float32 // right, up, back in the vehicle frame
	JetHeight    float32    // target arc height, meters

	Route         *route.Route
	Target        [2]float32 // direct-mode target
	TargetHeading float32

	Positioned       bool
	Departing        bool
	Departed         bool
	DepartureHeading float32

	Spraying   bool
	Particles  []Particle
	DragCoeff  float32
	Turbulence float32

	aligning         bool
	departureAligned bool
	emitAccum        float32

	terrain host.Terrain
	visual  host.Instance
	r       rand.Rand
	lg      *log.Logger
}

// New creates a truck at rest. The visual instance is requested from the
// host; when the asset is missing the truck runs without one.
func New(side Side, terrain host.Terrain, visuals host.Visuals, seed int64, lg *log.Logger) *Truck {
	t := &Truck{
		Side:         side,
		CannonPitch:  65,
		NozzleOffset: [3]float32{0, 2.6, -1.2},
		DragCoeff:    DefaultDragCoeff,
		Turbulence:   DefaultTurbulence,
		terrain:      terrain,
		r:            rand.New(),
		lg:           lg,
	}
	t.r.Seed(seed)

	if visuals != nil {
		inst, err := visuals.NewInstance(VisualModel)
		if err != nil {
			lg.Warnf("%s truck: %v; running without a visual", side, err)
		} else {
			t.visual = inst
		}
	}
	return t
}

// Update advances the control loop and kinematics by dt seconds. The
// aircraft position is needed only while departing, to decide when the
// truck is far enough away to count as departed.
func (t *Truck) Update(dt float32, aircraft [2]float32) {
	switch {
	case t.Departing:
		t.updateDeparture(aircraft)
	case t.Route != nil && t.Route.Valid && !t.Route.Completed:
		t.updateRouteFollowing()
	default:
		t.updateDirect()
	}
	t.integrate(dt)
}

// SetDeparture puts the truck into its turn-then-leave sequence. The two
// trucks turn away from each other so their paths diverge.
func (t *Truck) SetDeparture() {
	if t.Departing {
		return
	}
	turn := float32(DepartureTurn)
	if t.Side == Left {
		turn = -turn
	}
	t.Departing = true
	t.DepartureHeading = math.NormalizeHeading(t.Heading + turn)
	t.departureAligned = false
	t.Positioned = false
}

// Reset returns the truck to defaults at a spawn position, dropping any
// route and particles.
func (t *Truck) Reset(p [2]float32, heading float32) {
	t.releaseParticles()
	t.Position = p
	t.Heading = heading
	t.Elevation = t.terrain.ElevationAt(p)
	t.FrontSteer, t.RearSteer = 0, 0
	t.Speed, t.TargetSpeed = 0, 0
	t.WheelSpin = 0
	t.Route = nil
	t.Positioned, t.Departing, t.Departed = false, false, false
	t.aligning, t.departureAligned = false, false
	t.Spraying = false
	t.emitAccum = 0
	if t.visual != nil {
		t.visual.SetPose(t.Position, t.Elevation, t.Heading)
	}
}

// Destroy releases the truck's particles and visual instance.
func (t *Truck) Destroy() {
	t.releaseParticles()
	if t.visual != nil {
		t.visual.Release()
		t.visual = nil
	}
}
