// pkg/host/host.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package host defines the narrow interfaces through which the ceremony
// core talks to the hosting simulator: terrain probes, coordinate
// transforms, aircraft telemetry, sounds, visuals, and the windshield rain
// state. Headless implementations suitable for tests and the command-line
// driver live alongside the interfaces.
package host

import (
	"time"

	"github.com/avfx/watersalute/pkg/math"
)

// AircraftState is a snapshot of the aircraft telemetry the ceremony
// reads when a start is requested and while trucks hold position.
type AircraftState struct {
	OnGround    bool
	Groundspeed float32 // knots
	Position    [2]float32
	Heading     float32
	LatLong     math.Point2LL
	Semispan    float32 // raw wingspan-related measurement, units unvalidated
}

type Telemetry interface {
	Aircraft() AircraftState
}

// Terrain probes the ground elevation at a planar point.
type Terrain interface {
	ElevationAt(p [2]float32) float32
}

// Transform converts between geographic and local planar coordinates
// referenced to the host's current origin.
type Transform interface {
	LocalFromGeo(ll math.Point2LL) [2]float32
	GeoFromLocal(p [2]float32) math.Point2LL
}

type Clock interface {
	Now() time.Time
}

// Weather exposes the host's windshield rain intensity in [0,1]. The
// ceremony reads the ambient value before first driving the effect and
// restores it afterwards.
type Weather interface {
	RainIntensity() float32
	SetRainIntensity(v float32)
}

// Audio plays one-shot samples; implementations may ignore requests
// entirely (sound is optional).
type Audio interface {
	Play(sound string, volume int)
}

// Instance is a placed visual model instance in the host's scene.
type Instance interface {
	SetPose(p [2]float32, elevation, heading float32)
	Release()
}

// Visuals creates model instances. A missing asset returns an error and
// the caller degrades to running without a visual.
type Visuals interface {
	NewInstance(model string) (Instance, error)
}
