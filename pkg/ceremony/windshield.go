// pkg/ceremony/windshield.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/truck"
)

// Windshield-wetting effect tuning. The effect is particle-driven: it
// counts droplets near the cockpit and maps the count to the host's rain
// intensity, so it only works while the particle spray is running.
const (
	EffectSampleInterval = 0.25 // seconds between particle counts
	DetectRadius         = 12   // meters, horizontal
	DetectHeight         = 8    // meters, ± vertical band
	MaxExpectedParticles = 150
	IntensityBoost       = 2.0
	MaxIntensity         = 1.0

	FadeInTime  = 0.8 // seconds; entering the spray is abrupt
	FadeOutTime = 2.5 // leaving it is gentle

	ObserverHeight = 3 // meters above ground at the aircraft position
)

// proximityEffect chases a particle-count-derived target intensity with
// asymmetric fade constants and restores the host's ambient value once
// it has fully faded.
type proximityEffect struct {
	weather host.Weather

	intensity   float32
	target      float32
	sampleTimer float32
	ambient     float32
	applied     bool
}

// update advances the effect by dt. The target intensity is resampled at
// a fixed interval while spraying and forced to zero otherwise.
func (p *proximityEffect) update(dt float32, spraying bool, trucks []*truck.Truck, obs [3]float32) {
	if spraying {
		p.sampleTimer -= dt
		if p.sampleTimer <= 0 {
			p.sampleTimer = EffectSampleInterval
			n := truck.ParticlesNear(trucks, obs, DetectRadius, DetectHeight)
			p.target = math.Min(float32(n)/MaxExpectedParticles*IntensityBoost, MaxIntensity)
		}
	} else {
		p.target = 0
		p.sampleTimer = 0
	}

	tau := float32(FadeInTime)
	if p.target < p.intensity {
		tau = FadeOutTime
	}
	p.intensity += (p.target - p.intensity) * math.Min(dt/tau, 1)

	if p.intensity > 0.005 {
		if !p.applied {
			p.ambient = p.weather.RainIntensity()
			p.applied = true
		}
		p.weather.SetRainIntensity(p.intensity)
	} else if p.applied {
		p.intensity = 0
		p.weather.SetRainIntensity(p.ambient)
		p.applied = false
	}
}
