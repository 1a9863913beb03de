// pkg/host/stubs.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package host

import (
	"time"
)

// StaticTelemetry reports a fixed aircraft state; the fields may be
// updated between ticks to script a scenario.
type StaticTelemetry struct {
	State AircraftState
}

func (t *StaticTelemetry) Aircraft() AircraftState {
	return t.State
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// StepClock advances by a fixed amount every query; it makes frame-time
// computation deterministic in tests and the headless driver.
type StepClock struct {
	T    time.Time
	Step time.Duration
}

func (c *StepClock) Now() time.Time {
	c.T = c.T.Add(c.Step)
	return c.T
}

// MemoryWeather holds the rain intensity in memory.
type MemoryWeather struct {
	Intensity float32
}

func (w *MemoryWeather) RainIntensity() float32     { return w.Intensity }
func (w *MemoryWeather) SetRainIntensity(v float32) { w.Intensity = v }

// NullAudio discards all requests.
type NullAudio struct{}

func (NullAudio) Play(sound string, volume int) {}

// NullVisuals never has the asset; everything degrades to running without
// a visual, which is the documented resource-absent behavior.
type NullVisuals struct{}

func (NullVisuals) NewInstance(model string) (Instance, error) {
	return nil, ErrAssetNotFound
}
