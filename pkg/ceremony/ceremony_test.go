// pkg/ceremony/ceremony_test.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/truck"
)

func makeSystem(ac host.AircraftState) (*System, *host.MemoryWeather) {
	weather := &host.MemoryWeather{}
	hosts := Hosts{
		Telemetry: &host.StaticTelemetry{State: ac},
		Terrain:   &host.FlatTerrain{},
		Weather:   weather,
		Audio:     host.NullAudio{},
		Visuals:   host.NullVisuals{},
	}
	return New(DefaultConfig(), hosts, 1, nil), weather
}

func slowAircraft() host.AircraftState {
	return host.AircraftState{
		OnGround:    true,
		Groundspeed: 10,
		Position:    [2]float32{0, 0},
		Heading:     0,
		Semispan:    15, // meters; 30 m wingspan
	}
}

func TestStartPositionsTrucks(t *testing.T) {
	s, _ := makeSystem(slowAircraft())

	if !s.Start() {
		t.Fatal("start rejected")
	}
	if s.State != Approaching {
		t.Fatalf("state %s, want Approaching", s.State)
	}

	// Wingspan 30 plus the lateral margin puts each truck 35 m off the
	// centerline; the aircraft faces north so the offset is pure x.
	for i, wantX := range []float32{-35, 35} {
		tr := s.trucks[i]
		if math.Abs(tr.Position[0]-wantX) > 0.01 {
			t.Errorf("truck %d spawn x = %f, want %f", i, tr.Position[0], wantX)
		}
		if math.Abs(tr.Position[1]-SpawnDistance) > 0.01 {
			t.Errorf("truck %d spawn z = %f, want %d", i, tr.Position[1], SpawnDistance)
		}
	}

	// No routing files are configured, so the trucks approach directly
	// and must eventually both report positioned.
	for i := 0; i < 3000 && s.State != Spraying; i++ {
		s.Update(0.05)
	}
	if s.State != Spraying {
		t.Fatalf("state %s after approach, want Spraying", s.State)
	}
	for _, tr := range s.trucks {
		if !tr.Positioned {
			t.Errorf("%s truck not positioned", tr.Side)
		}
		if d := math.Distance2f(tr.Position, tr.Target); d > 20 {
			t.Errorf("%s truck %f m from target", tr.Side, d)
		}
	}
}

func TestStartRejectedWhenFast(t *testing.T) {
	ac := slowAircraft()
	ac.Groundspeed = 45
	s, _ := makeSystem(ac)

	sub := s.Events().Subscribe()
	if s.Start() {
		t.Fatal("start accepted at 45 knots")
	}
	if s.State != Idle {
		t.Fatalf("state %s, want Idle", s.State)
	}

	ev := sub.Get()
	if len(ev) != 1 || ev[0].Type != StartRejectedEvent {
		t.Errorf("events %v, want one StartRejected", ev)
	}
}

func TestStartRejectedWhenAirborne(t *testing.T) {
	ac := slowAircraft()
	ac.OnGround = false
	s, _ := makeSystem(ac)
	if s.Start() {
		t.Fatal("start accepted while airborne")
	}
}

func TestStopMidApproachLeaves(t *testing.T) {
	s, _ := makeSystem(slowAircraft())
	if !s.Start() {
		t.Fatal("start rejected")
	}

	// A few ticks into the approach, stop. The ceremony must go to
	// Leaving, not Idle, and play out the full departure.
	for i := 0; i < 20; i++ {
		s.Update(0.05)
	}
	s.Stop()
	if s.State != Leaving {
		t.Fatalf("state %s after stop, want Leaving", s.State)
	}

	s.Stop() // idempotent
	if s.State != Leaving {
		t.Fatal("second stop changed state")
	}

	for i := 0; i < 5000 && s.State != Idle; i++ {
		s.Update(0.05)
	}
	if s.State != Idle {
		t.Fatalf("state %s, want Idle after departure", s.State)
	}
	if s.Trucks() != nil {
		t.Error("trucks not released after teardown")
	}
}

func TestToggle(t *testing.T) {
	s, _ := makeSystem(slowAircraft())
	s.Toggle()
	if s.State != Approaching {
		t.Fatalf("toggle from Idle: state %s, want Approaching", s.State)
	}
	s.Toggle()
	if s.State != Leaving {
		t.Fatalf("toggle while running: state %s, want Leaving", s.State)
	}
}

func TestValidateWingspan(t *testing.T) {
	for _, tc := range []struct {
		semispan float32
		want     float32
	}{
		{15, 30},              // meters
		{60, 60 * 2 * 0.3048}, // only plausible as feet
		{0, DefaultWingspan},  // no plausible reading
		{10000, DefaultWingspan},
		{22.5, 45},
	} {
		if got := validateWingspan(tc.semispan); math.Abs(got-tc.want) > 0.01 {
			t.Errorf("validateWingspan(%f) = %f, want %f", tc.semispan, got, tc.want)
		}
	}
}

func TestWindshieldEffect(t *testing.T) {
	weather := &host.MemoryWeather{Intensity: 0.2}
	eff := proximityEffect{weather: weather}

	// Plant a cloud of droplets around the observation point.
	tr := truck.New(truck.Left, &host.FlatTerrain{}, nil, 1, nil)
	obs := [3]float32{0, 3, 0}
	for i := 0; i < 100; i++ {
		tr.Particles = append(tr.Particles, truck.Particle{
			P: obs, Life: 100, Active: true,
		})
	}

	trucks := []*truck.Truck{tr}
	for i := 0; i < 100; i++ {
		eff.update(0.05, true, trucks, obs)
	}
	if weather.Intensity <= 0.2 {
		t.Fatalf("intensity %f did not rise above ambient", weather.Intensity)
	}
	if weather.Intensity > MaxIntensity {
		t.Fatalf("intensity %f exceeds max", weather.Intensity)
	}

	// Once the spray stops the effect fades; the ambient value comes
	// back only after the fade reaches zero, not immediately.
	for i := 0; i < 5; i++ {
		eff.update(0.05, false, trucks, obs)
	}
	if weather.Intensity <= 0.2 {
		t.Fatalf("intensity %f mid-fade, want still above ambient", weather.Intensity)
	}

	for i := 0; i < 400; i++ {
		eff.update(0.05, false, trucks, obs)
	}
	if weather.Intensity != 0.2 {
		t.Errorf("ambient intensity %f not restored, want 0.2", weather.Intensity)
	}
}

func TestIdleFadeRestoresAmbient(t *testing.T) {
	// A ceremony torn down mid-fade keeps fading in Idle; the host's
	// ambient rain value is restored once the fade reaches zero.
	s, weather := makeSystem(slowAircraft())
	weather.Intensity = 0.6
	s.effect.intensity = 0.6
	s.effect.ambient = 0.25
	s.effect.applied = true

	s.Update(0.05)
	if weather.Intensity == 0.25 {
		t.Fatal("ambient restored before the fade finished")
	}

	for i := 0; i < 400; i++ {
		s.Update(0.05)
	}
	if weather.Intensity != 0.25 {
		t.Errorf("ambient %f not restored after fade, want 0.25", weather.Intensity)
	}
}

func TestDatarefClamps(t *testing.T) {
	s, _ := makeSystem(slowAircraft())
	s.Start()

	s.SetFrontSteer(truck.Left, 90)
	if got := s.FrontSteer(truck.Left); got != 45 {
		t.Errorf("front steer %f, want clamped 45", got)
	}
	s.SetCannonPitch(truck.Right, 120)
	if got := s.CannonPitch(truck.Right); got != 90 {
		t.Errorf("cannon pitch %f, want clamped 90", got)
	}
	s.SetCannonYaw(truck.Right, 270)
	if got := s.CannonYaw(truck.Right); got != -90 {
		t.Errorf("cannon yaw %f, want normalized -90", got)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := makeSystem(slowAircraft())
	s.Start()
	snap := s.Snapshot()
	if len(snap.Trucks) != 2 {
		t.Fatalf("snapshot has %d trucks, want 2", len(snap.Trucks))
	}
	snap.Trucks[0].Position = [2]float32{999, 999}
	if s.trucks[0].Position == snap.Trucks[0].Position {
		t.Error("snapshot aliases live state")
	}
}

func TestConfigDefaultsAndValidation(t *testing.T) {
	dir := t.TempDir()

	// Missing file: pure defaults.
	cfg := LoadOrMakeDefaultConfig(filepath.Join(dir, "missing.json"), nil)
	def := DefaultConfig()
	if cfg.CruiseSpeed != def.CruiseSpeed || cfg.SoundVolume != def.SoundVolume ||
		cfg.JetHeight != def.JetHeight || cfg.AutoStart != def.AutoStart {
		t.Error("missing file did not produce defaults")
	}

	// Out-of-range fields fall back individually.
	fn := filepath.Join(dir, "config.json")
	contents := `{"SoundVolume": 400, "CruiseSpeed": -3, "JetHeight": 12, "AutoStart": true}`
	if err := os.WriteFile(fn, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg = LoadOrMakeDefaultConfig(fn, nil)
	if cfg.SoundVolume != DefaultConfig().SoundVolume {
		t.Errorf("sound volume %d, want default", cfg.SoundVolume)
	}
	if cfg.CruiseSpeed != DefaultConfig().CruiseSpeed {
		t.Errorf("cruise speed %f, want default", cfg.CruiseSpeed)
	}
	if cfg.JetHeight != 12 {
		t.Errorf("jet height %f, want 12 preserved", cfg.JetHeight)
	}
	if !cfg.AutoStart {
		t.Error("auto start not preserved")
	}

	// Round trip.
	if err := cfg.Save(fn, nil); err != nil {
		t.Fatal(err)
	}
	again := LoadOrMakeDefaultConfig(fn, nil)
	if again.SoundVolume != cfg.SoundVolume || again.CruiseSpeed != cfg.CruiseSpeed ||
		again.JetHeight != cfg.JetHeight || again.AutoStart != cfg.AutoStart {
		t.Error("config did not round-trip")
	}
}

func TestAutoStartLatch(t *testing.T) {
	ac := slowAircraft()
	tel := &host.StaticTelemetry{State: ac}
	weather := &host.MemoryWeather{}
	hosts := Hosts{
		Telemetry: tel,
		Terrain:   &host.FlatTerrain{},
		Weather:   weather,
		Audio:     host.NullAudio{},
		Visuals:   host.NullVisuals{},
	}
	cfg := DefaultConfig()
	cfg.AutoStart = true
	s := New(cfg, hosts, 1, nil)

	// On the ground from the first tick: no airborne phase seen, so no
	// auto start.
	s.Update(0.05)
	if s.State != Idle {
		t.Fatal("auto start fired without a landing")
	}

	tel.State.OnGround = false
	s.Update(0.05)
	tel.State.OnGround = true
	s.Update(0.05)
	if s.State != Approaching {
		t.Fatalf("state %s after landing, want Approaching", s.State)
	}
}
