// pkg/math/kinematics_test.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"

	"github.com/avfx/watersalute/pkg/rand"
)

func TestAckermannTurnRateDeadZones(t *testing.T) {
	const wheelbase = 4.5

	if r := AckermannTurnRate(0.005, 30, -12, wheelbase); r != 0 {
		t.Errorf("expected zero rate below speed dead zone, got %f", r)
	}
	if r := AckermannTurnRate(-0.0099, 45, -18, wheelbase); r != 0 {
		t.Errorf("expected zero rate below speed dead zone, got %f", r)
	}
	if r := AckermannTurnRate(10, 0.05, 0, wheelbase); r != 0 {
		t.Errorf("expected zero rate below steering dead zone, got %f", r)
	}
	if r := AckermannTurnRate(10, -0.09, 0.02, wheelbase); r != 0 {
		t.Errorf("expected zero rate below steering dead zone, got %f", r)
	}
}

func TestAckermannTurnRateSign(t *testing.T) {
	const wheelbase = 4.5
	for i := 0; i < 256; i++ {
		speed := 0.02 + 15*rand.Float32()
		front := -44 + 88*rand.Float32()
		if Abs(front) < 0.1 {
			continue
		}
		rear := RearSteerFromFront(front)

		rate := AckermannTurnRate(speed, front, rear, wheelbase)
		want := Sign(Tan(Radians(front)) - Tan(Radians(rear)))
		if got := Sign(rate); got != want {
			t.Errorf("speed %f front %f rear %f: rate %f has sign %f, wanted %f",
				speed, front, rear, rate, got, want)
		}
	}
}

func TestAckermannTurnRateValue(t *testing.T) {
	// 10 m/s, 30 degrees front, no rear steer, 5 m wheelbase:
	// 10 * tan(30 deg) / 10 rad/s = 0.57735 rad/s.
	r := AckermannTurnRate(10, 30, 0, 5)
	want := Degrees(10 * Tan(Radians(30)) / 10)
	if Abs(r-want) > 0.001 {
		t.Errorf("wanted %f deg/s, got %f", want, r)
	}
}

func TestSmoothSpeedNoOvershoot(t *testing.T) {
	type Test struct {
		current, target, dt, accel, decel float32
	}
	cases := []Test{
		Test{current: 0, target: 10, dt: 0.1, accel: 3, decel: 4},
		Test{current: 10, target: 0, dt: 0.1, accel: 3, decel: 4},
		Test{current: 9.99, target: 10, dt: 1, accel: 3, decel: 4},
		Test{current: 0.01, target: 0, dt: 1, accel: 3, decel: 4},
		Test{current: 5, target: 5, dt: 0.25, accel: 3, decel: 4},
	}
	for i := 0; i < 64; i++ {
		cases = append(cases, Test{
			current: 20 * rand.Float32(),
			target:  20 * rand.Float32(),
			dt:      0.5 * rand.Float32(),
			accel:   0.1 + 5*rand.Float32(),
			decel:   0.1 + 5*rand.Float32(),
		})
	}

	for _, c := range cases {
		next := SmoothSpeed(c.current, c.target, c.dt, c.accel, c.decel)
		lo, hi := Min(c.current, c.target), Max(c.current, c.target)
		if next < lo || next > hi {
			t.Errorf("SmoothSpeed(%f, %f, %f, %f, %f) = %f overshoots",
				c.current, c.target, c.dt, c.accel, c.decel, next)
		}
	}
}

func TestSmoothSpeedRates(t *testing.T) {
	if next := SmoothSpeed(0, 10, 0.5, 3, 4); next != 1.5 {
		t.Errorf("accelerating: wanted 1.5, got %f", next)
	}
	if next := SmoothSpeed(10, 0, 0.5, 3, 4); next != 8 {
		t.Errorf("decelerating: wanted 8, got %f", next)
	}
}

func TestClampSteeringAngle(t *testing.T) {
	if a := ClampSteeringAngle(60); a != MaxSteeringAngle {
		t.Errorf("wanted %d, got %f", MaxSteeringAngle, a)
	}
	if a := ClampSteeringAngle(-60); a != -MaxSteeringAngle {
		t.Errorf("wanted %d, got %f", -MaxSteeringAngle, a)
	}
	if a := ClampSteeringAngle(12.5); a != 12.5 {
		t.Errorf("wanted 12.5, got %f", a)
	}
}
