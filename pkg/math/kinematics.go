// pkg/math/kinematics.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Ackermann steering kinematics for a two-axle vehicle with steerable
// front and (counter-steering) rear wheels. All angles are in degrees at
// the API boundary since the steering datarefs are degree-based.

// MaxSteeringAngle is the steering lock, in degrees, applied to both axles.
const MaxSteeringAngle = 45

// AckermannTurnRate returns the vehicle's turning rate in degrees per
// second for the given speed (m/s), front and rear steering angles
// (degrees) and wheelbase (m). Below the speed and steering dead zones the
// rate is exactly zero; the tangent of a tiny steering angle is otherwise
// numerically unstable.
func AckermannTurnRate(speed, frontDeg, rearDeg, wheelbase float32) float32 {
	if Abs(speed) < 0.01 || Abs(frontDeg) < 0.1 {
		return 0
	}
	rate := speed * (Tan(Radians(frontDeg)) - Tan(Radians(rearDeg))) / 2 / wheelbase
	return Degrees(rate)
}

// RearSteerFromFront returns the rear-axle steering angle for a given
// front angle; the rear wheels counter-steer at a fixed ratio.
func RearSteerFromFront(frontDeg float32) float32 {
	return -frontDeg * RearSteerRatio
}

const RearSteerRatio = 0.4

// ClampSteeringAngle limits a steering command to the steering lock.
func ClampSteeringAngle(deg float32) float32 {
	return Clamp(deg, -MaxSteeringAngle, MaxSteeringAngle)
}

// SmoothSpeed moves current toward target at the given acceleration or
// deceleration rate (m/s^2) over dt seconds, never overshooting the target
// in a single step.
func SmoothSpeed(current, target, dt, accel, decel float32) float32 {
	if current < target {
		return Min(current+accel*dt, target)
	} else if current > target {
		return Max(current-decel*dt, target)
	}
	return current
}
