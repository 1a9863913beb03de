// pkg/math/vec.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Points and vectors in the host's local planar frame are [2]float32 of
// (x, z): +x east, +z south, so heading 0 (north) points along -z.

func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Mid2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Dot(a, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

func Lerp2f(x float32, a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{(1-x)*a[0] + x*b[0], (1-x)*a[1] + x*b[1]}
}

func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

func Normalize2f(a [2]float32) [2]float32 {
	l := Length2f(a)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(a, 1/l)
}

// Distance3f returns the distance between two points in (x, y, z) space.
func Distance3f(a [3]float32, b [3]float32) float32 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return Sqrt(dx*dx + dy*dy + dz*dz)
}

// HeadingVector returns the unit (x, z) vector pointing along the given
// heading in degrees.
func HeadingVector(hdg float32) [2]float32 {
	h := Radians(hdg)
	return [2]float32{Sin(h), -Cos(h)}
}

// Offset2f returns the point at distance dist along heading hdg from p.
func Offset2f(p [2]float32, hdg float32, dist float32) [2]float32 {
	return Add2f(p, Scale2f(HeadingVector(hdg), dist))
}

// RotateHeading2f rotates the vector v (expressed in the vehicle frame,
// +x right, +z back) into the planar frame for a vehicle on heading hdg.
func RotateHeading2f(v [2]float32, hdg float32) [2]float32 {
	h := Radians(hdg)
	s, c := Sin(h), Cos(h)
	// right = (cos h, sin h), back = (-sin h, cos h)
	return [2]float32{v[0]*c - v[1]*s, v[0]*s + v[1]*c}
}
