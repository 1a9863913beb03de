// pkg/math/heading.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// Heading2f returns the heading from the point |from| to the point |to| in
// degrees, in the host's planar convention: heading 0 points along -z
// (north), increasing clockwise.
func Heading2f(from [2]float32, to [2]float32) float32 {
	v := Sub2f(to, from)
	return NormalizeHeading(Degrees(Atan2(v[0], -v[1])))
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Figure out which way is closest: first find the angle to rotate the
// target heading by so that it's aligned with 180 degrees. This lets us
// not worry about the complexities of the wrap around at 0/360..
func HeadingSignedTurn(cur, target float32) float32 {
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot) // w.r.t. 180 target
}

// Reduces it to [0,360).
func NormalizeHeading(h float32) float32 {
	h = Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// NormalizeRelativeHeading reduces a heading difference to (-180,180].
func NormalizeRelativeHeading(h float32) float32 {
	h = NormalizeHeading(h)
	if h > 180 {
		h -= 360
	}
	return h
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}
