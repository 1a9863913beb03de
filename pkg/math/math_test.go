// pkg/math/math_test.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"

	"github.com/avfx/watersalute/pkg/rand"
)

func TestNormalizeHeading(t *testing.T) {
	type Test struct {
		in, out float32
	}
	for _, test := range []Test{
		Test{in: 0, out: 0},
		Test{in: 360, out: 0},
		Test{in: -360, out: 0},
		Test{in: 90, out: 90},
		Test{in: -90, out: 270},
		Test{in: 725, out: 5},
		Test{in: -725, out: 355},
	} {
		if h := NormalizeHeading(test.in); h != test.out {
			t.Errorf("NormalizeHeading(%f): wanted %f, got %f", test.in, test.out, h)
		}
	}

	// Range and idempotence over a spread of values.
	for i := 0; i < 128; i++ {
		h := -1000 + 2000*rand.Float32()
		n := NormalizeHeading(h)
		if n < 0 || n >= 360 {
			t.Errorf("NormalizeHeading(%f) = %f out of [0,360)", h, n)
		}
		if n2 := NormalizeHeading(n); n2 != n {
			t.Errorf("NormalizeHeading not idempotent: %f -> %f -> %f", h, n, n2)
		}
	}
}

func TestNormalizeRelativeHeading(t *testing.T) {
	for i := 0; i < 128; i++ {
		h := -1000 + 2000*rand.Float32()
		n := NormalizeRelativeHeading(h)
		if n <= -180 || n > 180 {
			t.Errorf("NormalizeRelativeHeading(%f) = %f out of (-180,180]", h, n)
		}
	}
	if n := NormalizeRelativeHeading(180); n != 180 {
		t.Errorf("NormalizeRelativeHeading(180): wanted 180, got %f", n)
	}
	if n := NormalizeRelativeHeading(181); n != -179 {
		t.Errorf("NormalizeRelativeHeading(181): wanted -179, got %f", n)
	}
}

func TestHeading2f(t *testing.T) {
	type Test struct {
		from, to [2]float32
		heading  float32
	}
	for _, test := range []Test{
		Test{from: [2]float32{0, 0}, to: [2]float32{0, -1}, heading: 0},   // north
		Test{from: [2]float32{0, 0}, to: [2]float32{1, 0}, heading: 90},   // east
		Test{from: [2]float32{0, 0}, to: [2]float32{0, 1}, heading: 180},  // south
		Test{from: [2]float32{0, 0}, to: [2]float32{-1, 0}, heading: 270}, // west
		Test{from: [2]float32{5, 5}, to: [2]float32{6, 4}, heading: 45},
	} {
		if h := Heading2f(test.from, test.to); Abs(h-test.heading) > 0.001 {
			t.Errorf("Heading2f(%v, %v): wanted %f, got %f", test.from, test.to, test.heading, h)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	type Test struct {
		a, b, diff float32
	}
	for _, test := range []Test{
		Test{a: 10, b: 350, diff: 20},
		Test{a: 350, b: 10, diff: 20},
		Test{a: 0, b: 180, diff: 180},
		Test{a: 90, b: 90, diff: 0},
	} {
		if d := HeadingDifference(test.a, test.b); d != test.diff {
			t.Errorf("HeadingDifference(%f, %f): wanted %f, got %f", test.a, test.b, test.diff, d)
		}
	}
}

func TestRotateHeading2f(t *testing.T) {
	// A nozzle one meter to the right of a vehicle facing east sits one
	// meter south of it in the planar frame.
	p := RotateHeading2f([2]float32{1, 0}, 90)
	if Abs(p[0]) > 1e-5 || Abs(p[1]-1) > 1e-5 {
		t.Errorf("RotateHeading2f right offset at heading 90: got %v", p)
	}
	// One meter behind a vehicle facing north is one meter toward +z.
	p = RotateHeading2f([2]float32{0, 1}, 0)
	if Abs(p[0]) > 1e-5 || Abs(p[1]-1) > 1e-5 {
		t.Errorf("RotateHeading2f back offset at heading 0: got %v", p)
	}
}
