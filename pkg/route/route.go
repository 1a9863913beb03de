// pkg/route/route.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route plans drivable routes for the salute trucks: A* over the
// airport ground network when one is loaded, a direct interpolated line
// when not, followed by corner smoothing and per-waypoint speed
// assignment.
package route

// Waypoint is one point of a planned route. Heading is the direction of
// travel through the waypoint and Speed the target speed approaching it;
// Smoothed marks points synthesized by corner smoothing.
type Waypoint struct {
	P        [2]float32
	Heading  float32
	Speed    float32
	Smoothed bool
}

// Route is an ordered sequence of waypoints with a cursor maintained by
// the truck that owns it. A route is never shared between trucks.
type Route struct {
	Waypoints []Waypoint
	Cursor    int
	Valid     bool
	Completed bool
}

// Current returns the waypoint at the cursor; ok is false once the
// cursor has passed the last waypoint.
func (r *Route) Current() (Waypoint, bool) {
	if r == nil || !r.Valid || r.Cursor >= len(r.Waypoints) {
		return Waypoint{}, false
	}
	return r.Waypoints[r.Cursor], true
}

// Advance moves the cursor to the next waypoint, marking the route
// completed when the cursor passes the last one.
func (r *Route) Advance() {
	r.Cursor++
	if r.Cursor >= len(r.Waypoints) {
		r.Completed = true
	}
}

// Remaining returns the waypoints from the cursor onward.
func (r *Route) Remaining() []Waypoint {
	if r == nil || r.Cursor >= len(r.Waypoints) {
		return nil
	}
	return r.Waypoints[r.Cursor:]
}
