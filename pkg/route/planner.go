// pkg/route/planner.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/avfx/watersalute/pkg/groundnet"
	"github.com/avfx/watersalute/pkg/math"
)

const (
	// NodeSpacing is the interpolation interval of direct fallback routes.
	NodeSpacing = 20 // meters
	// MaxDirectNodes caps the waypoint count of a fallback route.
	MaxDirectNodes = 64

	// MinTurnRadius gates corner smoothing: both segments adjacent to a
	// corner must be longer than twice this for the corner to be rounded.
	MinTurnRadius = 10 // meters
	// SmoothOffsetFraction positions the synthesized approach and exit
	// points along their segments.
	SmoothOffsetFraction = 0.3

	// Corner speed factors relative to the waypoint's assigned speed.
	approachSpeedFactor = 0.6
	apexSpeedFactor     = 0.4
)

// Plan produces a route from start to target ending on targetHeading at
// zero speed. With a loaded network it searches the fire-truck graph
// between the nearest qualifying nodes and smooths the corners; when the
// network is unavailable, no qualifying node exists, or the search fails,
// it degrades to a straight interpolated line. The fallback is the
// documented graceful-degradation path, not an error.
func Plan(start, target [2]float32, targetHeading, cruise float32, net *groundnet.Network) *Route {
	if net == nil || !net.Loaded {
		return direct(start, target, targetHeading, cruise)
	}

	sn := net.FindNearestNode(start, true)
	gn := net.FindNearestNode(target, true)
	if sn == -1 || gn == -1 {
		return direct(start, target, targetHeading, cruise)
	}

	path := findPath(net, sn, gn)
	if path == nil {
		return direct(start, target, targetHeading, cruise)
	}

	wps := make([]Waypoint, 0, len(path)+2)
	wps = append(wps, Waypoint{P: start, Speed: cruise})
	for _, n := range path {
		wps = append(wps, Waypoint{P: net.Nodes[n].Local, Speed: cruise})
	}
	wps = append(wps, Waypoint{P: target, Speed: 0})

	assignHeadings(wps, targetHeading)
	wps = smoothCorners(wps)
	assignHeadings(wps, targetHeading)

	return &Route{Waypoints: wps, Valid: true}
}

// direct builds the straight-line fallback route: evenly spaced points
// from start to target, uniform heading, full stop on the required final
// heading.
func direct(start, target [2]float32, targetHeading, cruise float32) *Route {
	dist := math.Distance2f(start, target)
	n := int(math.Floor(dist/NodeSpacing)) + 2
	n = math.Min(n, MaxDirectNodes)

	wps := make([]Waypoint, n)
	for i := range wps {
		t := float32(i) / float32(n-1)
		wps[i] = Waypoint{P: math.Lerp2f(t, start, target), Speed: cruise}
	}
	assignHeadings(wps, targetHeading)
	wps[n-1].Speed = 0

	return &Route{Waypoints: wps, Valid: true}
}

// assignHeadings points every waypoint at its successor; the last keeps
// the required final heading.
func assignHeadings(wps []Waypoint, targetHeading float32) {
	for i := range wps[:len(wps)-1] {
		wps[i].Heading = math.Heading2f(wps[i].P, wps[i+1].P)
	}
	wps[len(wps)-1].Heading = targetHeading
}

// smoothCorners replaces each interior waypoint whose adjacent segments
// are both long enough with an approach/apex/exit triple at reduced
// speeds, producing a drivable rounded turn. The first and last waypoints
// are never altered.
func smoothCorners(wps []Waypoint) []Waypoint {
	if len(wps) < 3 {
		return wps
	}

	out := make([]Waypoint, 0, len(wps))
	out = append(out, wps[0])

	for i := 1; i < len(wps)-1; i++ {
		prev, cur, next := wps[i-1], wps[i], wps[i+1]
		inLen := math.Distance2f(prev.P, cur.P)
		outLen := math.Distance2f(cur.P, next.P)

		if inLen <= 2*MinTurnRadius || outLen <= 2*MinTurnRadius {
			out = append(out, cur)
			continue
		}

		approach := Waypoint{
			P:        math.Lerp2f(1-SmoothOffsetFraction, prev.P, cur.P),
			Speed:    cur.Speed * approachSpeedFactor,
			Smoothed: true,
		}
		apex := Waypoint{
			P:     cur.P,
			Speed: cur.Speed * apexSpeedFactor,
		}
		exit := Waypoint{
			P:        math.Lerp2f(SmoothOffsetFraction, cur.P, next.P),
			Speed:    cur.Speed * approachSpeedFactor,
			Smoothed: true,
		}
		out = append(out, approach, apex, exit)
	}

	return append(out, wps[len(wps)-1])
}

// PathCost returns the summed segment lengths of a route's waypoints,
// used by callers comparing planned routes.
func (r *Route) PathCost() float32 {
	var sum float32
	for i := range r.Waypoints[:len(r.Waypoints)-1] {
		sum += math.Distance2f(r.Waypoints[i].P, r.Waypoints[i+1].P)
	}
	return sum
}
