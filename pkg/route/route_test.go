// pkg/route/route_test.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"testing"

	"github.com/avfx/watersalute/pkg/groundnet"
	"github.com/avfx/watersalute/pkg/math"
)

func makeNetwork(nodes [][2]float32) *groundnet.Network {
	net := &groundnet.Network{Loaded: true}
	for _, p := range nodes {
		net.Nodes = append(net.Nodes, groundnet.Node{Local: p})
	}
	return net
}

func addEdge(net *groundnet.Network, a, b int, oneWay, fireTruckOK bool) {
	idx := len(net.Edges)
	net.Edges = append(net.Edges, groundnet.Edge{
		A:           a,
		B:           b,
		OneWay:      oneWay,
		FireTruckOK: fireTruckOK,
		Length:      math.Distance2f(net.Nodes[a].Local, net.Nodes[b].Local),
	})
	net.Nodes[a].Edges = append(net.Nodes[a].Edges, idx)
	net.Nodes[b].Edges = append(net.Nodes[b].Edges, idx)
}

func TestAStarGrid(t *testing.T) {
	// 3x3 grid, 100m spacing, indices row-major:
	//   0 1 2
	//   3 4 5
	//   6 7 8
	var pts [][2]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			pts = append(pts, [2]float32{float32(col) * 100, float32(row) * 100})
		}
	}
	net := makeNetwork(pts)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if col < 2 {
				addEdge(net, i, i+1, false, true)
			}
			if row < 2 {
				addEdge(net, i, i+3, false, true)
			}
		}
	}

	path := findPath(net, 0, 8)
	if path == nil {
		t.Fatal("no path found on connected grid")
	}
	if len(path) != 5 {
		t.Fatalf("wanted a 5-node path, got %v", path)
	}
	if path[0] != 0 || path[len(path)-1] != 8 {
		t.Errorf("path endpoints wrong: %v", path)
	}
	var cost float32
	for i := 0; i < len(path)-1; i++ {
		cost += math.Distance2f(net.Nodes[path[i]].Local, net.Nodes[path[i+1]].Local)
	}
	if math.Abs(cost-400) > 0.01 {
		t.Errorf("wanted path cost 400, got %f", cost)
	}
}

func TestAStarRespectsOneWay(t *testing.T) {
	// 0 -> 1 one-way in the wrong direction forces the detour through 2.
	net := makeNetwork([][2]float32{{0, 0}, {100, 0}, {50, 80}})
	addEdge(net, 1, 0, true, true) // traversable only 1->0
	addEdge(net, 0, 2, false, true)
	addEdge(net, 2, 1, false, true)

	path := findPath(net, 0, 1)
	if len(path) != 3 || path[1] != 2 {
		t.Errorf("wanted detour through node 2, got %v", path)
	}

	// From 1 the direct edge is usable.
	path = findPath(net, 1, 0)
	if len(path) != 2 {
		t.Errorf("wanted direct path, got %v", path)
	}
}

func TestAStarSkipsNonFireTruckEdges(t *testing.T) {
	net := makeNetwork([][2]float32{{0, 0}, {100, 0}})
	addEdge(net, 0, 1, false, false)

	if path := findPath(net, 0, 1); path != nil {
		t.Errorf("expected no path over a taxi-only edge, got %v", path)
	}
}

func TestAStarOptimalVersusDirect(t *testing.T) {
	// The A* cost through the network can never beat the straight-line
	// distance between the same endpoints.
	net := makeNetwork([][2]float32{{0, 0}, {60, 40}, {120, 0}})
	addEdge(net, 0, 1, false, true)
	addEdge(net, 1, 2, false, true)

	path := findPath(net, 0, 2)
	if path == nil {
		t.Fatal("no path")
	}
	var cost float32
	for i := 0; i < len(path)-1; i++ {
		cost += math.Distance2f(net.Nodes[path[i]].Local, net.Nodes[path[i+1]].Local)
	}
	if direct := math.Distance2f(net.Nodes[0].Local, net.Nodes[2].Local); cost < direct {
		t.Errorf("path cost %f below straight-line distance %f", cost, direct)
	}
}

func TestDirectFallback(t *testing.T) {
	start := [2]float32{0, 0}
	target := [2]float32{0, -100}

	r := Plan(start, target, 90, 10, nil)
	if !r.Valid {
		t.Fatal("fallback route should be valid")
	}
	// floor(100/20)+2 = 7 waypoints.
	if len(r.Waypoints) != 7 {
		t.Fatalf("wanted 7 waypoints, got %d", len(r.Waypoints))
	}
	if r.Waypoints[0].P != start {
		t.Errorf("first waypoint %v is not the start", r.Waypoints[0].P)
	}
	last := r.Waypoints[len(r.Waypoints)-1]
	if last.P != target || last.Speed != 0 || last.Heading != 90 {
		t.Errorf("last waypoint %+v should be the target at zero speed on the forced heading", last)
	}
	// Uniform heading along the segment: due north.
	for _, wp := range r.Waypoints[:len(r.Waypoints)-1] {
		if math.Abs(wp.Heading) > 0.001 {
			t.Errorf("waypoint heading %f should be 0", wp.Heading)
		}
		if wp.Speed != 10 {
			t.Errorf("waypoint speed %f should be cruise", wp.Speed)
		}
	}

	// Cap on the waypoint budget for very long routes.
	r = Plan(start, [2]float32{0, -1e6}, 0, 10, nil)
	if len(r.Waypoints) != MaxDirectNodes {
		t.Errorf("wanted %d waypoints, got %d", MaxDirectNodes, len(r.Waypoints))
	}
}

func TestPlanThreeNodePath(t *testing.T) {
	// A-B-C with fire-truck edges; start at A, target near C.
	net := makeNetwork([][2]float32{{0, 0}, {100, 0}, {100, -100}})
	addEdge(net, 0, 1, false, true)
	addEdge(net, 1, 2, false, true)

	start := [2]float32{2, 2}
	target := [2]float32{105, -103}
	r := Plan(start, target, 270, 8, net)
	if !r.Valid {
		t.Fatal("route should be valid")
	}
	if len(r.Waypoints) < 3 {
		t.Fatalf("wanted at least 3 waypoints, got %d", len(r.Waypoints))
	}
	if r.Waypoints[0].P != start {
		t.Errorf("first waypoint %v should be the literal start", r.Waypoints[0].P)
	}
	last := r.Waypoints[len(r.Waypoints)-1]
	if last.P != target || last.Heading != 270 || last.Speed != 0 {
		t.Errorf("last waypoint %+v should be the literal target, forced heading, zero speed", last)
	}
}

func TestSmoothingPreservesEndpoints(t *testing.T) {
	wps := []Waypoint{
		{P: [2]float32{0, 0}, Speed: 10},
		{P: [2]float32{100, 0}, Speed: 10},
		{P: [2]float32{100, -100}, Speed: 10},
	}
	out := smoothCorners(wps)
	if out[0] != wps[0] {
		t.Errorf("first waypoint changed: %+v", out[0])
	}
	if out[len(out)-1] != wps[len(wps)-1] {
		t.Errorf("last waypoint changed: %+v", out[len(out)-1])
	}
	// The corner qualifies (both segments 100m > 2*MinTurnRadius), so it
	// becomes an approach/apex/exit triple.
	if len(out) != 5 {
		t.Fatalf("wanted 5 waypoints after smoothing, got %d", len(out))
	}
	if !out[1].Smoothed || out[2].Smoothed || !out[3].Smoothed {
		t.Errorf("smoothed flags wrong: %+v %+v %+v", out[1], out[2], out[3])
	}
	if out[2].Speed >= out[1].Speed {
		t.Errorf("apex speed %f should be below approach speed %f", out[2].Speed, out[1].Speed)
	}
}

func TestSmoothingSkipsShortSegments(t *testing.T) {
	wps := []Waypoint{
		{P: [2]float32{0, 0}, Speed: 10},
		{P: [2]float32{15, 0}, Speed: 10}, // 15m < 2*MinTurnRadius
		{P: [2]float32{15, -100}, Speed: 10},
	}
	out := smoothCorners(wps)
	if len(out) != 3 {
		t.Errorf("short segments should not be smoothed; got %d waypoints", len(out))
	}
}

func TestRouteCompletion(t *testing.T) {
	r := Plan([2]float32{0, 0}, [2]float32{0, -50}, 0, 10, nil)
	n := len(r.Waypoints)
	for i := 0; i < n-1; i++ {
		r.Advance()
		if r.Completed {
			t.Fatalf("route completed after %d of %d advances", i+1, n)
		}
	}
	r.Advance()
	if !r.Completed {
		t.Error("route should be completed once the cursor passes the last waypoint")
	}
	if _, ok := r.Current(); ok {
		t.Error("no current waypoint should remain after completion")
	}
}
