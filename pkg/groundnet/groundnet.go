// pkg/groundnet/groundnet.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package groundnet models one airport's ground-routing network: the
// nodes and edges service vehicles can drive on, parsed from the host's
// ground-routing files and expressed in local planar coordinates.
package groundnet

import (
	"github.com/avfx/watersalute/pkg/math"
)

// Node is a point in the ground network. Nodes are immutable after load.
type Node struct {
	LatLong math.Point2LL
	Local   [2]float32 // derived via the host transform after airport selection
	Usage   string
	Name    string
	Edges   []int // indices of incident edges
}

// Edge connects two nodes by index. Length is always recomputed from the
// nodes' local coordinates, never taken from the file.
type Edge struct {
	A, B        int
	OneWay      bool // traversable A->B only
	FireTruckOK bool
	Surface     string
	Length      float32
}

// Network is the ground graph for a single airport; it is rebuilt from
// the routing files each time a ceremony starts.
type Network struct {
	AirportID string
	Nodes     []Node
	Edges     []Edge
	Loaded    bool

	nodeIndex map[string]int
}

// NodeIndex returns the index of the named node, or -1.
func (n *Network) NodeIndex(name string) int {
	if idx, ok := n.nodeIndex[name]; ok {
		return idx
	}
	return -1
}

// FindNearestNode returns the index of the node closest to p, or -1 if
// the network is unloaded or empty. With fireTruckOnly set, only nodes
// with at least one fire-truck-usable incident edge qualify. Ties go to
// the lower index.
func (n *Network) FindNearestNode(p [2]float32, fireTruckOnly bool) int {
	if n == nil || !n.Loaded {
		return -1
	}

	best := -1
	var bestDist float32
	for i := range n.Nodes {
		if fireTruckOnly && !n.fireTruckUsable(i) {
			continue
		}
		d := math.Distance2f(p, n.Nodes[i].Local)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (n *Network) fireTruckUsable(node int) bool {
	for _, e := range n.Nodes[node].Edges {
		if n.Edges[e].FireTruckOK {
			return true
		}
	}
	return false
}

// Traversable reports whether edge e can be driven starting from node
// index from; one-way edges only go from their declared origin.
func (n *Network) Traversable(e int, from int) bool {
	edge := &n.Edges[e]
	if edge.A == from {
		return true
	}
	return edge.B == from && !edge.OneWay
}

// Other returns the node at the far end of edge e from node from.
func (n *Network) Other(e int, from int) int {
	if edge := &n.Edges[e]; edge.A == from {
		return edge.B
	}
	return n.Edges[e].A
}
