// pkg/route/astar.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"container/heap"

	"github.com/avfx/watersalute/pkg/groundnet"
	"github.com/avfx/watersalute/pkg/math"
)

// searchNodes orders the open set by f-score for A*.
type searchNode struct {
	node int
	f    float32
}

type openHeap []searchNode

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)        { *h = append(*h, x.(searchNode)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// findPath runs A* from start to goal over the fire-truck-usable edges of
// the network, respecting one-way directionality. It returns the node
// index sequence including both endpoints, or nil if the nodes are not
// connected. Edge cost is the cached planar length; the heuristic is
// straight-line distance to the goal, which is admissible and consistent,
// so the first expansion of the goal is optimal.
func findPath(net *groundnet.Network, start, goal int) []int {
	if start == goal {
		return []int{start}
	}

	goalP := net.Nodes[goal].Local
	gScore := make(map[int]float32)
	cameFrom := make(map[int]int)
	closed := make(map[int]bool)

	gScore[start] = 0
	open := openHeap{{node: start, f: math.Distance2f(net.Nodes[start].Local, goalP)}}
	heap.Init(&open)

	for open.Len() > 0 {
		cur := heap.Pop(&open).(searchNode).node
		if cur == goal {
			// Reconstruct, then reverse.
			path := []int{goal}
			for n := goal; n != start; {
				n = cameFrom[n]
				path = append(path, n)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		if closed[cur] {
			// Stale heap entry from an earlier relaxation.
			continue
		}
		closed[cur] = true

		for _, e := range net.Nodes[cur].Edges {
			if !net.Edges[e].FireTruckOK || !net.Traversable(e, cur) {
				continue
			}
			next := net.Other(e, cur)
			if closed[next] {
				continue
			}

			g := gScore[cur] + net.Edges[e].Length
			if old, seen := gScore[next]; seen && g >= old {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur
			heap.Push(&open, searchNode{
				node: next,
				f:    g + math.Distance2f(net.Nodes[next].Local, goalP),
			})
		}
	}

	return nil
}
