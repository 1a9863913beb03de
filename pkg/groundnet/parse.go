// pkg/groundnet/parse.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package groundnet

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/log"
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/util"
)

// Record codes in the ground-routing files.
const (
	recAirport     = "1"
	recSeaport     = "16"
	recHeliport    = "17"
	recNetwork     = "1200" // enables node/edge parsing for the current airport
	recNode        = "1201"
	recTaxiEdge    = "1202"
	recServiceEdge = "1206"
	recMetadata    = "1302"
	recEOF         = "99"
)

// FireTruckTag marks a service edge as usable by fire trucks. An empty
// vehicle-class list on a service edge means "any vehicle".
const FireTruckTag = "firetruck"

// DefaultSearchRadiusNM is how far from the aircraft an airport's
// reference point may be and still have its network considered.
const DefaultSearchRadiusNM = 5

// Loader scans ground-routing files in priority order and builds the
// Network for the airport nearest the aircraft.
type Loader struct {
	// Candidate file paths, highest priority first. Files ending in .zst
	// are decompressed while scanning.
	Paths []string
	// Airports whose reference point is farther than this from the
	// aircraft are ignored.
	SearchRadiusNM float32
	Lg             *log.Logger
}

// rawNode and rawEdge buffer one airport's records until that airport
// either wins the best-of selection or is discarded; keeping at most one
// airport's graph bounds parse memory.
type rawNode struct {
	ll    math.Point2LL
	usage string
	name  string
}

type rawEdge struct {
	from, to    string
	oneWay      bool
	surface     string
	fireTruckOK bool
}

type rawAirport struct {
	id        string
	datum     math.Point2LL // from metadata records, if present
	inNetwork bool
	nodes     []rawNode
	edges     []rawEdge
}

// Load parses the candidate files and returns the network of the nearest
// airport within the search radius, with node coordinates converted to
// local planar and edge lengths recomputed. It returns nil, false when no
// airport in range has a non-empty ground network; callers then operate
// in direct-route fallback mode.
func (l *Loader) Load(aircraft math.Point2LL, tr host.Transform, e *util.ErrorLogger) (*Network, bool) {
	for _, path := range l.Paths {
		e.Push(path)
		best := l.scanFile(path, aircraft, e)
		e.Pop()

		if best != nil {
			net := l.build(best, tr)
			l.Lg.Infof("%s: loaded ground network for %s: %d nodes, %d edges",
				path, net.AirportID, len(net.Nodes), len(net.Edges))
			return net, true
		}
	}
	l.Lg.Warnf("no airport ground network within %.0f nm", l.SearchRadiusNM)
	return nil, false
}

// scanFile streams one routing file, retaining only the best airport seen
// so far. Unrecognized and malformed records are skipped, not fatal.
func (l *Loader) scanFile(path string, aircraft math.Point2LL, e *util.ErrorLogger) *rawAirport {
	f, err := os.Open(path)
	if err != nil {
		l.Lg.Infof("%s: %v", path, err)
		return nil
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			e.Error(err)
			return nil
		}
		defer zr.Close()
		r = zr
	}

	var best, cur *rawAirport
	var bestDist float32

	finalize := func() {
		if cur == nil || len(cur.nodes) == 0 {
			cur = nil
			return
		}
		ref := cur.datum
		if ref.IsZero() {
			ref = cur.nodes[0].ll
		}
		if d := math.NMDistance2LL(aircraft, ref); d <= l.SearchRadiusNM && (best == nil || d < bestDist) {
			best, bestDist = cur, d
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		f := strings.Fields(scanner.Text())
		if len(f) == 0 {
			continue
		}

		switch f[0] {
		case recAirport, recSeaport, recHeliport:
			finalize()
			cur = &rawAirport{}
			if len(f) >= 5 {
				cur.id = f[4]
			}

		case recMetadata:
			if cur == nil || len(f) < 3 {
				continue
			}
			switch f[1] {
			case "datum_lat":
				if v, err := strconv.ParseFloat(f[2], 32); err == nil {
					cur.datum[1] = float32(v)
				}
			case "datum_lon":
				if v, err := strconv.ParseFloat(f[2], 32); err == nil {
					cur.datum[0] = float32(v)
				}
			}

		case recNetwork:
			if cur != nil {
				cur.inNetwork = true
			}

		case recNode:
			if cur == nil || !cur.inNetwork || len(f) < 5 {
				continue
			}
			lat, err := strconv.ParseFloat(f[1], 32)
			if err != nil {
				e.ErrorString("%s: bad latitude %q", cur.id, f[1])
				continue
			}
			lon, err := strconv.ParseFloat(f[2], 32)
			if err != nil {
				e.ErrorString("%s: bad longitude %q", cur.id, f[2])
				continue
			}
			cur.nodes = append(cur.nodes, rawNode{
				ll:    math.Point2LL{float32(lon), float32(lat)},
				usage: f[3],
				name:  strings.Join(f[4:], " "), // names may span tokens
			})

		case recTaxiEdge:
			if cur == nil || !cur.inNetwork || len(f) < 4 {
				continue
			}
			edge := rawEdge{from: f[1], to: f[2], oneWay: f[3] == "oneway"}
			if len(f) >= 5 {
				edge.surface = f[4]
			}
			cur.edges = append(cur.edges, edge)

		case recServiceEdge:
			if cur == nil || !cur.inNetwork || len(f) < 4 {
				continue
			}
			edge := rawEdge{from: f[1], to: f[2], oneWay: f[3] == "oneway"}
			types := f[4:]
			edge.fireTruckOK = len(types) == 0
			for _, t := range types {
				if t == FireTruckTag {
					edge.fireTruckOK = true
				}
			}
			cur.edges = append(cur.edges, edge)

		case recEOF:
			finalize()
		}
	}
	if err := scanner.Err(); err != nil {
		e.Error(err)
	}
	finalize()

	return best
}

// build converts the selected airport's buffered records into the final
// graph: local coordinates via the host transform, recomputed edge
// lengths, adjacency lists, and the name index.
func (l *Loader) build(raw *rawAirport, tr host.Transform) *Network {
	net := &Network{
		AirportID: raw.id,
		nodeIndex: make(map[string]int),
		Loaded:    true,
	}

	for _, rn := range raw.nodes {
		idx := len(net.Nodes)
		net.Nodes = append(net.Nodes, Node{
			LatLong: rn.ll,
			Local:   tr.LocalFromGeo(rn.ll),
			Usage:   rn.usage,
			Name:    rn.name,
		})
		if _, ok := net.nodeIndex[rn.name]; !ok {
			net.nodeIndex[rn.name] = idx
		}
	}

	for _, re := range raw.edges {
		a, aok := net.nodeIndex[re.from]
		b, bok := net.nodeIndex[re.to]
		if !aok || !bok {
			l.Lg.Debugf("%s: edge %q-%q references unknown node", raw.id, re.from, re.to)
			continue
		}
		idx := len(net.Edges)
		net.Edges = append(net.Edges, Edge{
			A:           a,
			B:           b,
			OneWay:      re.oneWay,
			FireTruckOK: re.fireTruckOK,
			Surface:     re.surface,
			Length:      math.Distance2f(net.Nodes[a].Local, net.Nodes[b].Local),
		})
		net.Nodes[a].Edges = append(net.Nodes[a].Edges, idx)
		net.Nodes[b].Edges = append(net.Nodes[b].Edges, idx)
	}

	return net
}
