// pkg/host/transform.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package host

import (
	gomath "math"

	"github.com/wroge/wgs84"

	"github.com/avfx/watersalute/pkg/math"
)

// ProjectedTransform implements Transform for headless runs by projecting
// through web mercator (EPSG:3857) relative to a reference origin, with
// the mercator scale factor at the origin latitude taken out so distances
// come out in meters. The host's own transform replaces this when the
// system runs inside a simulator.
type ProjectedTransform struct {
	origin   math.Point2LL
	x0, y0   float64
	scale    float64 // cos(origin latitude)
	forward  wgs84.Func
	backward wgs84.Func
}

func NewProjectedTransform(origin math.Point2LL) *ProjectedTransform {
	epsg := wgs84.EPSG()
	t := &ProjectedTransform{
		origin:   origin,
		scale:    gomath.Cos(float64(origin.Latitude()) / 180 * gomath.Pi),
		forward:  epsg.Transform(4326, 3857),
		backward: epsg.Transform(3857, 4326),
	}
	t.x0, t.y0, _ = t.forward(float64(origin.Longitude()), float64(origin.Latitude()), 0)
	return t
}

func (t *ProjectedTransform) LocalFromGeo(ll math.Point2LL) [2]float32 {
	x, y, _ := t.forward(float64(ll.Longitude()), float64(ll.Latitude()), 0)
	// +x east, +z south
	return [2]float32{float32((x - t.x0) * t.scale), float32(-(y - t.y0) * t.scale)}
}

func (t *ProjectedTransform) GeoFromLocal(p [2]float32) math.Point2LL {
	x := t.x0 + float64(p[0])/t.scale
	y := t.y0 - float64(p[1])/t.scale
	lon, lat, _ := t.backward(x, y, 0)
	return math.Point2LL{float32(lon), float32(lat)}
}
