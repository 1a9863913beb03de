// pkg/host/terrain.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package host

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/avfx/watersalute/pkg/math"
)

// FlatTerrain reports a constant elevation everywhere; used headless and
// in tests.
type FlatTerrain struct {
	Elevation float32
}

func (t FlatTerrain) ElevationAt(p [2]float32) float32 {
	return t.Elevation
}

// CachedTerrain wraps another Terrain with an LRU cache keyed by the
// probe position quantized to a one meter grid. Host terrain probes are
// comparatively expensive and the trucks resample elevation every tick
// while moving slowly, so nearby queries repeat constantly.
type CachedTerrain struct {
	terrain Terrain
	cache   *lru.Cache[[2]int32, float32]
}

func NewCachedTerrain(t Terrain, size int) *CachedTerrain {
	cache, err := lru.New[[2]int32, float32](size)
	if err != nil {
		// Only possible for a non-positive size.
		panic(err)
	}
	return &CachedTerrain{terrain: t, cache: cache}
}

func (c *CachedTerrain) ElevationAt(p [2]float32) float32 {
	key := [2]int32{int32(math.Floor(p[0])), int32(math.Floor(p[1]))}
	if e, ok := c.cache.Get(key); ok {
		return e
	}
	e := c.terrain.ElevationAt(p)
	c.cache.Add(key, e)
	return e
}
