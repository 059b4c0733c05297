package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CastRay traces the segment from -> to across the tile grid and returns the
// first wall face it crosses below WallHeight.
//
// The traversal walks tile boundaries in XZ order of crossing. The tile the
// ray starts in is never reported, and a purely vertical segment never hits.
func (s *Stage) CastRay(from, to mgl64.Vec3) (RayHit, bool) {
	dir := to.Sub(from)
	length := dir.Len()
	if length == 0 || s.TileSize <= 0 {
		return RayHit{}, false
	}

	tx := s.TileCoord(from.X())
	tz := s.TileCoord(from.Z())

	stepX, tMaxX, tDeltaX := s.axisSetup(from.X(), dir.X(), tx)
	stepZ, tMaxZ, tDeltaZ := s.axisSetup(from.Z(), dir.Z(), tz)
	if stepX == 0 && stepZ == 0 {
		return RayHit{}, false
	}

	for {
		var t float64
		var normal mgl64.Vec3
		if tMaxX < tMaxZ {
			t = tMaxX
			tx += stepX
			tMaxX += tDeltaX
			normal = mgl64.Vec3{float64(-stepX), 0, 0}
		} else {
			t = tMaxZ
			tz += stepZ
			tMaxZ += tDeltaZ
			normal = mgl64.Vec3{0, 0, float64(-stepZ)}
		}
		if t > 1 {
			return RayHit{}, false
		}

		if !s.GetTile(tx, tz).Solid {
			continue
		}
		point := from.Add(dir.Mul(t))
		if point.Y() < 0 || point.Y() > s.WallHeight {
			continue
		}
		return RayHit{
			Point:    point,
			Normal:   normal,
			Distance: t * length,
		}, true
	}
}

// axisSetup returns the step direction, the ray parameter of the first tile
// boundary crossing and the parameter spacing between crossings for one axis.
func (s *Stage) axisSetup(origin, delta float64, tile int) (step int, tMax, tDelta float64) {
	switch {
	case delta > 0:
		boundary := float64(tile+1) * s.TileSize
		return 1, (boundary - origin) / delta, s.TileSize / delta
	case delta < 0:
		boundary := float64(tile) * s.TileSize
		return -1, (boundary - origin) / delta, -s.TileSize / delta
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
