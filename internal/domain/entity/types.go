package entity

import "github.com/go-gl/mathgl/mgl64"

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
)

// Tile represents a single column of the stage grid
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage is a tile grid laid out on the XZ plane.
// Solid tiles are walls rising from the floor (y=0) to WallHeight.
// Only static geometry lives here, so ray casts never hit a character.
type Stage struct {
	Width      int // columns (X)
	Depth      int // rows (Z)
	TileSize   float64
	WallHeight float64
	Tiles      [][]Tile // [z][x]
	Spawn      mgl64.Vec3
	SpawnYaw   float64
}

// GetTile returns the tile at the given tile coordinates.
// Anything outside the grid is treated as wall.
func (s *Stage) GetTile(tx, tz int) Tile {
	if tx < 0 || tx >= s.Width || tz < 0 || tz >= s.Depth {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[tz][tx]
}

// TileCoord returns the tile index containing the world coordinate v
func (s *Stage) TileCoord(v float64) int {
	return floorDiv(v, s.TileSize)
}

// GetTileAt returns the tile at the given world XZ position
func (s *Stage) GetTileAt(x, z float64) Tile {
	return s.GetTile(s.TileCoord(x), s.TileCoord(z))
}

// IsSolidAt checks if the column at world XZ position is solid
func (s *Stage) IsSolidAt(x, z float64) bool {
	return s.GetTileAt(x, z).Solid
}

// OverlapsSolid reports whether the XZ square centred on (x, z) with the given
// half extent touches any solid tile
func (s *Stage) OverlapsSolid(x, z, halfExtent float64) bool {
	// Shrink by a hair so a box resting flush against a tile edge is not inside it
	const skin = 1e-6
	startX := s.TileCoord(x - halfExtent + skin)
	endX := s.TileCoord(x + halfExtent - skin)
	startZ := s.TileCoord(z - halfExtent + skin)
	endZ := s.TileCoord(z + halfExtent - skin)

	for tz := startZ; tz <= endZ; tz++ {
		for tx := startX; tx <= endX; tx++ {
			if s.GetTile(tx, tz).Solid {
				return true
			}
		}
	}
	return false
}

func floorDiv(v, size float64) int {
	if size <= 0 {
		return 0
	}
	q := v / size
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
