package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Rows shorter than the stage width are padded with empty tiles.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: tile size must be positive, got %d", cfg.ID, cfg.Size.TileSize)
	}
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileDepth := len(cfg.Layers.Collision)
	if depth := cfg.Size.Depth / cfg.Size.TileSize; depth > tileDepth {
		tileDepth = depth
	}

	tiles := make([][]entity.Tile, tileDepth)
	for z := range tiles {
		tiles[z] = make([]entity.Tile, tileWidth)
		if z >= len(cfg.Layers.Collision) {
			continue
		}
		// Columns are runes so multi-byte tile glyphs map one per tile
		for x, char := range []rune(cfg.Layers.Collision[z]) {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "wall":
				tileType = entity.TileWall
			default:
				tileType = entity.TileEmpty
			}

			tiles[z][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
			}
		}
	}

	return &entity.Stage{
		Width:      tileWidth,
		Depth:      tileDepth,
		TileSize:   float64(cfg.Size.TileSize),
		WallHeight: cfg.Size.WallHeight,
		Tiles:      tiles,
		Spawn:      mgl64.Vec3{cfg.PlayerSpawn.X, cfg.PlayerSpawn.Y, cfg.PlayerSpawn.Z},
		SpawnYaw:   cfg.PlayerSpawn.Yaw,
	}, nil
}
