package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	PlayerSpawn SpawnConfig                  `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

// StageSizeConfig describes the stage footprint in world units
type StageSizeConfig struct {
	Width      int     `json:"width"` // X extent
	Depth      int     `json:"depth"` // Z extent
	TileSize   int     `json:"tileSize"`
	WallHeight float64 `json:"wallHeight"`
}

type SpawnConfig struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

// LayersConfig holds the collision rows, one string per Z row
type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type  string `json:"type"`
	Solid bool   `json:"solid"`
}
