package config

// InputConfig is the root config for input.yaml
type InputConfig struct {
	Bindings BindingsConfig `yaml:"bindings"`
}

// BindingsConfig lists key names per action.
// Names follow ebiten's key names (e.g. "W", "ArrowUp", "Space").
type BindingsConfig struct {
	Forward   []string `yaml:"forward"`
	Back      []string `yaml:"back"`
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	TurnLeft  []string `yaml:"turnLeft"`
	TurnRight []string `yaml:"turnRight"`
	LookUp    []string `yaml:"lookUp"`
	LookDown  []string `yaml:"lookDown"`
	Jump      []string `yaml:"jump"`
}
