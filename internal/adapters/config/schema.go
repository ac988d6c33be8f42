package config

// Flexfile represents the structure of the flexgen.yaml configuration file.
type Flexfile struct {
	Version     string      `yaml:"version"`
	Parallelism int         `yaml:"parallelism"`
	State       string      `yaml:"state"`
	Retries     int         `yaml:"retries"`
	Pool        PoolDTO     `yaml:"pool"`
	Plugins     []PluginDTO `yaml:"plugins"`
}

// PoolDTO configures the execution pool.
type PoolDTO struct {
	MaxIdle int `yaml:"maxIdle"`
}

// PluginDTO represents a plugin catalogue entry.
type PluginDTO struct {
	GroupID    string             `yaml:"groupId"`
	ArtifactID string             `yaml:"artifactId"`
	Versions   []string           `yaml:"versions"`
	Goals      map[string]GoalDTO `yaml:"goals"`
}

// GoalDTO represents a goal definition.
type GoalDTO struct {
	Cmd      []string          `yaml:"cmd"`
	Defaults map[string]string `yaml:"defaults"`
}
