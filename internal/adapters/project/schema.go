package project

// ProjectFile represents the structure of a project.yaml file.
type ProjectFile struct {
	GroupID    string      `yaml:"groupId"`
	ArtifactID string      `yaml:"artifactId"`
	Version    string      `yaml:"version"`
	Parent     string      `yaml:"parent"`
	Modules    []string    `yaml:"modules"`
	Plugins    []PluginDTO `yaml:"plugins"`
}

// PluginDTO represents a plugin declaration in a project file.
type PluginDTO struct {
	GroupID       string            `yaml:"groupId"`
	ArtifactID    string            `yaml:"artifactId"`
	Version       string            `yaml:"version"`
	Goals         []string          `yaml:"goals"`
	Configuration map[string]string `yaml:"configuration"`
}
