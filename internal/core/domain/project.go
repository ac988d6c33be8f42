package domain

import "maps"

// Coordinates identify a project or plugin artifact.
type Coordinates struct {
	GroupID    string `yaml:"groupId,omitempty"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version,omitempty"`
}

// String renders the coordinates in groupId:artifactId:version form.
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Plugin is a plugin declaration inside a project.
// Version may be an exact version or a semver constraint; empty selects the newest.
type Plugin struct {
	Coordinates   `yaml:",inline"`
	Goals         []string          `yaml:"goals,omitempty"`
	Configuration map[string]string `yaml:"configuration,omitempty"`
}

// Project is the parsed model of a single project file.
type Project struct {
	Coordinates `yaml:",inline"`

	// Path is the absolute, cleaned path of the project file. It is the cache key.
	Path InternedString `yaml:"path"`
	// Dir is the directory containing the project file.
	Dir string `yaml:"dir"`
	// Parent is the absolute path of the parent project file, empty if none.
	Parent string `yaml:"parent,omitempty"`
	// Modules are absolute paths of module project files.
	Modules []string `yaml:"modules,omitempty"`
	// Plugins are the effective plugin declarations after inheritance.
	Plugins []Plugin `yaml:"plugins,omitempty"`
	// Checksum is the hex xxhash of the project file contents.
	Checksum string `yaml:"checksum"`
}

// Inherit merges the parent's coordinates and plugins into p.
// Group and version are taken from the parent when p leaves them empty.
// Parent plugins not redeclared by p are appended; for redeclared plugins the
// parent's configuration is kept for keys p does not set.
func (p *Project) Inherit(parent *Project) {
	if parent == nil {
		return
	}
	if p.GroupID == "" {
		p.GroupID = parent.GroupID
	}
	if p.Version == "" {
		p.Version = parent.Version
	}

	index := make(map[string]int, len(p.Plugins))
	for i, plugin := range p.Plugins {
		index[plugin.ArtifactID] = i
	}

	for _, inherited := range parent.Plugins {
		i, ok := index[inherited.ArtifactID]
		if !ok {
			p.Plugins = append(p.Plugins, inherited.Clone())
			continue
		}
		own := &p.Plugins[i]
		if own.Version == "" {
			own.Version = inherited.Version
		}
		if own.GroupID == "" {
			own.GroupID = inherited.GroupID
		}
		if len(own.Goals) == 0 {
			own.Goals = append([]string(nil), inherited.Goals...)
		}
		merged := maps.Clone(inherited.Configuration)
		if merged == nil {
			merged = make(map[string]string, len(own.Configuration))
		}
		maps.Copy(merged, own.Configuration)
		own.Configuration = merged
	}
}

// Clone returns a deep copy of the plugin declaration.
func (p Plugin) Clone() Plugin {
	return Plugin{
		Coordinates:   p.Coordinates,
		Goals:         append([]string(nil), p.Goals...),
		Configuration: maps.Clone(p.Configuration),
	}
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	c.Modules = append([]string(nil), p.Modules...)
	if p.Plugins != nil {
		c.Plugins = make([]Plugin, len(p.Plugins))
		for i, plugin := range p.Plugins {
			c.Plugins[i] = plugin.Clone()
		}
	}
	return &c
}
