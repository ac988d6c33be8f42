package domain

// Workspace is the validated flexgen.yaml configuration.
type Workspace struct {
	// Root is the directory containing the configuration file.
	Root string
	// Parallelism bounds concurrent project reads and steps. Zero means NumCPU.
	Parallelism int
	// StatePath is the record store file, resolved against Root.
	StatePath string
	// Retries is the number of attempts for transient project read failures.
	Retries int
	// MaxIdle bounds idle executions per pool key. Zero means unbounded.
	MaxIdle int
	// Plugins is the plugin catalogue.
	Plugins []PluginDefinition
}

// PluginDefinition is a catalogue entry describing a plugin and its goals.
type PluginDefinition struct {
	GroupID    string
	ArtifactID string
	Versions   []string
	Goals      map[string]GoalDefinition
}

// GoalDefinition describes how a goal is executed.
type GoalDefinition struct {
	Command  []string
	Defaults map[string]string
}
