package domain

import (
	"maps"
	"strconv"
	"strings"
)

// StepIdentity names a reusable execution: which plugin, at which declared version,
// running which goal.
type StepIdentity struct {
	ArtifactID string
	Version    string
	Goal       string
}

// NewStepIdentity builds the identity for running goal of plugin.
func NewStepIdentity(plugin Plugin, goal string) StepIdentity {
	return StepIdentity{
		ArtifactID: plugin.ArtifactID,
		Version:    plugin.Version,
		Goal:       goal,
	}
}

// PoolKey returns the deterministic key used to bucket idle executions.
// Every field is length-prefixed, so two distinct identities never share a key
// even when their fields contain the separator.
func (id StepIdentity) PoolKey() string {
	var b strings.Builder
	b.Grow(len(id.ArtifactID) + len(id.Version) + len(id.Goal) + 16)
	writeField(&b, id.ArtifactID)
	b.WriteByte('|')
	writeField(&b, id.Version)
	b.WriteByte('|')
	writeField(&b, id.Goal)
	return b.String()
}

// String renders the identity for logs.
func (id StepIdentity) String() string {
	return id.ArtifactID + "@" + id.Version + ":" + id.Goal
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// Execution is a constructed, reusable goal execution.
// Everything except Configuration is fixed at construction time.
type Execution struct {
	// ID is assigned on construction and survives reuse.
	ID string
	// Identity is the identity the execution was built for.
	Identity StepIdentity
	// Plugin holds the resolved plugin coordinates.
	Plugin Coordinates
	// Command is the goal's command line.
	Command []string
	// Defaults are the goal's default parameters.
	Defaults map[string]string
	// Configuration is per-use state, set before running and cleared on release.
	Configuration map[string]string
}

// Configure sets the per-use configuration, layered over the goal defaults.
func (e *Execution) Configure(configuration map[string]string) {
	merged := make(map[string]string, len(e.Defaults)+len(configuration))
	maps.Copy(merged, e.Defaults)
	maps.Copy(merged, configuration)
	e.Configuration = merged
}

// ClearConfiguration drops all per-use state.
func (e *Execution) ClearConfiguration() {
	e.Configuration = nil
}
