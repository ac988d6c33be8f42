package domain

import (
	"strings"
	"time"
)

// GenerationRecord is the persisted outcome of the last successful run of a step.
type GenerationRecord struct {
	Key         string    `json:"key,omitempty"`
	Checksum    string    `json:"checksum,omitempty"`
	ExecutionID string    `json:"execution_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// StepKey returns the record store key for a goal of a plugin in a project.
// Projects are told apart by the path of their project file, so modules that
// share coordinates keep separate records.
func StepKey(project *Project, id StepIdentity) string {
	var b strings.Builder
	writeField(&b, project.Path.String())
	b.WriteByte('|')
	b.WriteString(id.PoolKey())
	return b.String()
}
