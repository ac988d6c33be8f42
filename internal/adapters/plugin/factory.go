// Package plugin builds executions from the configured plugin catalogue.
package plugin

import (
	"context"
	"maps"
	"slices"
	"sort"

	"github.com/Masterminds/semver"
	"github.com/google/uuid"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler implements ports.CatalogueCompiler.
type Compiler struct{}

// NewCompiler creates a Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile parses the catalogue's versions and returns a Factory over it.
func (c *Compiler) Compile(plugins []domain.PluginDefinition) (ports.ExecutionFactory, error) {
	f, err := NewFactory(plugins)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type entry struct {
	def      domain.PluginDefinition
	versions []*semver.Version // newest first
}

// Factory implements ports.ExecutionFactory.
type Factory struct {
	plugins map[string]entry
	newID   func() string
}

// NewFactory creates a Factory for the given catalogue.
func NewFactory(plugins []domain.PluginDefinition) (*Factory, error) {
	f := &Factory{
		plugins: make(map[string]entry, len(plugins)),
		newID:   uuid.NewString,
	}

	for _, def := range plugins {
		versions := make([]*semver.Version, 0, len(def.Versions))
		for _, raw := range def.Versions {
			v, err := semver.NewVersion(raw)
			if err != nil {
				err = zerr.With(zerr.Wrap(err, "invalid catalogue version"), "plugin", def.ArtifactID)
				return nil, zerr.With(err, "version", raw)
			}
			versions = append(versions, v)
		}
		sort.Sort(sort.Reverse(semver.Collection(versions)))
		f.plugins[def.ArtifactID] = entry{def: def, versions: versions}
	}
	return f, nil
}

// Build constructs a new execution for id. The plugin version declared by the
// project is matched against the catalogue; an empty version selects the newest.
func (f *Factory) Build(_ context.Context, id domain.StepIdentity, project *domain.Project) (*domain.Execution, error) {
	e, ok := f.plugins[id.ArtifactID]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrPluginNotFound, "cannot build execution"), "plugin", id.ArtifactID)
	}

	if declared := declaredGroup(project, id.ArtifactID); declared != "" && e.def.GroupID != "" && declared != e.def.GroupID {
		err := zerr.With(zerr.Wrap(domain.ErrPluginNotFound, "plugin group does not match catalogue"), "plugin", id.ArtifactID)
		return nil, zerr.With(err, "group", declared)
	}

	version, err := e.resolve(id.Version)
	if err != nil {
		return nil, zerr.With(err, "plugin", id.ArtifactID)
	}

	goal, ok := e.def.Goals[id.Goal]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrGoalNotFound, "cannot build execution"), "plugin", id.ArtifactID)
		return nil, zerr.With(err, "goal", id.Goal)
	}

	return &domain.Execution{
		ID:       f.newID(),
		Identity: id,
		Plugin: domain.Coordinates{
			GroupID:    e.def.GroupID,
			ArtifactID: e.def.ArtifactID,
			Version:    version.Original(),
		},
		Command:  slices.Clone(goal.Command),
		Defaults: maps.Clone(goal.Defaults),
	}, nil
}

func (e entry) resolve(requested string) (*semver.Version, error) {
	if len(e.versions) == 0 {
		return nil, zerr.Wrap(domain.ErrPluginVersionNotFound, "catalogue lists no versions")
	}
	if requested == "" {
		return e.versions[0], nil
	}

	constraint, err := semver.NewConstraint(requested)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPluginVersionNotFound, err.Error()), "version", requested)
	}
	for _, v := range e.versions {
		if constraint.Check(v) {
			return v, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrPluginVersionNotFound, "no catalogue version matches"), "version", requested)
}

func declaredGroup(project *domain.Project, artifactID string) string {
	if project == nil {
		return ""
	}
	for _, p := range project.Plugins {
		if p.ArtifactID == artifactID {
			return p.GroupID
		}
	}
	return ""
}
