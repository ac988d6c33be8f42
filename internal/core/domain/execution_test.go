package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/flexgen/internal/core/domain"
)

func TestStepIdentity_PoolKey(t *testing.T) {
	id := domain.StepIdentity{ArtifactID: "codegen", Version: "1.2.0", Goal: "generate"}
	assert.Equal(t, "7:codegen|5:1.2.0|8:generate", id.PoolKey())
	assert.Equal(t, id.PoolKey(), id.PoolKey())
	assert.Equal(t, "codegen@1.2.0:generate", id.String())
}

func TestStepIdentity_PoolKey_DistinctIdentitiesNeverCollide(t *testing.T) {
	// Each pair would share a key under plain "artifact-version-goal" joining.
	pairs := [][2]domain.StepIdentity{
		{
			{ArtifactID: "a-b", Version: "1", Goal: "c"},
			{ArtifactID: "a", Version: "b-1", Goal: "c"},
		},
		{
			{ArtifactID: "a", Version: "1-c", Goal: "d"},
			{ArtifactID: "a", Version: "1", Goal: "c-d"},
		},
		{
			{ArtifactID: "x|1:y", Version: "", Goal: "z"},
			{ArtifactID: "x", Version: "y", Goal: "z"},
		},
		{
			{ArtifactID: "", Version: "", Goal: "abc"},
			{ArtifactID: "abc", Version: "", Goal: ""},
		},
	}

	for _, pair := range pairs {
		assert.NotEqual(t, pair[0].PoolKey(), pair[1].PoolKey(), "%s vs %s", pair[0], pair[1])
	}

	seen := map[string]domain.StepIdentity{}
	fields := []string{"", "a", "a-", "-a", "1", "|", "1:", "a|1:b"}
	for _, artifact := range fields {
		for _, version := range fields {
			for _, goal := range fields {
				id := domain.StepIdentity{ArtifactID: artifact, Version: version, Goal: goal}
				key := id.PoolKey()
				if other, ok := seen[key]; ok {
					t.Fatalf("%v and %v share pool key %q", other, id, key)
				}
				seen[key] = id
			}
		}
	}
}

func TestNewStepIdentity(t *testing.T) {
	plugin := domain.Plugin{
		Coordinates: domain.Coordinates{GroupID: "org.example", ArtifactID: "codegen", Version: "^1.0"},
		Goals:       []string{"generate"},
	}
	assert.Equal(t,
		domain.StepIdentity{ArtifactID: "codegen", Version: "^1.0", Goal: "generate"},
		domain.NewStepIdentity(plugin, "generate"),
	)
}

func TestExecution_ConfigureAndClear(t *testing.T) {
	exec := &domain.Execution{
		ID:       "e1",
		Defaults: map[string]string{"output": "gen", "verbose": "false"},
	}

	exec.Configure(map[string]string{"verbose": "true", "package": "api"})
	assert.Equal(t, map[string]string{"output": "gen", "verbose": "true", "package": "api"}, exec.Configuration)
	assert.Equal(t, map[string]string{"output": "gen", "verbose": "false"}, exec.Defaults, "defaults are not mutated")

	exec.ClearConfiguration()
	assert.Nil(t, exec.Configuration)
	assert.Equal(t, "e1", exec.ID)

	exec.Configure(nil)
	assert.Equal(t, map[string]string{"output": "gen", "verbose": "false"}, exec.Configuration)
}

func TestStepKey(t *testing.T) {
	project := &domain.Project{
		Coordinates: domain.Coordinates{GroupID: "org.example", ArtifactID: "app"},
		Path:        domain.NewInternedString("/w/app/project.yaml"),
	}
	id := domain.StepIdentity{ArtifactID: "codegen", Version: "1.0.0", Goal: "generate"}
	assert.Equal(t, "19:/w/app/project.yaml|7:codegen|5:1.0.0|8:generate", domain.StepKey(project, id))
}

func TestStepKey_SameCoordinatesDifferentPaths(t *testing.T) {
	coords := domain.Coordinates{GroupID: "org.example", ArtifactID: "app", Version: "1.0.0"}
	a := &domain.Project{Coordinates: coords, Path: domain.NewInternedString("/w/a/project.yaml")}
	b := &domain.Project{Coordinates: coords, Path: domain.NewInternedString("/w/b/project.yaml")}
	id := domain.StepIdentity{ArtifactID: "codegen", Version: "1.0.0", Goal: "generate"}

	assert.NotEqual(t, domain.StepKey(a, id), domain.StepKey(b, id))
}
