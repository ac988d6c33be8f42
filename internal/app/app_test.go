package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flexgen/internal/app"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	config    *mocks.MockConfigLoader
	projects  *mocks.MockProjectLoader
	catalogue *mocks.MockCatalogueCompiler
	stores    *mocks.MockRecordStoreFactory
	store     *mocks.MockRecordStore
	factory   *mocks.MockExecutionFactory
	executor  *mocks.MockExecutor
	metrics   *mocks.MockMetrics
	logger    *mocks.MockLogger
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		config:    mocks.NewMockConfigLoader(ctrl),
		projects:  mocks.NewMockProjectLoader(ctrl),
		catalogue: mocks.NewMockCatalogueCompiler(ctrl),
		stores:    mocks.NewMockRecordStoreFactory(ctrl),
		store:     mocks.NewMockRecordStore(ctrl),
		factory:   mocks.NewMockExecutionFactory(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		metrics:   mocks.NewMockMetrics(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	f.metrics.EXPECT().ProjectCacheHit().AnyTimes()
	f.metrics.EXPECT().ProjectCacheMiss().AnyTimes()
	f.metrics.EXPECT().ProjectLoadFailed().AnyTimes()
	f.metrics.EXPECT().ExecutionCreated().AnyTimes()
	f.metrics.EXPECT().ExecutionReused().AnyTimes()
	f.metrics.EXPECT().ExecutionReleased().AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, vertex), vertex
		}).AnyTimes()

	f.app = app.New(f.config, f.projects, f.catalogue, f.stores, f.executor, telemetry, f.metrics, f.logger)
	return f
}

var workspace = &domain.Workspace{
	Root:      "/w",
	StatePath: "/w/.flexgen/state.json",
	Retries:   1,
	MaxIdle:   2,
	Plugins: []domain.PluginDefinition{{
		ArtifactID: "codegen",
		Versions:   []string{"1.0.0"},
		Goals:      map[string]domain.GoalDefinition{"generate": {Command: []string{"true"}}},
	}},
}

var appProject = &domain.Project{
	Coordinates: domain.Coordinates{GroupID: "org.example", ArtifactID: "app", Version: "1.0.0"},
	Plugins: []domain.Plugin{{
		Coordinates: domain.Coordinates{ArtifactID: "codegen"},
		Goals:       []string{"generate"},
	}},
	Checksum: "c",
}

func TestApp_Generate(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Load("flexgen.yaml").Return(workspace, nil)
	f.catalogue.EXPECT().Compile(workspace.Plugins).Return(f.factory, nil)
	f.stores.EXPECT().Open("/w/.flexgen/state.json").Return(f.store, nil)
	f.projects.EXPECT().Resolve("app").Return("/w/app/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/app/project.yaml").Return(appProject, nil)
	f.factory.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Execution{ID: "e1"}, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.metrics.EXPECT().WriteSummary(gomock.Any()).Return(nil)

	var summary bytes.Buffer
	report, err := f.app.Generate(t.Context(), "flexgen.yaml", []string{"app"}, app.GenerateOptions{Metrics: &summary})
	require.NoError(t, err)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, domain.StepStatusCompleted, report.Steps[0].Status)
	assert.Equal(t, "e1", report.Steps[0].ExecutionID)
}

func TestApp_Generate_DefaultsToWorkspaceRoot(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Load("flexgen.yaml").Return(workspace, nil)
	f.catalogue.EXPECT().Compile(gomock.Any()).Return(f.factory, nil)
	f.stores.EXPECT().Open(gomock.Any()).Return(f.store, nil)
	f.projects.EXPECT().Resolve("/w").Return("/w/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/project.yaml").Return(&domain.Project{
		Coordinates: domain.Coordinates{ArtifactID: "root"},
	}, nil)

	report, err := f.app.Generate(t.Context(), "flexgen.yaml", nil, app.GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "root", report.Projects[0].ArtifactID)
}

func TestApp_Generate_ConfigLoaderError(t *testing.T) {
	f := newFixture(t)
	f.config.EXPECT().Load("flexgen.yaml").Return(nil, domain.ErrConfigNotFound)

	_, err := f.app.Generate(t.Context(), "flexgen.yaml", nil, app.GenerateOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_Generate_CatalogueError(t *testing.T) {
	f := newFixture(t)
	f.config.EXPECT().Load("flexgen.yaml").Return(workspace, nil)
	f.catalogue.EXPECT().Compile(gomock.Any()).Return(nil, domain.ErrInvalidConfig)

	_, err := f.app.Generate(t.Context(), "flexgen.yaml", nil, app.GenerateOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_Generate_StepFailure(t *testing.T) {
	f := newFixture(t)
	stepErr := errors.New("exit status 1")

	f.config.EXPECT().Load("flexgen.yaml").Return(workspace, nil)
	f.catalogue.EXPECT().Compile(gomock.Any()).Return(f.factory, nil)
	f.stores.EXPECT().Open(gomock.Any()).Return(f.store, nil)
	f.projects.EXPECT().Resolve("app").Return("/w/app/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/app/project.yaml").Return(appProject, nil)
	f.factory.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Execution{ID: "e1"}, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(stepErr)

	report, err := f.app.Generate(t.Context(), "flexgen.yaml", []string{"app"}, app.GenerateOptions{Force: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, stepErr)
	assert.Equal(t, 1, report.Count(domain.StepStatusFailed))
}

func TestApp_Inspect(t *testing.T) {
	f := newFixture(t)

	f.projects.EXPECT().Resolve("app").Return("/w/app/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/app/project.yaml").Return(&domain.Project{
		Coordinates: domain.Coordinates{ArtifactID: "app"},
		Parent:      "/w/project.yaml",
	}, nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/project.yaml").Return(&domain.Project{
		Coordinates: domain.Coordinates{GroupID: "org.example", ArtifactID: "parent", Version: "2.0.0"},
		Plugins:     []domain.Plugin{{Coordinates: domain.Coordinates{ArtifactID: "codegen"}, Goals: []string{"generate"}}},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Inspect(t.Context(), "app", &out))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "org.example", got["groupId"])
	assert.Equal(t, "app", got["artifactId"])
	assert.Equal(t, "2.0.0", got["version"])
	assert.Equal(t, "/w/app/project.yaml", got["path"])
	assert.Len(t, got["plugins"], 1)
}
