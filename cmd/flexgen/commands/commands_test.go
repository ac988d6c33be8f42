package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flexgen/cmd/flexgen/commands"
	"go.trai.ch/flexgen/internal/app"
	"go.trai.ch/flexgen/internal/build"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
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
	cli       *commands.CLI
	stdout    bytes.Buffer
	stderr    bytes.Buffer
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
	}

	f.metrics.EXPECT().ProjectCacheHit().AnyTimes()
	f.metrics.EXPECT().ProjectCacheMiss().AnyTimes()
	f.metrics.EXPECT().ProjectLoadFailed().AnyTimes()
	f.metrics.EXPECT().ExecutionCreated().AnyTimes()
	f.metrics.EXPECT().ExecutionReused().AnyTimes()
	f.metrics.EXPECT().ExecutionReleased().AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, vertex), vertex
		}).AnyTimes()

	a := app.New(f.config, f.projects, f.catalogue, f.stores, f.executor, telemetry, f.metrics, logger)
	f.cli = commands.New(a)
	f.cli.SetOutput(&f.stdout, &f.stderr)
	return f
}

func (f *fixture) workspace() {
	ws := &domain.Workspace{Root: "/w", StatePath: "/w/.flexgen/state.json", Retries: 1}
	f.config.EXPECT().Load("custom.yaml").Return(ws, nil)
	f.catalogue.EXPECT().Compile(gomock.Any()).Return(f.factory, nil)
	f.stores.EXPECT().Open("/w/.flexgen/state.json").Return(f.store, nil)
	f.projects.EXPECT().Resolve("app").Return("/w/app/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/app/project.yaml").Return(&domain.Project{
		Coordinates: domain.Coordinates{GroupID: "org.example", ArtifactID: "app", Version: "1.0.0"},
		Plugins: []domain.Plugin{{
			Coordinates: domain.Coordinates{ArtifactID: "codegen", Version: "1.0.0"},
			Goals:       []string{"generate", "check"},
		}},
	}, nil)
}

func TestGenerate_Success(t *testing.T) {
	f := newFixture(t)
	f.workspace()

	f.factory.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.StepIdentity, _ *domain.Project) (*domain.Execution, error) {
			return &domain.Execution{ID: id.Goal}, nil
		}).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	f.cli.SetArgs([]string{"-c", "custom.yaml", "generate", "app", "--goals", "gen*", "--force", "-j", "2"})
	require.NoError(t, f.cli.Execute(context.Background()))

	assert.Contains(t, f.stdout.String(), "completed org.example:app:1.0.0 codegen@1.0.0:generate")
	assert.Contains(t, f.stdout.String(), "1 projects, 1 completed, 0 up to date, 0 failed")
}

func TestGenerate_Metrics(t *testing.T) {
	f := newFixture(t)
	f.workspace()

	f.store.EXPECT().Get(gomock.Any()).Return(&domain.GenerationRecord{Checksum: "stale"}, nil).AnyTimes()
	f.factory.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.StepIdentity, _ *domain.Project) (*domain.Execution, error) {
			return &domain.Execution{ID: id.Goal}, nil
		}).Times(2)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)
	f.metrics.EXPECT().WriteSummary(&f.stderr).Return(nil)

	f.cli.SetArgs([]string{"--config", "custom.yaml", "generate", "app", "--metrics"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.stdout.String(), "1 projects, 2 completed")
}

func TestGenerate_Failure(t *testing.T) {
	f := newFixture(t)
	f.workspace()

	f.factory.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrPluginNotFound).Times(2)

	f.cli.SetArgs([]string{"-c", "custom.yaml", "generate", "app", "--force"})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, domain.ErrPluginNotFound)
	assert.Contains(t, f.stdout.String(), "0 completed, 0 up to date, 2 failed")
}

func TestInspect(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Resolve("app").Return("/w/app/project.yaml", nil)
	f.projects.EXPECT().Load(gomock.Any(), "/w/app/project.yaml").Return(&domain.Project{
		Coordinates: domain.Coordinates{ArtifactID: "app"},
	}, nil)

	f.cli.SetArgs([]string{"inspect", "app"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.stdout.String(), "artifactId: app")
	assert.Contains(t, f.stdout.String(), "dir: /w/app")
}

func TestInspect_RequiresProject(t *testing.T) {
	f := newFixture(t)

	f.cli.SetArgs([]string{"inspect"})
	require.Error(t, f.cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, "flexgen version "+build.Version+"\n", f.stdout.String())
}
