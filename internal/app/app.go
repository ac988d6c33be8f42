// Package app implements the application layer for flexgen.
package app

import (
	"context"
	"io"

	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/engine/generator"
	"go.trai.ch/flexgen/internal/engine/session"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	projects     ports.ProjectLoader
	catalogue    ports.CatalogueCompiler
	stores       ports.RecordStoreFactory
	executor     ports.Executor
	telemetry    ports.Telemetry
	metrics      ports.Metrics
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	projects ports.ProjectLoader,
	catalogue ports.CatalogueCompiler,
	stores ports.RecordStoreFactory,
	executor ports.Executor,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		projects:     projects,
		catalogue:    catalogue,
		stores:       stores,
		executor:     executor,
		telemetry:    telemetry,
		metrics:      metrics,
		logger:       log,
	}
}

// GenerateOptions configures the Generate method.
type GenerateOptions struct {
	// Goals is a glob matched against goal names; empty selects every goal.
	Goals string
	// Force runs steps even when their record is up to date.
	Force bool
	// Parallelism overrides the workspace parallelism when positive.
	Parallelism int
	// Metrics receives the counter summary after the run when set.
	Metrics io.Writer
}

// Generate runs the matching goals of every project reachable from roots.
// Without roots the project in the workspace root is used.
func (a *App) Generate(
	ctx context.Context,
	configPath string,
	roots []string,
	opts GenerateOptions,
) (*generator.Report, error) {
	ws, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	factory, err := a.catalogue.Compile(ws.Plugins)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compile plugin catalogue")
	}

	store, err := a.stores.Open(ws.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open record store")
	}

	if len(roots) == 0 {
		roots = []string{ws.Root}
	}
	paths := make([]string, 0, len(roots))
	for _, root := range roots {
		path, err := a.projects.Resolve(root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	sess := session.New(a.projects, factory, a.metrics, a.logger, session.WithMaxIdle(ws.MaxIdle))
	defer sess.Close()

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = ws.Parallelism
	}

	gen := generator.New(sess, a.executor, store, a.telemetry, a.logger)
	report, genErr := gen.Generate(ctx, paths, generator.Options{
		Goals:       opts.Goals,
		Force:       opts.Force,
		Parallelism: parallelism,
		Retries:     ws.Retries,
	})

	if opts.Metrics != nil {
		if err := a.metrics.WriteSummary(opts.Metrics); err != nil {
			a.logger.Error(err)
		}
	}
	return report, genErr
}

// Inspect writes the effective model of the project at path as YAML.
func (a *App) Inspect(ctx context.Context, path string, w io.Writer) error {
	resolved, err := a.projects.Resolve(path)
	if err != nil {
		return err
	}

	// Inspection only reads projects, so the session never builds executions.
	sess := session.New(a.projects, nil, a.metrics, a.logger)
	defer sess.Close()

	project, err := sess.ReadProject(ctx, resolved)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(project); err != nil {
		return zerr.Wrap(err, "failed to encode project")
	}
	return enc.Close()
}

