package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flexgen/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/plugin"             //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/project"            //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/state"              //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/flexgen/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			project.NodeID,
			plugin.NodeID,
			state.NodeID,
			shell.NodeID,
			progrock.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	projects, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}

	catalogue, err := graft.Dep[ports.CatalogueCompiler](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.RecordStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, projects, catalogue, stores, executor, telemetry, recorder, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
