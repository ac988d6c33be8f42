package ports

import (
	"context"

	"go.trai.ch/flexgen/internal/core/domain"
)

// ExecutionFactory constructs executions on a pool miss.
//
//go:generate go run go.uber.org/mock/mockgen -source=execution_factory.go -destination=mocks/mock_execution_factory.go -package=mocks
type ExecutionFactory interface {
	// Build constructs a fresh execution for id in the context of project.
	// The returned execution carries no configuration.
	Build(ctx context.Context, id domain.StepIdentity, project *domain.Project) (*domain.Execution, error)
}

// CatalogueCompiler turns the configured plugin catalogue into an ExecutionFactory.
type CatalogueCompiler interface {
	Compile(plugins []domain.PluginDefinition) (ExecutionFactory, error)
}
