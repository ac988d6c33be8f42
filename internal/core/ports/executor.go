// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/flexgen/internal/core/domain"
)

// Executor runs a configured execution.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the execution's command for project, using the execution's
	// current configuration.
	//
	// It returns an error if the command fails.
	Execute(ctx context.Context, project *domain.Project, execution *domain.Execution) error
}
