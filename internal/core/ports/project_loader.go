package ports

import (
	"context"

	"go.trai.ch/flexgen/internal/core/domain"
)

// ProjectLoader parses a single project file.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load parses the project file at path, which must be absolute and clean.
	//
	// The returned project has Parent and Modules resolved to absolute project file
	// paths and Plugins exactly as declared; inheritance is applied by the caller.
	Load(ctx context.Context, path string) (*domain.Project, error)

	// Resolve returns the absolute project file path for path, which may name a
	// project file or a directory containing one.
	Resolve(path string) (string, error)
}
