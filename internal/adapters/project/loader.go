// Package project reads project.yaml files.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project file looked up in a directory.
const DefaultFilename = "project.yaml"

// Loader implements ports.ProjectLoader for YAML project files.
type Loader struct{}

// NewLoader creates a new project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Resolve returns the absolute path of the project file named by path.
// A directory resolves to the DefaultFilename inside it.
func (l *Loader) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve project path"), "path", path)
	}
	return resolveFile(abs), nil
}

func resolveFile(abs string) string {
	if info, err := os.Stat(abs); err == nil {
		if info.IsDir() {
			return filepath.Join(abs, DefaultFilename)
		}
		return abs
	}
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		return abs
	default:
		return filepath.Join(abs, DefaultFilename)
	}
}

// Load parses the project file at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project tree
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "cannot load project"), "path", path)
		}
		return nil, zerr.With(errors.Join(domain.ErrProjectReadFailed, err), "path", path)
	}

	var file ProjectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrProjectParseFailed, err), "path", path)
	}

	p, err := toProject(path, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	p.Checksum = fmt.Sprintf("%016x", xxhash.Sum64(data))
	return p, nil
}

func toProject(path string, file *ProjectFile) (*domain.Project, error) {
	if file.ArtifactID == "" {
		return nil, zerr.Wrap(domain.ErrInvalidProject, "artifactId is required")
	}

	dir := filepath.Dir(path)
	p := &domain.Project{
		Coordinates: domain.Coordinates{
			GroupID:    file.GroupID,
			ArtifactID: file.ArtifactID,
			Version:    file.Version,
		},
		Path: domain.NewInternedString(path),
		Dir:  dir,
	}

	if file.Parent != "" {
		p.Parent = resolveFile(join(dir, file.Parent))
	}

	for _, module := range file.Modules {
		if module == "" {
			return nil, zerr.Wrap(domain.ErrInvalidProject, "empty module path")
		}
		p.Modules = append(p.Modules, resolveFile(join(dir, module)))
	}

	seen := make(map[string]bool, len(file.Plugins))
	for _, dto := range file.Plugins {
		if dto.ArtifactID == "" {
			return nil, zerr.Wrap(domain.ErrInvalidProject, "plugin artifactId is required")
		}
		if seen[dto.ArtifactID] {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidProject, "plugin declared twice"), "plugin", dto.ArtifactID)
		}
		seen[dto.ArtifactID] = true

		p.Plugins = append(p.Plugins, domain.Plugin{
			Coordinates: domain.Coordinates{
				GroupID:    dto.GroupID,
				ArtifactID: dto.ArtifactID,
				Version:    dto.Version,
			},
			Goals:         dto.Goals,
			Configuration: dto.Configuration,
		})
	}

	return p, nil
}

func join(dir, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(dir, rel)
}
