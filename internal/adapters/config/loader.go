// Package config provides the workspace configuration loader for flexgen.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the configuration file looked up in a directory.
	DefaultFilename = "flexgen.yaml"
	// DefaultStatePath is the record store location relative to the workspace root.
	DefaultStatePath = ".flexgen/state.json"
	// DefaultRetries is the number of project read attempts when none is configured.
	DefaultRetries = 3

	supportedVersion = "1"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration at path. If path is a directory, DefaultFilename
// inside it is read.
func (l *Loader) Load(path string) (*domain.Workspace, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "cannot load workspace"), "path", path)
		}
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var file Flexfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	if file.Version != "" && file.Version != supportedVersion {
		l.Logger.Warn("unsupported configuration version " + file.Version + ", reading as version " + supportedVersion)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	ws, err := toWorkspace(root, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return ws, nil
}

func toWorkspace(root string, file *Flexfile) (*domain.Workspace, error) {
	if file.Parallelism < 0 {
		return nil, invalid("parallelism must not be negative", "parallelism", file.Parallelism)
	}
	if file.Retries < 0 {
		return nil, invalid("retries must not be negative", "retries", file.Retries)
	}
	if file.Pool.MaxIdle < 0 {
		return nil, invalid("pool.maxIdle must not be negative", "max_idle", file.Pool.MaxIdle)
	}

	state := file.State
	if state == "" {
		state = DefaultStatePath
	}
	if !filepath.IsAbs(state) {
		state = filepath.Join(root, state)
	}

	retries := file.Retries
	if retries == 0 {
		retries = DefaultRetries
	}

	plugins, err := toPlugins(file.Plugins)
	if err != nil {
		return nil, err
	}

	return &domain.Workspace{
		Root:        root,
		Parallelism: file.Parallelism,
		StatePath:   filepath.Clean(state),
		Retries:     retries,
		MaxIdle:     file.Pool.MaxIdle,
		Plugins:     plugins,
	}, nil
}

func toPlugins(dtos []PluginDTO) ([]domain.PluginDefinition, error) {
	seen := make(map[string]bool, len(dtos))
	plugins := make([]domain.PluginDefinition, 0, len(dtos))

	for _, dto := range dtos {
		if dto.ArtifactID == "" {
			return nil, invalid("plugin artifactId is required", "group_id", dto.GroupID)
		}
		if seen[dto.ArtifactID] {
			return nil, invalid("duplicate plugin", "artifact_id", dto.ArtifactID)
		}
		seen[dto.ArtifactID] = true

		if len(dto.Versions) == 0 {
			return nil, invalid("plugin declares no versions", "artifact_id", dto.ArtifactID)
		}
		for _, v := range dto.Versions {
			if _, err := semver.NewVersion(v); err != nil {
				return nil, zerr.With(invalid("invalid plugin version "+v, "artifact_id", dto.ArtifactID), "cause", err.Error())
			}
		}

		if len(dto.Goals) == 0 {
			return nil, invalid("plugin declares no goals", "artifact_id", dto.ArtifactID)
		}
		goals := make(map[string]domain.GoalDefinition, len(dto.Goals))
		for name, goal := range dto.Goals {
			if len(goal.Cmd) == 0 {
				return nil, zerr.With(invalid("goal has no command", "artifact_id", dto.ArtifactID), "goal", name)
			}
			goals[name] = domain.GoalDefinition{
				Command:  goal.Cmd,
				Defaults: goal.Defaults,
			}
		}

		plugins = append(plugins, domain.PluginDefinition{
			GroupID:    dto.GroupID,
			ArtifactID: dto.ArtifactID,
			Versions:   dto.Versions,
			Goals:      goals,
		})
	}
	return plugins, nil
}

func invalid(msg, key string, value any) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, msg), key, value)
}
