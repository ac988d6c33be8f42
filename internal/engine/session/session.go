// Package session ties the project cache and the execution pool together behind a
// single object shared by every concurrent generation task.
package session

import (
	"cmp"
	"context"
	"errors"
	"path/filepath"
	"slices"

	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/engine/flight"
	"go.trai.ch/flexgen/internal/engine/recycle"
	"go.trai.ch/zerr"
)

// Session caches parsed projects and recycles executions.
// It is safe for concurrent use.
type Session struct {
	loader  ports.ProjectLoader
	factory ports.ExecutionFactory
	metrics ports.Metrics
	logger  ports.Logger

	// raw holds projects exactly as parsed. Loads into raw never wait on other loads.
	raw *flight.Cache[domain.InternedString, *domain.Project]
	// projects holds projects with their parent chain merged in.
	projects *flight.Cache[domain.InternedString, *domain.Project]
	pool     *recycle.Pool[*domain.Execution]
}

type config struct {
	maxIdle int
}

// Option configures a Session.
type Option func(*config)

// WithMaxIdle bounds the number of idle executions kept per step identity.
func WithMaxIdle(n int) Option {
	return func(c *config) {
		c.maxIdle = n
	}
}

// New creates a Session.
func New(
	loader ports.ProjectLoader,
	factory ports.ExecutionFactory,
	metrics ports.Metrics,
	logger ports.Logger,
	opts ...Option,
) *Session {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		loader:   loader,
		factory:  factory,
		metrics:  metrics,
		logger:   logger,
		raw:      flight.New[domain.InternedString, *domain.Project](),
		projects: flight.New[domain.InternedString, *domain.Project](),
		pool: recycle.New(
			(*domain.Execution).ClearConfiguration,
			recycle.WithMaxIdle[*domain.Execution](cfg.maxIdle),
		),
	}
}

// ReadProject returns the effective project for the project file at path.
//
// Every distinct path is parsed at most once per session, no matter how many
// goroutines ask for it. The returned project is shared and must not be modified.
func (s *Session) ReadProject(ctx context.Context, path string) (*domain.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectReadFailed, err.Error()), "path", path)
	}
	key := domain.NewInternedString(abs)

	loaded := false
	project, err := s.projects.Get(ctx, key, func(ctx context.Context) (*domain.Project, error) {
		loaded = true
		s.metrics.ProjectCacheMiss()

		p, err := s.resolve(ctx, key)
		if err != nil {
			s.metrics.ProjectLoadFailed()
			s.logger.Warn("failed to read project " + key.String())
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if !loaded {
		s.metrics.ProjectCacheHit()
	}
	return project, nil
}

// resolve walks the parent chain of key and merges it from the top-most ancestor down.
func (s *Session) resolve(ctx context.Context, key domain.InternedString) (*domain.Project, error) {
	var chain []*domain.Project
	seen := make(map[domain.InternedString]struct{})

	for next := key; ; {
		if _, ok := seen[next]; ok {
			err := zerr.Wrap(domain.ErrCycleDetected, "project is its own ancestor")
			return nil, zerr.With(zerr.With(err, "project", key.String()), "ancestor", next.String())
		}
		seen[next] = struct{}{}

		path := next
		raw, err := s.raw.Get(ctx, path, func(ctx context.Context) (*domain.Project, error) {
			return s.parse(ctx, path)
		})
		if err != nil {
			return nil, err
		}
		chain = append(chain, raw)

		if raw.Parent == "" {
			break
		}
		next = domain.NewInternedString(filepath.Clean(raw.Parent))
	}

	effective := chain[len(chain)-1].Clone()
	for i := len(chain) - 2; i >= 0; i-- {
		child := chain[i].Clone()
		child.Inherit(effective)
		effective = child
	}
	return effective, nil
}

func (s *Session) parse(ctx context.Context, path domain.InternedString) (*domain.Project, error) {
	project, err := s.loader.Load(ctx, path.String())
	if err != nil {
		return nil, err
	}
	project.Path = path
	if project.Dir == "" {
		project.Dir = filepath.Dir(path.String())
	}
	return project, nil
}

// Projects returns every project read successfully so far, ordered by path.
func (s *Session) Projects() []*domain.Project {
	var out []*domain.Project
	s.projects.Range(func(_ domain.InternedString, p *domain.Project) bool {
		out = append(out, p)
		return true
	})
	slices.SortFunc(out, func(a, b *domain.Project) int {
		return cmp.Compare(a.Path.String(), b.Path.String())
	})
	return out
}

// AcquireExecution returns an idle execution for id or builds a new one.
// The execution belongs to the caller until it is passed to ReleaseExecution.
func (s *Session) AcquireExecution(
	ctx context.Context,
	id domain.StepIdentity,
	project *domain.Project,
) (*domain.Execution, error) {
	if exec, ok := s.pool.Acquire(id.PoolKey()); ok {
		s.metrics.ExecutionReused()
		return exec, nil
	}

	exec, err := s.factory.Build(ctx, id, project)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConstructionFailed, err), "identity", id.String())
	}
	exec.Identity = id
	s.metrics.ExecutionCreated()
	return exec, nil
}

// ReleaseExecution clears the execution's configuration and makes it available to
// the next AcquireExecution for the same identity.
func (s *Session) ReleaseExecution(id domain.StepIdentity, exec *domain.Execution) error {
	if exec.Identity != id {
		err := zerr.With(zerr.Wrap(domain.ErrIdentityMismatch, "cannot release execution"), "identity", id.String())
		return zerr.With(err, "execution_identity", exec.Identity.String())
	}
	if err := s.pool.Release(id.PoolKey(), exec); err != nil {
		return zerr.With(err, "execution", exec.ID)
	}
	s.metrics.ExecutionReleased()
	return nil
}

// IdleExecutions returns the number of idle executions for id.
func (s *Session) IdleExecutions(id domain.StepIdentity) int {
	return s.pool.Idle(id.PoolKey())
}

// Close drops every idle execution.
func (s *Session) Close() {
	s.pool.Close()
}
