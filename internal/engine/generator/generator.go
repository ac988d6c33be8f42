// Package generator runs plugin goals over a tree of projects.
package generator

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cespare/xxhash/v2"
	"github.com/gobwas/glob"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultGoals selects every goal.
	DefaultGoals = "*"

	retryInitialInterval = 100 * time.Millisecond
	retryMaxInterval     = 2 * time.Second
)

// Options controls a generation run.
type Options struct {
	// Goals is a glob matched against goal names.
	Goals string
	// Force runs steps even when their record is up to date.
	Force bool
	// Parallelism bounds concurrent project reads and steps. Zero means NumCPU.
	Parallelism int
	// Retries is the number of attempts for a project read that failed transiently.
	Retries int
}

// StepResult is the outcome of a single goal run for a project.
type StepResult struct {
	Project     *domain.Project
	Identity    domain.StepIdentity
	Status      domain.StepStatus
	ExecutionID string
	Err         error
}

// Report summarises a generation run.
type Report struct {
	Projects []*domain.Project
	Steps    []StepResult
}

// Count returns the number of steps with the given status.
func (r *Report) Count(status domain.StepStatus) int {
	n := 0
	for _, step := range r.Steps {
		if step.Status == status {
			n++
		}
	}
	return n
}

// Generator discovers projects through a session and runs their plugin goals.
type Generator struct {
	session   *session.Session
	executor  ports.Executor
	store     ports.RecordStore
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time
}

// New creates a Generator.
func New(
	sess *session.Session,
	executor ports.Executor,
	store ports.RecordStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Generator {
	return &Generator{
		session:   sess,
		executor:  executor,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate reads roots and their modules, then runs every matching goal of every
// plugin of every project. A failing step does not stop the others; the returned
// error joins every failure with domain.ErrGenerationFailed.
func (g *Generator) Generate(ctx context.Context, roots []string, opts Options) (*Report, error) {
	if len(roots) == 0 {
		return nil, domain.ErrNoProjectsSpecified
	}

	pattern := opts.Goals
	if pattern == "" {
		pattern = DefaultGoals
	}
	goals, err := glob.Compile(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidGoalPattern, err.Error()), "pattern", pattern)
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	projects, discoverErr := g.discover(ctx, roots, parallelism, opts.Retries)

	var steps []StepResult
	for _, p := range projects {
		for _, plugin := range p.Plugins {
			for _, goal := range plugin.Goals {
				if !goals.Match(goal) {
					continue
				}
				steps = append(steps, StepResult{
					Project:  p,
					Identity: domain.NewStepIdentity(plugin, goal),
					Status:   domain.StepStatusPending,
				})
			}
		}
	}

	var eg errgroup.Group
	eg.SetLimit(parallelism)
	for i := range steps {
		eg.Go(func() error {
			g.runStep(ctx, &steps[i], opts.Force)
			return nil
		})
	}
	_ = eg.Wait()

	report := &Report{Projects: projects, Steps: steps}

	errs := []error{discoverErr}
	for _, step := range steps {
		if step.Err != nil {
			errs = append(errs, zerr.With(zerr.With(step.Err, "project", step.Project.ArtifactID), "step", step.Identity.String()))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return report, errors.Join(domain.ErrGenerationFailed, err)
	}
	return report, nil
}

// discover reads roots and then their modules level by level.
// Projects are returned ordered by path.
func (g *Generator) discover(ctx context.Context, roots []string, parallelism, retries int) ([]*domain.Project, error) {
	var (
		mu       sync.Mutex
		projects []*domain.Project
		errs     []error
		seen     = make(map[string]struct{})
	)

	frontier := roots
	for len(frontier) > 0 {
		var next []string
		var eg errgroup.Group
		eg.SetLimit(parallelism)

		for _, path := range frontier {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			eg.Go(func() error {
				p, err := g.read(ctx, path, retries)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, zerr.With(err, "path", path))
					return nil
				}
				projects = append(projects, p)
				next = append(next, p.Modules...)
				return nil
			})
		}
		_ = eg.Wait()
		frontier = next
	}

	// Module paths may be spelled differently from the cleaned path they resolve to.
	projects = slices.CompactFunc(sortProjects(projects), func(a, b *domain.Project) bool {
		return a.Path == b.Path
	})
	return projects, errors.Join(errs...)
}

func sortProjects(projects []*domain.Project) []*domain.Project {
	slices.SortFunc(projects, func(a, b *domain.Project) int {
		return cmp.Compare(a.Path.String(), b.Path.String())
	})
	return projects
}

// read reads a project, retrying transient read failures with exponential backoff.
func (g *Generator) read(ctx context.Context, path string, retries int) (*domain.Project, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxInterval = retryMaxInterval

	for attempt := 1; ; attempt++ {
		p, err := g.session.ReadProject(ctx, path)
		if err == nil {
			return p, nil
		}
		if attempt >= retries || !errors.Is(err, domain.ErrProjectReadFailed) {
			return nil, err
		}

		sleep := policy.NextBackOff()
		if sleep == backoff.Stop {
			return nil, err
		}
		g.logger.Warn("retrying read of " + path + " (attempt " + strconv.Itoa(attempt+1) + ")")

		select {
		case <-ctx.Done():
			return nil, errors.Join(err, context.Cause(ctx))
		case <-time.After(sleep):
		}
	}
}

func (g *Generator) runStep(ctx context.Context, step *StepResult, force bool) {
	ctx, vertex := g.telemetry.Record(ctx, step.Project.ArtifactID+":"+step.Identity.Goal)

	status, err := g.step(ctx, step, force)
	step.Status = status
	if err != nil {
		step.Status = domain.StepStatusFailed
		step.Err = err
		vertex.Log(domain.LogLevelError, err.Error())
	}
	if step.Status == domain.StepStatusCached {
		vertex.Cached()
	}
	vertex.Complete(err)
}

// step runs one goal with a pooled execution. The checksum is taken from the
// acquired execution so a change to the resolved plugin or its goal definition
// invalidates the record. The execution is released whether or not the goal
// succeeds.
func (g *Generator) step(ctx context.Context, step *StepResult, force bool) (status domain.StepStatus, err error) {
	exec, err := g.session.AcquireExecution(ctx, step.Identity, step.Project)
	if err != nil {
		return domain.StepStatusFailed, err
	}
	defer func() {
		if releaseErr := g.session.ReleaseExecution(step.Identity, exec); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	plugin, _ := findPlugin(step.Project, step.Identity.ArtifactID)
	checksum := stepChecksum(step.Project, plugin, exec)
	key := domain.StepKey(step.Project, step.Identity)

	if !force && g.upToDate(key, checksum) {
		return domain.StepStatusCached, nil
	}

	step.Status = domain.StepStatusRunning
	step.ExecutionID = exec.ID
	exec.Configure(plugin.Configuration)
	if err = g.executor.Execute(ctx, step.Project, exec); err != nil {
		return domain.StepStatusFailed, err
	}

	err = g.store.Put(domain.GenerationRecord{
		Key:         key,
		Checksum:    checksum,
		ExecutionID: exec.ID,
		Timestamp:   g.now(),
	})
	if err != nil {
		return domain.StepStatusFailed, err
	}
	return domain.StepStatusCompleted, nil
}

func (g *Generator) upToDate(key, checksum string) bool {
	record, err := g.store.Get(key)
	if err != nil {
		g.logger.Warn("ignoring unreadable record for " + key)
		return false
	}
	return record != nil && record.Checksum == checksum
}

func findPlugin(p *domain.Project, artifactID string) (domain.Plugin, bool) {
	for _, plugin := range p.Plugins {
		if plugin.ArtifactID == artifactID {
			return plugin, true
		}
	}
	return domain.Plugin{}, false
}

// stepChecksum fingerprints everything that affects a step's output: the project,
// the resolved plugin, the goal definition and the effective configuration.
func stepChecksum(p *domain.Project, plugin domain.Plugin, exec *domain.Execution) string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(strconv.Itoa(len(s)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(s)
	}
	writeMap := func(m map[string]string) {
		write(strconv.Itoa(len(m)))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			write(k)
			write(m[k])
		}
	}

	write(p.Checksum)
	write(exec.Identity.PoolKey())
	write(exec.Plugin.GroupID)
	write(exec.Plugin.ArtifactID)
	write(exec.Plugin.Version)
	write(strconv.Itoa(len(exec.Command)))
	for _, arg := range exec.Command {
		write(arg)
	}
	writeMap(exec.Defaults)
	writeMap(plugin.Configuration)
	return strconv.FormatUint(d.Sum64(), 16)
}
