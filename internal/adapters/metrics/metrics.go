// Package metrics counts project cache and execution pool activity with Prometheus counters.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/zerr"
)

const namespace = "flexgen"

// Recorder implements ports.Metrics on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheFailures prometheus.Counter
	execsCreated  prometheus.Counter
	execsReused   prometheus.Counter
	execsReleased prometheus.Counter
}

// New creates a Recorder with all counters registered and at zero.
func New() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.cacheHits = r.counter("project_cache", "hits_total", "Project reads answered from the session cache.")
	r.cacheMisses = r.counter("project_cache", "misses_total", "Project reads that had to parse the project file.")
	r.cacheFailures = r.counter("project_cache", "failures_total", "Project reads that failed.")
	r.execsCreated = r.counter("executions", "created_total", "Executions built by the plugin catalogue.")
	r.execsReused = r.counter("executions", "reused_total", "Executions handed out again from the idle pool.")
	r.execsReleased = r.counter("executions", "released_total", "Executions returned to the idle pool.")

	return r
}

func (r *Recorder) counter(subsystem, name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
	r.registry.MustRegister(c)
	return c
}

// Registry returns the registry holding the counters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ProjectCacheHit counts a project read served from the session cache.
func (r *Recorder) ProjectCacheHit() { r.cacheHits.Inc() }

// ProjectCacheMiss counts a project read that parsed the project file.
func (r *Recorder) ProjectCacheMiss() { r.cacheMisses.Inc() }

// ProjectLoadFailed counts a project read that failed.
func (r *Recorder) ProjectLoadFailed() { r.cacheFailures.Inc() }

// ExecutionCreated counts an execution built by the plugin catalogue.
func (r *Recorder) ExecutionCreated() { r.execsCreated.Inc() }

// ExecutionReused counts an execution handed out again from the idle pool.
func (r *Recorder) ExecutionReused() { r.execsReused.Inc() }

// ExecutionReleased counts an execution returned to the idle pool.
func (r *Recorder) ExecutionReleased() { r.execsReleased.Inc() }

// WriteSummary writes one "name value" row per counter, ordered by name.
func (r *Recorder) WriteSummary(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return zerr.Wrap(err, "failed to gather metrics")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			value := strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64)
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", family.GetName(), value); err != nil {
				return zerr.Wrap(err, "failed to write metrics summary")
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write metrics summary")
	}
	return nil
}
