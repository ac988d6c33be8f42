package ports

import "io"

// Metrics receives counters for the project cache and the execution pool.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	ProjectCacheHit()
	ProjectCacheMiss()
	ProjectLoadFailed()
	ExecutionCreated()
	ExecutionReused()
	ExecutionReleased()

	// WriteSummary writes the current counter values to w.
	WriteSummary(w io.Writer) error
}
