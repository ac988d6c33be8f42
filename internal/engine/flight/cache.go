// Package flight implements a keyed single-flight cache: at most one load per key
// is ever in flight, and every caller asking for that key shares its outcome.
package flight

import (
	"context"
	"errors"

	"github.com/puzpuzpuz/xsync/v4"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader produces the value for a key. It receives the values of the context of
// the caller that triggered the load, but not its cancellation.
type Loader[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	done  chan struct{}
	value V
	err   error
}

func (e *entry[V]) completed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Cache maps keys to values produced once per key.
//
// Successful values are kept for the lifetime of the cache. Failed loads are
// evicted: callers already waiting receive the error, the next caller loads again.
type Cache[K comparable, V any] struct {
	entries *xsync.Map[K, *entry[V]]
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: xsync.NewMap[K, *entry[V]](),
	}
}

// Get returns the value for key. If no value is cached and no load is in flight,
// the calling goroutine runs loader; otherwise it waits for the in-flight load.
// The loader passed by a waiter is never called.
//
// A waiter whose ctx is done before the load completes returns an error matching
// domain.ErrInterruptedWait; the load itself carries on. The loading caller is
// not interrupted by its own ctx either, since other callers may share the load.
func (c *Cache[K, V]) Get(ctx context.Context, key K, loader Loader[V]) (V, error) {
	if e, ok := c.entries.Load(key); ok {
		return wait(ctx, e)
	}

	fresh := &entry[V]{done: make(chan struct{})}
	e, loaded := c.entries.LoadOrStore(key, fresh)
	if loaded {
		return wait(ctx, e)
	}

	c.load(ctx, key, e, loader)
	return e.value, e.err
}

func (c *Cache[K, V]) load(ctx context.Context, key K, e *entry[V], loader Loader[V]) {
	returned := false
	defer func() {
		if returned {
			return
		}
		// The loader panicked or called runtime.Goexit. Release the waiters and
		// let the panic continue up the loading goroutine.
		e.err = zerr.With(zerr.Wrap(domain.ErrLoaderPanicked, "load aborted"), "key", key)
		c.entries.Delete(key)
		close(e.done)
	}()

	value, err := loader(context.WithoutCancel(ctx))
	returned = true

	if err != nil {
		e.err = errors.Join(domain.ErrLoadFailed, err)
		c.entries.Delete(key)
	} else {
		e.value = value
	}
	close(e.done)
}

func wait[V any](ctx context.Context, e *entry[V]) (V, error) {
	select {
	case <-e.done:
		return e.value, e.err
	default:
	}

	select {
	case <-e.done:
		return e.value, e.err
	case <-ctx.Done():
		var zero V
		return zero, errors.Join(domain.ErrInterruptedWait, context.Cause(ctx))
	}
}

// Peek returns the cached value for key without loading or waiting.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries.Load(key)
	if !ok || !e.completed() || e.err != nil {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Forget drops a completed value so the next Get loads it again.
// In-flight loads are left alone. It reports whether a value was dropped.
func (c *Cache[K, V]) Forget(key K) bool {
	dropped := false
	c.entries.Compute(key, func(old *entry[V], loaded bool) (*entry[V], xsync.ComputeOp) {
		if !loaded || !old.completed() {
			return old, xsync.CancelOp
		}
		dropped = true
		return nil, xsync.DeleteOp
	})
	return dropped
}

// Len returns the number of cached or in-flight keys.
func (c *Cache[K, V]) Len() int {
	return c.entries.Size()
}

// Range calls fn for every cached value until fn returns false.
// In-flight loads are skipped.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	c.entries.Range(func(key K, e *entry[V]) bool {
		if !e.completed() || e.err != nil {
			return true
		}
		return fn(key, e.value)
	})
}
