// Package recycle implements a keyed pool of reusable objects.
package recycle

import (
	"sync"

	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Pool keeps idle items bucketed by key. Acquire hands out the most recently
// released item for a key; Release resets an item and makes it available again.
//
// A pool never constructs items. Callers build a new one when Acquire misses.
type Pool[T comparable] struct {
	reset   func(T)
	discard func(T)
	maxIdle int

	mu     sync.Mutex
	idle   map[string][]T
	lookup map[T]string
	closed bool
}

// Option configures a Pool.
type Option[T comparable] func(*Pool[T])

// WithMaxIdle bounds the number of idle items kept per key. Items released into a
// full bucket are discarded. Zero or a negative value means unbounded.
func WithMaxIdle[T comparable](n int) Option[T] {
	return func(p *Pool[T]) {
		p.maxIdle = n
	}
}

// WithDiscard sets a callback for items dropped by the pool.
func WithDiscard[T comparable](fn func(T)) Option[T] {
	return func(p *Pool[T]) {
		p.discard = fn
	}
}

// New creates a Pool. reset is called on every released item before it becomes
// idle and may be nil.
func New[T comparable](reset func(T), opts ...Option[T]) *Pool[T] {
	p := &Pool[T]{
		reset:  reset,
		idle:   make(map[string][]T),
		lookup: make(map[T]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire removes and returns an idle item for key. It reports false when none
// is available.
func (p *Pool[T]) Acquire(key string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.idle[key]
	if len(bucket) == 0 {
		var zero T
		return zero, false
	}

	last := len(bucket) - 1
	item := bucket[last]
	var zero T
	bucket[last] = zero
	if last == 0 {
		delete(p.idle, key)
	} else {
		p.idle[key] = bucket[:last]
	}
	delete(p.lookup, item)
	return item, true
}

// Release resets item and returns it to the idle bucket for key.
// Releasing an item that is already idle fails with domain.ErrDoubleRelease.
func (p *Pool[T]) Release(key string, item T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if idleKey, ok := p.lookup[item]; ok {
		err := zerr.Wrap(domain.ErrDoubleRelease, "item is already idle")
		return zerr.With(zerr.With(err, "key", key), "idle_key", idleKey)
	}

	if p.reset != nil {
		p.reset(item)
	}

	if p.closed || (p.maxIdle > 0 && len(p.idle[key]) >= p.maxIdle) {
		p.drop(item)
		return nil
	}

	p.idle[key] = append(p.idle[key], item)
	p.lookup[item] = key
	return nil
}

// Idle returns the number of idle items for key.
func (p *Pool[T]) Idle(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle[key])
}

// Len returns the number of idle items across all keys.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lookup)
}

// Close discards every idle item. Items released afterwards are discarded
// immediately.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for key, bucket := range p.idle {
		for _, item := range bucket {
			p.drop(item)
		}
		delete(p.idle, key)
	}
	clear(p.lookup)
}

func (p *Pool[T]) drop(item T) {
	if p.discard != nil {
		p.discard(item)
	}
}
