package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"portfolio/internal/metrics"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("database: handle closed")

// Closer is a resource that can be released at shutdown.
type Closer interface {
	Close(ctx context.Context) error
}

// Lazy is a process-wide connection handle established on first use.
// Concurrent first callers share one dial; a successful result is cached
// until Close, a failed one is not.
type Lazy[T Closer] struct {
	name    string
	timeout time.Duration
	dial    func(ctx context.Context) (T, error)

	group singleflight.Group
	dials atomic.Int64

	mu     sync.RWMutex
	value  T
	ready  bool
	closed bool
}

// NewLazy returns a handle that dials with dial on first Get. Each dial is
// bounded by timeout and detached from the caller's cancellation.
func NewLazy[T Closer](name string, timeout time.Duration, dial func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{name: name, timeout: timeout, dial: dial}
}

// Name returns the store name used in logs and metrics.
func (l *Lazy[T]) Name() string {
	return l.name
}

// Get returns the cached resource, dialing it if needed.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if v, ok, err := l.cached(); ok || err != nil {
		return v, err
	}

	res, err, _ := l.group.Do(l.name, func() (any, error) {
		if v, ok, err := l.cached(); ok || err != nil {
			return v, err
		}

		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		l.dials.Add(1)
		v, err := l.dial(dctx)
		metrics.RecordStoreConnection(l.name, err)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			_ = v.Close(dctx)
			return nil, ErrClosed
		}
		l.value = v
		l.ready = true
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (l *Lazy[T]) cached() (T, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		var zero T
		return zero, false, ErrClosed
	}
	return l.value, l.ready, nil
}

// Dials returns how many times the handle has attempted to connect.
func (l *Lazy[T]) Dials() int64 {
	return l.dials.Load()
}

// Close releases the resource if it was established. Later Gets fail.
func (l *Lazy[T]) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if !l.ready {
		return nil
	}
	l.ready = false
	return l.value.Close(ctx)
}
