package vault

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// lazy is a memoized factory cell: the first caller runs init, concurrent
// callers share the in-flight run, and a successful value is cached for the
// cell's lifetime. A failed init is not cached; the next caller retries.
type lazy[T any] struct {
	init func(ctx context.Context) (T, error)

	sf singleflight.Group
	mu sync.RWMutex
	ok bool
	v  T
}

func newLazy[T any](init func(ctx context.Context) (T, error)) *lazy[T] {
	return &lazy[T]{init: init}
}

// peek returns the cached value without triggering initialization.
func (l *lazy[T]) peek() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.v, l.ok
}

func (l *lazy[T]) get(ctx context.Context) (T, error) {
	l.mu.RLock()
	if l.ok {
		v := l.v
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.sf.Do("init", func() (interface{}, error) {
		l.mu.RLock()
		if l.ok {
			v := l.v
			l.mu.RUnlock()
			return v, nil
		}
		l.mu.RUnlock()

		v, err := l.init(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.v = v
		l.ok = true
		l.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
