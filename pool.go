package web2pdf

import (
	"context"
	"runtime"
	"sync/atomic"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one engine may run.
	MinPoolSize = 1

	// MaxPoolSize caps live Chromium instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chromium child processes.
	cpuDivisor = 2
)

// EngineLimiter caps the number of concurrently live rendering engines.
// Share one limiter across Renderers to bound a whole process.
type EngineLimiter struct {
	sem    chan struct{}
	active atomic.Int32
}

// NewEngineLimiter creates a limiter admitting n engines at once.
func NewEngineLimiter(n int) *EngineLimiter {
	if n < 1 {
		n = 1
	}
	return &EngineLimiter{sem: make(chan struct{}, n)}
}

// Acquire blocks until an engine slot is free or ctx is done.
// On success the caller must call the returned release exactly once.
func (l *EngineLimiter) Acquire(ctx context.Context) (release func(), err error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.active.Add(1)
	var released atomic.Bool
	return func() {
		if released.CompareAndSwap(false, true) {
			l.active.Add(-1)
			<-l.sem
		}
	}, nil
}

// Size returns the limiter capacity.
func (l *EngineLimiter) Size() int {
	return cap(l.sem)
}

// Active returns the number of slots currently held.
func (l *EngineLimiter) Active() int {
	return int(l.active.Load())
}

// ResolvePoolSize determines the engine cap.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
