package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultPoolSize = 4
	acquireTimeout  = 5 * time.Second
)

// ErrBusy reports that every inference session was in use for the
// whole acquire window.
var ErrBusy = errors.New("no inference session available")

// sessionPool hands out exclusive access to pre-built model sessions.
// Sessions carry bound tensors, so two requests must never share one.
type sessionPool struct {
	sessions chan *modelSession
	size     int

	mu      sync.Mutex
	closed  bool
	metrics poolMetrics
}

type poolMetrics struct {
	mu              sync.RWMutex
	inUse           int
	totalAcquired   int64
	totalReleased   int64
	acquireFailures int64
	waitTime        time.Duration
}

// PoolMetrics is a point-in-time copy of the pool counters.
type PoolMetrics struct {
	PoolSize        int     `json:"pool_size"`
	InUse           int     `json:"sessions_in_use"`
	TotalAcquired   int64   `json:"total_acquired"`
	TotalReleased   int64   `json:"total_released"`
	AcquireFailures int64   `json:"acquire_failures"`
	TotalWaitMS     float64 `json:"total_wait_ms"`
}

func newSessionPool(modelPath string, size int) (*sessionPool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}

	pool := &sessionPool{
		sessions: make(chan *modelSession, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		session, err := newModelSession(modelPath)
		if err != nil {
			pool.destroy()
			return nil, fmt.Errorf("initialize session %d: %w", i, err)
		}
		pool.sessions <- session
	}

	return pool, nil
}

func (p *sessionPool) acquire(ctx context.Context) (*modelSession, error) {
	start := time.Now()
	defer func() {
		p.metrics.mu.Lock()
		p.metrics.waitTime += time.Since(start)
		p.metrics.mu.Unlock()
	}()

	select {
	case session := <-p.sessions:
		p.metrics.mu.Lock()
		p.metrics.inUse++
		p.metrics.totalAcquired++
		p.metrics.mu.Unlock()
		return session, nil
	case <-time.After(acquireTimeout):
		p.metrics.mu.Lock()
		p.metrics.acquireFailures++
		p.metrics.mu.Unlock()
		return nil, ErrBusy
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *sessionPool) release(session *modelSession) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		session.destroy()
		return
	}

	p.metrics.mu.Lock()
	p.metrics.inUse--
	p.metrics.totalReleased++
	p.metrics.mu.Unlock()

	p.sessions <- session
}

func (p *sessionPool) destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.sessions)

	for session := range p.sessions {
		session.destroy()
	}
}

func (p *sessionPool) snapshot() PoolMetrics {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()
	return PoolMetrics{
		PoolSize:        p.size,
		InUse:           p.metrics.inUse,
		TotalAcquired:   p.metrics.totalAcquired,
		TotalReleased:   p.metrics.totalReleased,
		AcquireFailures: p.metrics.acquireFailures,
		TotalWaitMS:     float64(p.metrics.waitTime.Microseconds()) / 1000.0,
	}
}
