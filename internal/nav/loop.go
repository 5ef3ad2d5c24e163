package nav

import (
	"context"
	"errors"
	"time"
)

var ErrLoopStopped = errors.New("navigation loop stopped")

const inboxSize = 64

// Loop ticks a Navigator at a fixed rate on its own goroutine and applies
// input posted from other goroutines between frames.
type Loop struct {
	nav      *Navigator
	interval time.Duration
	inbox    chan func(*Navigator)
	done     chan struct{}
	clock    func() time.Duration
}

// NewLoop creates a loop running at fps frames per second (60 when fps <= 0).
func NewLoop(n *Navigator, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		nav:      n,
		interval: time.Second / time.Duration(fps),
		inbox:    make(chan func(*Navigator), inboxSize),
		done:     make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine before the next tick.
func (l *Loop) Post(ctx context.Context, fn func(*Navigator)) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.inbox <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run ticks until ctx is cancelled. It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	clock := l.clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.inbox:
			fn(l.nav)
		case <-ticker.C:
			l.drain()
			l.nav.Tick(clock())
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.inbox:
			fn(l.nav)
		default:
			return
		}
	}
}
