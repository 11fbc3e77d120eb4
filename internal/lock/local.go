package lock

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/alphadose/haxmap"
)

// Local serializes holders of the same key within one process. Each key owns
// a one-slot channel; holding the lock means having put a token into it. A
// slot is dropped from the map once nobody holds or waits for it.
type Local struct {
	slots *haxmap.Map[string, *slot]
}

type slot struct {
	ch chan struct{}
	// refs counts holders and waiters, -1 once the slot is retired.
	refs atomic.Int32
}

func NewLocal() *Local {
	return &Local{
		slots: haxmap.New[string, *slot](),
	}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	s := l.join(key)

	select {
	case s.ch <- struct{}{}:
		return func() {
			<-s.ch
			l.leave(key, s)
		}, nil
	case <-ctx.Done():
		l.leave(key, s)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
	}
}

func (l *Local) join(key string) *slot {
	for {
		s, _ := l.slots.GetOrCompute(key, func() *slot {
			return &slot{ch: make(chan struct{}, 1)}
		})

		for {
			n := s.refs.Load()
			if n < 0 {
				break
			}
			if s.refs.CompareAndSwap(n, n+1) {
				return s
			}
		}

		// Retired but not yet removed.
		runtime.Gosched()
	}
}

func (l *Local) leave(key string, s *slot) {
	if s.refs.Add(-1) == 0 && s.refs.CompareAndSwap(0, -1) {
		l.slots.Del(key)
	}
}
