package engine

import "time"

// Timer is a cancellable deferred action owned by a Scheduler.
type Timer struct {
	deadline time.Duration
	seq      uint64
	fn       func()
	done     bool
}

// Cancel discards the pending action. Safe on nil, fired and cancelled timers.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.done = true
	t.fn = nil
}

// Pending reports whether the action has neither fired nor been cancelled.
func (t *Timer) Pending() bool {
	return t != nil && !t.done
}

// Scheduler runs deferred actions on the caller's goroutine when Advance is called.
// Time is a monotonic offset supplied by the owner, so nothing fires on its own.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After arms fn to run once delay has elapsed past Now.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Timer{deadline: s.now + delay, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward and fires every due timer in deadline order,
// ties broken by arming order. Timers armed by a callback fire in the same
// call if they are already due. Going backwards in time is ignored.
func (s *Scheduler) Advance(now time.Duration) {
	if now > s.now {
		s.now = now
	}
	for {
		t := s.nextDue()
		if t == nil {
			break
		}
		fn := t.fn
		t.done = true
		t.fn = nil
		if fn != nil {
			fn()
		}
	}
	s.compact()
}

func (s *Scheduler) nextDue() *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.done || t.deadline > s.now {
			continue
		}
		if best == nil || t.deadline < best.deadline || (t.deadline == best.deadline && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}
