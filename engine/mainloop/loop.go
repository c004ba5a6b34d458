package mainloop

import "time"

// Loop is a cooperative single-goroutine dispatcher: deferred idle
// callbacks plus one-shot and repeating timers. All Stage work (repaint
// scheduling, timeline ticks, event delivery) runs through one Loop on the
// render thread, so no locking is needed and Remove is synchronous. Sources
// must only be added or removed from the loop goroutine.
type Loop struct {
	idle    []*Source
	timers  []*Source
	quit    bool
	running bool
}

// Source is a handle to a scheduled callback. Removing a fired one-shot
// source is a no-op.
type Source struct {
	fn       func() bool
	due      time.Time
	interval time.Duration // >0 for repeating timers
	timed    bool
	removed  bool
}

// Remove cancels the source. The callback is guaranteed not to run after
// Remove returns.
func (s *Source) Remove() {
	if s != nil {
		s.removed = true
	}
}

func New() *Loop { return &Loop{} }

// Post schedules fn to run once on a future loop iteration. Posting from
// inside a dispatched callback schedules for the next iteration, never the
// current one.
func (l *Loop) Post(fn func()) *Source {
	s := &Source{fn: func() bool { fn(); return false }}
	l.idle = append(l.idle, s)
	return s
}

// After schedules fn to run once after d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) *Source {
	s := &Source{fn: func() bool { fn(); return false }, due: time.Now().Add(d), timed: true}
	l.timers = append(l.timers, s)
	return s
}

// Every schedules fn at a fixed interval until it returns false or the
// source is removed.
func (l *Loop) Every(d time.Duration, fn func() bool) *Source {
	s := &Source{fn: fn, due: time.Now().Add(d), interval: d, timed: true}
	l.timers = append(l.timers, s)
	return s
}

// Dispatch runs one loop iteration: every due timer, then every idle
// source queued before the iteration began. Reports whether anything ran.
func (l *Loop) Dispatch() bool {
	ran := false
	now := time.Now()

	// Timers first; repeating ones are rescheduled relative to now so a
	// stalled loop does not burst-fire to catch up. The list is
	// snapshotted like the idle queue: timers added by a callback land in
	// l.timers and are merged back with the survivors, due next iteration.
	timers := l.timers
	l.timers = nil
	keep := timers[:0]
	for _, s := range timers {
		if s.removed {
			continue
		}
		if s.due.After(now) {
			keep = append(keep, s)
			continue
		}
		ran = true
		if s.fn() && s.interval > 0 && !s.removed {
			s.due = now.Add(s.interval)
			keep = append(keep, s)
		}
	}
	l.timers = append(keep, l.timers...)

	// Snapshot the idle queue: sources posted by callbacks below belong to
	// the next iteration.
	pending := l.idle
	l.idle = nil
	for _, s := range pending {
		if s.removed {
			continue
		}
		ran = true
		s.fn()
	}
	return ran
}

// next returns the wait until the earliest timer, or idleWait if none.
func (l *Loop) next(idleWait time.Duration) time.Duration {
	if len(l.idle) > 0 {
		return 0
	}
	wait := idleWait
	now := time.Now()
	for _, s := range l.timers {
		if s.removed {
			continue
		}
		if d := s.due.Sub(now); d < wait {
			wait = d
		}
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Run iterates until Quit: poll the windowing backend, dispatch pending
// sources, then sleep until the next timer is due. poll may be nil for
// headless use.
func (l *Loop) Run(poll func()) {
	l.running = true
	l.quit = false
	const idleWait = 4 * time.Millisecond
	for !l.quit {
		if poll != nil {
			poll()
		}
		l.Dispatch()
		if l.quit {
			break
		}
		if d := l.next(idleWait); d > 0 {
			time.Sleep(d)
		}
	}
	l.running = false
}

// Quit stops Run after the current iteration completes.
func (l *Loop) Quit() { l.quit = true }

// Running reports whether Run is iterating.
func (l *Loop) Running() bool { return l.running }
