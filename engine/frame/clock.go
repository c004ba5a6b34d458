// Package frame coalesces redraw requests into one deferred render-loop
// invocation per tick.
package frame

import (
	"time"

	"github.com/clutterkit/clutter/engine/damage"
	"github.com/clutterkit/clutter/engine/geom"
	"github.com/clutterkit/clutter/engine/mainloop"
)

// State of the repaint scheduler.
type State int

const (
	Idle State = iota
	ScheduledFull
	ScheduledDamage
)

// Clock turns any number of redraw requests between two frames into exactly
// one callback on the main loop. At most one deferred source is ever
// outstanding; requests while scheduled accumulate damage into the tracker
// and leave the source alone.
type Clock struct {
	loop    *mainloop.Loop
	tracker *damage.Tracker
	frame   func()

	debounce time.Duration
	state    State
	source   *mainloop.Source
}

// New creates a clock that marks damage into tracker and invokes frame
// once per scheduled tick.
func New(loop *mainloop.Loop, tracker *damage.Tracker, frame func()) *Clock {
	return &Clock{loop: loop, tracker: tracker, frame: frame}
}

// SetDebounce makes the clock schedule through a timer of the given
// interval instead of an immediate deferred callback, trading latency for
// fewer redundant frames under damage bursts. Zero restores immediate
// scheduling.
func (c *Clock) SetDebounce(d time.Duration) { c.debounce = d }

// State returns the scheduler state.
func (c *Clock) State() State { return c.state }

// RequestRedraw marks the whole surface damaged and schedules a frame.
func (c *Clock) RequestRedraw() {
	c.tracker.MarkAll()
	if c.state == Idle {
		c.schedule()
	}
	c.state = ScheduledFull
}

// RequestRedrawRect merges r into pending damage and schedules a frame.
// A no-op rect (non-positive size, fully offscreen) still schedules
// nothing new if a frame is already pending.
func (c *Clock) RequestRedrawRect(r geom.Rect) {
	c.tracker.Mark(r)
	if c.state == Idle {
		c.schedule()
		c.state = ScheduledDamage
	}
}

// Cancel removes the outstanding source, if any, and returns the clock to
// Idle. The frame callback is guaranteed not to run until the next
// request. Must be called before the owning stage is torn down.
func (c *Clock) Cancel() {
	c.source.Remove()
	c.source = nil
	c.state = Idle
}

func (c *Clock) schedule() {
	if c.debounce > 0 {
		c.source = c.loop.After(c.debounce, c.fire)
	} else {
		c.source = c.loop.Post(c.fire)
	}
}

// fire transitions to Idle before running the frame so that a redraw
// requested during painting schedules a fresh future callback instead of
// re-entering this one.
func (c *Clock) fire() {
	c.state = Idle
	c.source = nil
	c.frame()
}
