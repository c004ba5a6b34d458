// Package timeline provides a frame-based animation clock. A timeline
// counts frames at a nominal rate through the main loop and reports
// progress through callbacks; it drives no rendering itself, listeners
// queue stage redraws from their frame handlers.
package timeline

import (
	"time"

	"github.com/clutterkit/clutter/engine/mainloop"
)

// Timeline steps through NFrames frames at FPS frames per second. Frames
// are numbered 1..NFrames; frame 0 means not yet started. All methods must
// run on the loop goroutine.
type Timeline struct {
	loop *mainloop.Loop

	nframes int
	fps     int
	looping bool

	frame   int
	playing bool
	src     *mainloop.Source
	last    time.Time

	onNewFrame  []func(frame int)
	onCompleted []func()
}

// New creates a stopped timeline of nframes frames ticking at fps.
func New(loop *mainloop.Loop, nframes, fps int) *Timeline {
	if nframes < 1 {
		nframes = 1
	}
	if fps < 1 {
		fps = 60
	}
	return &Timeline{loop: loop, nframes: nframes, fps: fps}
}

func (t *Timeline) NFrames() int  { return t.nframes }
func (t *Timeline) FPS() int      { return t.fps }
func (t *Timeline) Frame() int    { return t.frame }
func (t *Timeline) Playing() bool { return t.playing }

// Progress reports completion in [0,1].
func (t *Timeline) Progress() float64 {
	return float64(t.frame) / float64(t.nframes)
}

// SetLoop makes the timeline rewind and restart when it completes.
func (t *Timeline) SetLoop(loop bool) { t.looping = loop }

func (t *Timeline) Looping() bool { return t.looping }

// OnNewFrame registers fn to run once per advanced frame with the new
// frame number.
func (t *Timeline) OnNewFrame(fn func(frame int)) {
	t.onNewFrame = append(t.onNewFrame, fn)
}

// OnCompleted registers fn to run when the last frame has been delivered.
// A looping timeline completes once per lap.
func (t *Timeline) OnCompleted(fn func()) {
	t.onCompleted = append(t.onCompleted, fn)
}

// Start begins or resumes playback. Starting a playing timeline is a
// no-op; starting a completed one rewinds it first.
func (t *Timeline) Start() {
	if t.playing {
		return
	}
	if t.frame >= t.nframes {
		t.frame = 0
	}
	t.playing = true
	t.last = time.Now()
	interval := time.Second / time.Duration(t.fps)
	t.src = t.loop.Every(interval, t.tick)
}

// Pause halts playback keeping the current frame.
func (t *Timeline) Pause() {
	if !t.playing {
		return
	}
	t.playing = false
	t.src.Remove()
	t.src = nil
}

// Stop pauses and rewinds.
func (t *Timeline) Stop() {
	t.Pause()
	t.frame = 0
}

// Rewind moves back to the first frame without changing playback state.
func (t *Timeline) Rewind() {
	t.frame = 0
	t.last = time.Now()
}

// Skip jumps n frames forward (or backward for negative n), clamped to
// the timeline's range. Skipping does not fire frame callbacks.
func (t *Timeline) Skip(n int) {
	t.frame += n
	if t.frame < 0 {
		t.frame = 0
	}
	if t.frame > t.nframes {
		t.frame = t.nframes
	}
}

// Advance moves directly to frame, clamped, without firing callbacks.
func (t *Timeline) Advance(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame > t.nframes {
		frame = t.nframes
	}
	t.frame = frame
}

// tick advances by however many frame periods have elapsed on the wall
// clock, so a stalled loop skips frames instead of slowing the animation.
func (t *Timeline) tick() bool {
	now := time.Now()
	period := time.Second / time.Duration(t.fps)
	elapsed := int(now.Sub(t.last) / period)
	if elapsed < 1 {
		elapsed = 1
	}
	t.last = now

	t.frame += elapsed
	if t.frame < t.nframes {
		t.emitNewFrame()
		return true
	}

	// Lap finished: the last frame is always delivered even when the
	// clock overshot it.
	t.frame = t.nframes
	t.emitNewFrame()
	for _, fn := range t.onCompleted {
		fn()
	}
	if t.looping {
		t.frame = 0
		return true
	}
	t.playing = false
	t.src = nil
	return false
}

func (t *Timeline) emitNewFrame() {
	for _, fn := range t.onNewFrame {
		fn(t.frame)
	}
}
