package stage

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f32"

	"github.com/clutterkit/clutter/engine/backend"
	"github.com/clutterkit/clutter/engine/backend/headless"
	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
	"github.com/clutterkit/clutter/engine/mainloop"
	"github.com/clutterkit/clutter/engine/scene"
)

// recPainter records painter calls as strings and serves scripted pixels
// for ReadPixels.
type recPainter struct {
	ops       []string
	clipDepth int
	pixels    []byte
	lastRead  geom.Rect
	setupW    int
	setupH    int
}

func (p *recPainter) log(format string, args ...any) {
	p.ops = append(p.ops, fmt.Sprintf(format, args...))
}

func (p *recPainter) Setup(w, h int, _ f32.Mat4) {
	p.setupW, p.setupH = w, h
	p.log("setup %dx%d", w, h)
}

func (p *recPainter) PushClip(r geom.Rect) {
	p.clipDepth++
	p.log("clip %d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

func (p *recPainter) PopClip() {
	p.clipDepth--
	p.log("unclip")
}

func (p *recPainter) Clear(c colors.Color)                { p.log("clear") }
func (p *recPainter) SetFog(f Fog)                        { p.log("fog") }
func (p *recPainter) FillRect(b geom.Box, c colors.Color) { p.log("fill") }

func (p *recPainter) ReadPixels(x, y, w, h int) []byte {
	p.lastRead = geom.Rect{X: x, Y: y, Width: w, Height: h}
	return p.pixels
}

func (p *recPainter) reset() { p.ops = nil }

func (p *recPainter) has(op string) bool {
	for _, o := range p.ops {
		if o == op {
			return true
		}
	}
	return false
}

func newTestStage(t *testing.T) (*Stage, *mainloop.Loop, *headless.Surface, *recPainter) {
	t.Helper()
	loop := mainloop.New()
	p := &recPainter{}
	s, err := New(loop, Options{
		Title: "test", Width: 800, Height: 600,
		Backend: "headless", Painter: p,
	})
	assert.NoError(t, err)
	t.Cleanup(s.Destroy)
	return s, loop, s.surface.(*headless.Surface), p
}

func TestNewUnknownBackendFails(t *testing.T) {
	_, err := New(mainloop.New(), Options{Backend: "no-such"})
	assert.Error(t, err)
}

func TestFirstFrameIsFull(t *testing.T) {
	s, loop, surf, p := newTestStage(t)
	s.Show()
	loop.Dispatch()

	assert.Equal(t, 1, surf.Swaps)
	assert.GreaterOrEqual(t, surf.Currents, 1)
	assert.True(t, p.has("setup 800x600"))
	assert.True(t, p.has("clear"), "full frame clears to the stage color")
	assert.False(t, p.has("unclip"), "full frame skips scissor setup")
}

func TestRedrawRequestsCoalesce(t *testing.T) {
	s, loop, surf, _ := newTestStage(t)
	s.Show()
	loop.Dispatch()

	for i := 0; i < 25; i++ {
		s.QueueRedrawRect(geom.Rect{X: i, Y: i, Width: 10, Height: 10})
	}
	loop.Dispatch()
	assert.Equal(t, 2, surf.Swaps, "many requests, one frame")
}

func TestPartialRepaintClipsAndSkipsClear(t *testing.T) {
	s, loop, _, p := newTestStage(t)
	s.Show()
	loop.Dispatch() // frame 1: full, records full own damage

	s.QueueRedrawRect(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	loop.Dispatch() // frame 2: still full (patches frame 1)

	p.reset()
	s.QueueRedrawRect(geom.Rect{X: 10, Y: 10, Width: 20, Height: 20})
	loop.Dispatch() // frame 3: partial, union with frame 2's damage

	assert.True(t, p.has("clip 10,10 50x50"))
	assert.True(t, p.has("unclip"))
	assert.False(t, p.has("clear"), "partial frame reuses buffer contents")
	assert.Zero(t, p.clipDepth, "clip state balanced")
}

func TestResizeForcesFullRedraw(t *testing.T) {
	s, loop, surf, p := newTestStage(t)
	s.Show()
	loop.Dispatch()
	s.QueueRedrawRect(geom.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	loop.Dispatch()

	p.reset()
	surf.Resize(1024, 768)
	surf.Emit(backend.ResizeEvent{W: 1024, H: 768})
	loop.Dispatch()

	assert.True(t, p.has("setup 1024x768"))
	assert.True(t, p.has("clear"))
}

func TestSwapFailureUnrealizesAndReports(t *testing.T) {
	s, loop, surf, _ := newTestStage(t)
	var reported error
	s.OnFrameError(func(err error) { reported = err })

	s.Show()
	loop.Dispatch()

	surf.FailNextSwap(errors.New("context lost"))
	s.QueueRedraw()
	loop.Dispatch()

	assert.False(t, s.Realized())
	assert.ErrorIs(t, reported, backend.ErrSurfaceLost)

	// Paint requests are no-ops while unrealized.
	swaps := surf.Swaps
	s.QueueRedraw()
	loop.Dispatch()
	assert.Equal(t, swaps, surf.Swaps)
}

func TestDestroyCancelsScheduledRepaint(t *testing.T) {
	// Scenario E.
	s, loop, surf, _ := newTestStage(t)
	s.Show()
	loop.Dispatch()

	s.QueueRedraw()
	s.Destroy()
	for i := 0; i < 3; i++ {
		loop.Dispatch()
	}
	assert.Equal(t, 1, surf.Swaps, "no frame may run against a destroyed stage")
	assert.True(t, surf.Destroyed)
}

func TestDefaultStageSingleton(t *testing.T) {
	loop := mainloop.New()
	opts := Options{Backend: "headless", Painter: &recPainter{}}

	a, err := Default(loop, opts)
	assert.NoError(t, err)
	b, err := Default(loop, opts)
	assert.NoError(t, err)
	assert.Same(t, a, b)
	assert.Contains(t, Stages(), a)

	Shutdown()
	assert.True(t, a.Destroyed())
	assert.NotContains(t, Stages(), a)

	c, err := Default(loop, opts)
	assert.NoError(t, err)
	assert.NotSame(t, a, c)
	c.Destroy()
}

func TestPickReturnsActorByIDColor(t *testing.T) {
	s, loop, _, p := newTestStage(t)
	rect := scene.NewRectangle(colors.Red)
	rect.SetBox(geom.Box{X1: 10, Y1: 10, X2: 110, Y2: 110})
	s.Add(rect)
	rect.Show()
	s.Show()
	loop.Dispatch()

	id := rect.ID()
	p.pixels = []byte{byte(id >> 16), byte(id >> 8), byte(id), 255}

	picked := s.Pick(50, 50)
	assert.Equal(t, scene.Actor(rect), picked)
	// ReadPixels is bottom-up: y flipped against the 600px surface.
	assert.Equal(t, geom.Rect{X: 50, Y: 549, Width: 1, Height: 1}, p.lastRead)
}

func TestPickMissAndOutOfBounds(t *testing.T) {
	s, loop, _, p := newTestStage(t)
	s.Show()
	loop.Dispatch()

	p.pixels = []byte{0, 0, 0, 255}
	assert.Nil(t, s.Pick(50, 50), "background pixel picks nothing")
	assert.Nil(t, s.Pick(-1, 50))
	assert.Nil(t, s.Pick(50, 6000))
}

func TestPickQueuesRepaint(t *testing.T) {
	s, loop, surf, p := newTestStage(t)
	s.Show()
	loop.Dispatch()

	p.pixels = []byte{0, 0, 0, 255}
	s.Pick(1, 1)
	loop.Dispatch()
	assert.Equal(t, 2, surf.Swaps, "pick scribbles the back buffer; a full frame follows")
}

func TestSnapshotFlipsRows(t *testing.T) {
	s, loop, _, p := newTestStage(t)
	s.Show()
	loop.Dispatch()

	// Two rows, one pixel wide: red below white (GL bottom-up order).
	p.pixels = []byte{
		255, 0, 0, 255, // bottom row
		255, 255, 255, 255, // top row
	}
	img, err := s.Snapshot(0, 0, 1, 2)
	assert.NoError(t, err)

	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(0, 1)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, top)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, bottom)
}

func TestKeyFocusClearedOnActorTeardown(t *testing.T) {
	s, _, _, _ := newTestStage(t)
	rect := scene.NewRectangle(colors.Red)
	s.Add(rect)
	s.SetKeyFocus(rect)
	assert.Equal(t, scene.Actor(rect), s.KeyFocus())

	rect.Node().Destroy()
	assert.Nil(t, s.KeyFocus(), "focused actor teardown must clear stage focus")
}

func TestWindowManagerFeatureSync(t *testing.T) {
	s, _, surf, _ := newTestStage(t)
	s.SetFullscreen(true)
	s.SetCursorVisible(false)
	s.SetUserResizable(false)

	assert.True(t, surf.Fullscreen)
	assert.False(t, surf.CursorShown)
	assert.False(t, surf.Resizable)
	assert.True(t, s.Fullscreen())
	assert.False(t, s.CursorVisible())
}

func TestTypedEventHandlers(t *testing.T) {
	s, _, surf, _ := newTestStage(t)
	var got []string
	s.OnActivate(func() { got = append(got, "activate") })
	s.OnDeactivate(func() { got = append(got, "deactivate") })
	s.OnFullscreen(func(on bool) { got = append(got, fmt.Sprintf("fullscreen=%v", on)) })
	s.OnClose(func() { got = append(got, "close") })

	surf.Emit(backend.FocusEvent{Focused: true})
	surf.Emit(backend.FocusEvent{Focused: false})
	surf.Emit(backend.FullscreenEvent{Fullscreen: true})
	surf.Emit(backend.CloseEvent{})

	assert.Equal(t, []string{"activate", "deactivate", "fullscreen=true", "close"}, got)
	assert.True(t, s.Fullscreen(), "async WM state change updates the flag")
}

func TestInputEventHandlers(t *testing.T) {
	s, _, surf, _ := newTestStage(t)
	var keys []backend.Key
	var clicks []int
	s.OnKey(func(ev backend.KeyEvent) {
		if ev.Down {
			keys = append(keys, ev.Key)
		}
	})
	s.OnPointer(func(ev backend.PointerEvent) {
		if ev.Down {
			clicks = append(clicks, ev.Button)
		}
	})

	surf.Emit(backend.KeyEvent{Key: backend.KeySpace, Down: true})
	surf.Emit(backend.KeyEvent{Key: backend.KeySpace, Down: false})
	surf.Emit(backend.PointerEvent{X: 10, Y: 10}) // motion only
	surf.Emit(backend.PointerEvent{X: 10, Y: 10, Button: 1, Down: true})

	assert.Equal(t, []backend.Key{backend.KeySpace}, keys)
	assert.Equal(t, []int{1}, clicks)
}

func TestBufferAgePathPartialRepaint(t *testing.T) {
	s, loop, surf, p := newTestStage(t)
	surf.SetBufferAges(0, 1, 1)
	s.Show()
	loop.Dispatch() // age 0: full

	s.QueueRedrawRect(geom.Rect{X: 100, Y: 100, Width: 20, Height: 20})
	loop.Dispatch() // age 1: union with frame 1's own damage (full: Show marked all)

	p.reset()
	s.QueueRedrawRect(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	loop.Dispatch() // age 1: union with {100,100,20,20} → partial

	assert.True(t, p.has("clip 10,10 110x110"))
	assert.False(t, p.has("clear"))
}
