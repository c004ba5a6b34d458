// Package stage implements the top-level rendering surface: a native
// window with a GL context and swap chain, a damage tracker that bounds
// repaint cost across frames, and the per-frame render loop that ties the
// two to the actor tree. The stage is itself the root container of its
// scene graph.
//
// All stage operations must run on the single render/event thread that
// drives the owning mainloop.Loop.
package stage

import (
	"fmt"
	"time"

	clutter "github.com/clutterkit/clutter"
	"github.com/clutterkit/clutter/engine/backend"
	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/damage"
	"github.com/clutterkit/clutter/engine/frame"
	"github.com/clutterkit/clutter/engine/geom"
	"github.com/clutterkit/clutter/engine/mainloop"
	"github.com/clutterkit/clutter/engine/scene"
	"golang.org/x/image/math/f32"
)

// Options configures stage construction.
type Options struct {
	Title   string
	Width   int
	Height  int
	Backend string // backend name; empty selects the best available
	Painter Painter

	// Debounce, when non-zero, coalesces damage bursts through a timer
	// instead of painting on the next loop iteration.
	Debounce time.Duration
}

// Stage owns exactly one backend surface and paints its actor tree into
// it. Construction creates the native surface; if no backend can, New
// fails and no half-built stage exists.
type Stage struct {
	*scene.Group

	loop    *mainloop.Loop
	backend backend.Backend
	surface backend.Surface
	painter Painter
	tracker *damage.Tracker
	clock   *frame.Clock

	color      colors.Color
	persp      Perspective
	projDirty  bool
	projection f32.Mat4
	fog        Fog
	fogEnabled bool

	fullscreen    bool
	cursorVisible bool
	userResizable bool
	title         string

	focus     scene.Actor
	destroyed bool

	onActivate   []func()
	onDeactivate []func()
	onFullscreen []func(bool)
	onClose      []func()
	onFrameError []func(error)
	onKey        []func(backend.KeyEvent)
	onPointer    []func(backend.PointerEvent)
}

// New creates a stage: selects a backend, creates the native surface and
// wires the repaint clock to loop. Surface creation failure is fatal for
// the stage and surfaces as the returned error.
func New(loop *mainloop.Loop, opts Options) (*Stage, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 640, 480
	}

	var b backend.Backend
	var err error
	if opts.Backend != "" {
		b, err = backend.Open(opts.Backend)
	} else {
		b, err = backend.Best()
	}
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	s := &Stage{
		Group:         scene.NewGroup(),
		loop:          loop,
		backend:       b,
		painter:       opts.Painter,
		color:         colors.Black,
		persp:         DefaultPerspective(),
		projDirty:     true,
		cursorVisible: true,
		userResizable: true,
		title:         opts.Title,
	}
	s.tracker = damage.New(opts.Width, opts.Height)
	s.clock = frame.New(loop, s.tracker, s.paintFrame)
	if opts.Debounce > 0 {
		s.clock.SetDebounce(opts.Debounce)
	}
	s.Group.SetRedrawFunc(s.QueueRedrawRect)

	if err := s.realize(opts); err != nil {
		return nil, err
	}

	addStage(s)
	clutter.Logger().Info("stage created",
		"backend", b.Name(), "width", opts.Width, "height", opts.Height)
	return s, nil
}

func (s *Stage) realize(opts Options) error {
	surf, err := s.backend.CreateSurface(backend.Options{
		Title:     opts.Title,
		Width:     opts.Width,
		Height:    opts.Height,
		VSync:     true,
		Resizable: s.userResizable,
	})
	if err != nil {
		return fmt.Errorf("stage: create surface: %w", err)
	}
	s.surface = surf
	surf.SetEventCallback(s.handleEvent)

	w, h := surf.Size()
	s.tracker.SetBounds(w, h)
	s.projDirty = true
	return nil
}

// unrealize releases the surface and cancels any scheduled repaint. The
// stage stays usable as a tree but paints nothing until destroyed.
func (s *Stage) unrealize() {
	s.clock.Cancel()
	if s.surface != nil {
		s.surface.Destroy()
		s.surface = nil
	}
}

// Realized reports whether the stage currently owns a native surface.
func (s *Stage) Realized() bool { return s.surface != nil }

// Loop returns the main loop driving this stage.
func (s *Stage) Loop() *mainloop.Loop { return s.loop }

// PollEvents drains the backend's platform queue. Intended as the poll
// hook for mainloop.Loop.Run.
func (s *Stage) PollEvents() { s.backend.PollEvents() }

// Destroy cancels the pending repaint, releases the surface and tears
// down the actor tree. No repaint callback runs after Destroy returns.
func (s *Stage) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.unrealize()
	s.Group.Destroy()
	s.focus = nil
	removeStage(s)
}

// Destroyed reports whether Destroy has run.
func (s *Stage) Destroyed() bool { return s.destroyed }

// Show maps the stage window and queues the first full frame.
func (s *Stage) Show() {
	if s.surface == nil {
		return
	}
	s.Group.Node().Show()
	s.surface.Show()
	s.QueueRedraw()
}

// Hide unmaps the stage window.
func (s *Stage) Hide() {
	if s.surface == nil {
		return
	}
	s.Group.Node().Hide()
	s.surface.Hide()
}

// QueueRedraw schedules a full repaint. Never blocks, never paints
// synchronously; many calls before the next frame coalesce into one.
func (s *Stage) QueueRedraw() {
	if s.destroyed || s.surface == nil {
		return
	}
	s.clock.RequestRedraw()
}

// QueueRedrawRect schedules a repaint of r (surface pixels). Invalid or
// offscreen rectangles are discarded; a discarded rect still does not
// schedule anything new if a frame is already pending.
func (s *Stage) QueueRedrawRect(r geom.Rect) {
	if s.destroyed || s.surface == nil {
		return
	}
	s.clock.RequestRedrawRect(r)
}

// SetPainter installs the painter after construction. GL painters need a
// current context, which only exists once the stage's surface does, so
// callers typically construct the stage with a nil painter and install
// one before Show. A stage without a painter skips frames silently.
func (s *Stage) SetPainter(p Painter) {
	s.painter = p
	s.QueueRedraw()
}

// SetColor sets the background color painted behind the tree on full
// repaints.
func (s *Stage) SetColor(c colors.Color) {
	if c == s.color {
		return
	}
	s.color = c
	s.QueueRedraw()
}

// Color returns the stage background color.
func (s *Stage) Color() colors.Color { return s.color }

// SetPerspective replaces the camera descriptor. The projection matrix is
// rebuilt lazily at the next paint.
func (s *Stage) SetPerspective(p Perspective) {
	if p == s.persp {
		return
	}
	s.persp = p
	s.projDirty = true
	s.QueueRedraw()
}

// GetPerspective returns the camera descriptor.
func (s *Stage) GetPerspective() Perspective { return s.persp }

// SetFog enables fog with the given parameters.
func (s *Stage) SetFog(f Fog) {
	s.fog = f
	s.fogEnabled = true
	s.QueueRedraw()
}

// UnsetFog disables fog.
func (s *Stage) UnsetFog() {
	s.fogEnabled = false
	s.QueueRedraw()
}

// SetFullscreen asks the window system for fullscreen state. Backends
// without fullscreen support ignore the request silently.
func (s *Stage) SetFullscreen(on bool) {
	s.fullscreen = on
	if s.surface == nil {
		return
	}
	if err := s.surface.SetFullscreen(on); err != nil {
		clutter.Logger().Warn("fullscreen unsupported", "backend", s.backend.Name())
	}
}

// Fullscreen reports the last known fullscreen state.
func (s *Stage) Fullscreen() bool { return s.fullscreen }

// SetCursorVisible shows or hides the pointer cursor over the stage.
// Ignored silently where unsupported.
func (s *Stage) SetCursorVisible(visible bool) {
	s.cursorVisible = visible
	if s.surface == nil {
		return
	}
	if err := s.surface.SetCursorVisible(visible); err != nil {
		clutter.Logger().Warn("cursor visibility unsupported", "backend", s.backend.Name())
	}
}

// CursorVisible reports whether the cursor is shown over the stage.
func (s *Stage) CursorVisible() bool { return s.cursorVisible }

// SetUserResizable controls whether the window manager lets the user
// resize the stage. Ignored silently where unsupported.
func (s *Stage) SetUserResizable(on bool) {
	s.userResizable = on
	if s.surface == nil {
		return
	}
	if err := s.surface.SetUserResizable(on); err != nil {
		clutter.Logger().Warn("user resize unsupported", "backend", s.backend.Name())
	}
}

// UserResizable reports whether user resizing is enabled.
func (s *Stage) UserResizable() bool { return s.userResizable }

// SetTitle sets the window title.
func (s *Stage) SetTitle(title string) {
	s.title = title
	if s.surface != nil {
		s.surface.SetTitle(title)
	}
}

// Size returns the surface size in pixels, or the tracker bounds when
// unrealized.
func (s *Stage) Size() (int, int) {
	if s.surface != nil {
		return s.surface.Size()
	}
	b := s.tracker.Bounds()
	return b.Width, b.Height
}

// SetKeyFocus directs key events to a. The actor's teardown clears the
// focus automatically: no dangling reference survives the actor. Passing
// nil clears focus back to the stage.
func (s *Stage) SetKeyFocus(a scene.Actor) {
	s.focus = a
	if a != nil {
		a.Node().OnDestroy(func() {
			if s.focus == a {
				s.focus = nil
			}
		})
	}
}

// KeyFocus returns the focused actor, or nil when the stage itself has
// focus.
func (s *Stage) KeyFocus() scene.Actor { return s.focus }

// Typed event registration. Handlers run on the render thread in
// registration order.

func (s *Stage) OnActivate(fn func())        { s.onActivate = append(s.onActivate, fn) }
func (s *Stage) OnDeactivate(fn func())      { s.onDeactivate = append(s.onDeactivate, fn) }
func (s *Stage) OnFullscreen(fn func(bool))  { s.onFullscreen = append(s.onFullscreen, fn) }
func (s *Stage) OnClose(fn func())           { s.onClose = append(s.onClose, fn) }
func (s *Stage) OnFrameError(fn func(error)) { s.onFrameError = append(s.onFrameError, fn) }

// OnKey registers a raw key handler. Key events go to the stage rather
// than being walked down the tree; handlers consult KeyFocus when they
// need a target actor.
func (s *Stage) OnKey(fn func(backend.KeyEvent)) { s.onKey = append(s.onKey, fn) }

// OnPointer registers a pointer handler. Handlers needing the actor under
// the pointer call Pick themselves; motion-only streams should not pay
// for a pick pass they do not use.
func (s *Stage) OnPointer(fn func(backend.PointerEvent)) { s.onPointer = append(s.onPointer, fn) }

func (s *Stage) handleEvent(ev backend.Event) {
	if s.destroyed {
		return
	}
	switch e := ev.(type) {
	case backend.ResizeEvent:
		if e.W < 1 || e.H < 1 {
			return
		}
		s.tracker.SetBounds(e.W, e.H)
		s.projDirty = true
		s.Group.Allocate(geom.BoxFromRect(geom.FromSize(e.W, e.H)), false)
		s.QueueRedraw()
	case backend.FocusEvent:
		if e.Focused {
			for _, fn := range s.onActivate {
				fn()
			}
		} else {
			for _, fn := range s.onDeactivate {
				fn()
			}
		}
	case backend.FullscreenEvent:
		s.fullscreen = e.Fullscreen
		for _, fn := range s.onFullscreen {
			fn(e.Fullscreen)
		}
	case backend.CloseEvent:
		for _, fn := range s.onClose {
			fn()
		}
	case backend.KeyEvent:
		for _, fn := range s.onKey {
			fn(e)
		}
	case backend.PointerEvent:
		for _, fn := range s.onPointer {
			fn(e)
		}
	}
}
