// Package platform provides the GLFW windowing backend: native windows
// with GL 3.3 core contexts, vsynced swap chains and translated window
// system events. It registers itself as the preferred backend.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	clutter "github.com/clutterkit/clutter"
	"github.com/clutterkit/clutter/engine/backend"
)

func init() {
	backend.Register("glfw", 100, func() (backend.Backend, error) {
		return newGLFW()
	}, nil)
}

// GLFW implements backend.Backend over one process-wide glfw library
// instance.
type GLFW struct {
	glInited bool
}

// newGLFW initializes glfw. Must run on the main OS thread; the thread is
// locked here because GL contexts are thread-affine.
func newGLFW() (*GLFW, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	return &GLFW{}, nil
}

func (g *GLFW) Name() string { return "glfw" }

func (g *GLFW) PollEvents() { glfw.PollEvents() }

func (g *GLFW) CreateSurface(opts backend.Options) (backend.Surface, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True) // Mac requires this
	glfw.WindowHint(glfw.Visible, glfw.False)
	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if !g.glInited {
		if err := gl.Init(); err != nil {
			win.Destroy()
			return nil, fmt.Errorf("gl init: %w", err)
		}
		g.glInited = true
		clutter.Logger().Info("GL context ready",
			"version", gl.GoStr(gl.GetString(gl.VERSION)))
	}

	s := &Surface{win: win}

	win.SetCloseCallback(func(*glfw.Window) { s.emit(backend.CloseEvent{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		s.emit(backend.ResizeEvent{W: w, H: h})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		s.emit(backend.FocusEvent{Focused: focused})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		s.emit(backend.PointerEvent{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		s.emit(backend.PointerEvent{X: x, Y: y, Button: int(b) + 1, Down: a != glfw.Release})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		s.emit(backend.KeyEvent{Key: translateKey(key), Down: action != glfw.Release, Mods: translateMods(mods)})
	})

	return s, nil
}

// Surface implements backend.Surface over a glfw window.
type Surface struct {
	win  *glfw.Window
	onEv func(backend.Event)

	// windowed geometry saved across fullscreen round trips
	wx, wy, ww, wh int
	fullscreen     bool
	destroyed      bool
}

func (s *Surface) emit(ev backend.Event) {
	if s.onEv != nil {
		s.onEv(ev)
	}
}

func (s *Surface) SetEventCallback(cb func(backend.Event)) { s.onEv = cb }

func (s *Surface) MakeCurrent() error {
	if s.destroyed {
		return backend.ErrSurfaceLost
	}
	s.win.MakeContextCurrent()
	return nil
}

func (s *Surface) SwapBuffers() error {
	if s.destroyed || s.win.ShouldClose() {
		return backend.ErrSurfaceLost
	}
	s.win.SwapBuffers()
	return nil
}

// BufferAge is not queryable through glfw, so stages on this backend run
// the double-buffer damage fallback.
func (s *Surface) BufferAge() (int, bool) { return 0, false }

func (s *Surface) Size() (int, int) { return s.win.GetFramebufferSize() }

func (s *Surface) Resize(w, h int) { s.win.SetSize(w, h) }

func (s *Surface) SetTitle(title string) { s.win.SetTitle(title) }

func (s *Surface) Show() { s.win.Show() }
func (s *Surface) Hide() { s.win.Hide() }

func (s *Surface) SetFullscreen(on bool) error {
	if on == s.fullscreen {
		return nil
	}
	if on {
		mon := glfw.GetPrimaryMonitor()
		if mon == nil {
			return backend.ErrUnsupported
		}
		s.wx, s.wy = s.win.GetPos()
		s.ww, s.wh = s.win.GetSize()
		mode := mon.GetVideoMode()
		s.win.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		s.win.SetMonitor(nil, s.wx, s.wy, s.ww, s.wh, 0)
	}
	s.fullscreen = on
	s.emit(backend.FullscreenEvent{Fullscreen: on})
	return nil
}

func (s *Surface) SetCursorVisible(visible bool) error {
	if visible {
		s.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		s.win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}
	return nil
}

func (s *Surface) SetUserResizable(on bool) error {
	v := glfw.False
	if on {
		v = glfw.True
	}
	s.win.SetAttrib(glfw.Resizable, v)
	return nil
}

func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.onEv = nil
	s.win.Destroy()
}

func translateKey(k glfw.Key) backend.Key {
	switch k {
	case glfw.KeyEscape:
		return backend.KeyEscape
	case glfw.KeySpace:
		return backend.KeySpace
	case glfw.KeyEnter:
		return backend.KeyEnter
	case glfw.KeyF11:
		return backend.KeyF11
	case glfw.KeyC:
		return backend.KeyC
	case glfw.KeyQ:
		return backend.KeyQ
	default:
		return backend.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) backend.Mod {
	var out backend.Mod
	if m&glfw.ModShift != 0 {
		out |= backend.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= backend.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= backend.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= backend.ModSuper
	}
	return out
}
