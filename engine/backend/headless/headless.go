// Package headless provides an in-memory backend with no display
// dependency. It backs tests and CI runs, and doubles as the lowest
// priority fallback when no window-system backend can start. Buffer-age
// reporting is scriptable so swap-chain reconstruction paths can be
// exercised deterministically.
package headless

import (
	"github.com/clutterkit/clutter/engine/backend"
)

func init() {
	backend.Register("headless", 10, func() (backend.Backend, error) {
		return New(), nil
	}, nil)
}

// Headless implements backend.Backend.
type Headless struct {
	surfaces []*Surface
}

func New() *Headless { return &Headless{} }

func (h *Headless) Name() string { return "headless" }

func (h *Headless) CreateSurface(opts backend.Options) (backend.Surface, error) {
	w, hgt := opts.Width, opts.Height
	if w <= 0 || hgt <= 0 {
		w, hgt = 640, 480
	}
	s := &Surface{width: w, height: hgt, title: opts.Title, CursorShown: true}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

// PollEvents is a no-op: headless surfaces deliver events only when a test
// injects them via Emit.
func (h *Headless) PollEvents() {}

// Surface implements backend.Surface entirely in memory. The exported
// counters and flags exist for test assertions.
type Surface struct {
	width, height int
	title         string
	cb            func(backend.Event)

	ages    []int // consumed front to back by BufferAge
	agesOK  bool
	swapErr error

	Swaps       int
	Currents    int
	Destroyed   bool
	Shown       bool
	Fullscreen  bool
	CursorShown bool
	Resizable   bool
}

// SetBufferAges scripts the ages returned by successive BufferAge calls.
// The last value repeats once the script is exhausted. Calling with no
// values reverts to "unsupported".
func (s *Surface) SetBufferAges(ages ...int) {
	s.ages = ages
	s.agesOK = len(ages) > 0
}

// FailNextSwap makes the next SwapBuffers return err.
func (s *Surface) FailNextSwap(err error) { s.swapErr = err }

// Emit delivers a window-system event to the registered callback.
func (s *Surface) Emit(ev backend.Event) {
	if s.cb != nil {
		s.cb(ev)
	}
}

func (s *Surface) MakeCurrent() error {
	if s.Destroyed {
		return backend.ErrSurfaceLost
	}
	s.Currents++
	return nil
}

func (s *Surface) SwapBuffers() error {
	if s.Destroyed {
		return backend.ErrSurfaceLost
	}
	if err := s.swapErr; err != nil {
		s.swapErr = nil
		return err
	}
	s.Swaps++
	return nil
}

func (s *Surface) BufferAge() (int, bool) {
	if !s.agesOK {
		return 0, false
	}
	age := s.ages[0]
	if len(s.ages) > 1 {
		s.ages = s.ages[1:]
	}
	return age, true
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(w, h int) {
	if w > 0 && h > 0 {
		s.width, s.height = w, h
	}
}

func (s *Surface) SetTitle(title string) { s.title = title }
func (s *Surface) Title() string         { return s.title }
func (s *Surface) Show()                 { s.Shown = true }
func (s *Surface) Hide()                 { s.Shown = false }

func (s *Surface) SetFullscreen(on bool) error {
	s.Fullscreen = on
	return nil
}

func (s *Surface) SetCursorVisible(visible bool) error {
	s.CursorShown = visible
	return nil
}

func (s *Surface) SetUserResizable(on bool) error {
	s.Resizable = on
	return nil
}

func (s *Surface) SetEventCallback(cb func(backend.Event)) { s.cb = cb }

func (s *Surface) Destroy() {
	s.Destroyed = true
	s.cb = nil
}
