package backend

// Event is a window-system notification delivered to a surface's owner.
type Event interface{ isEvent() }

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct{ W, H int }

func (ResizeEvent) isEvent() {}

// FocusEvent reports keyboard focus entering or leaving the window.
type FocusEvent struct{ Focused bool }

func (FocusEvent) isEvent() {}

// FullscreenEvent reports an asynchronous fullscreen state change, e.g.
// applied by the window manager rather than the application.
type FullscreenEvent struct{ Fullscreen bool }

func (FullscreenEvent) isEvent() {}

// CloseEvent reports a window-manager delete request.
type CloseEvent struct{}

func (CloseEvent) isEvent() {}

// KeyEvent is a raw key transition.
type KeyEvent struct {
	Key  Key
	Down bool
	Mods Mod
}

func (KeyEvent) isEvent() {}

// PointerEvent is a pointer motion or button transition in surface pixels.
type PointerEvent struct {
	X, Y   float64
	Button int // 0 for plain motion
	Down   bool
}

func (PointerEvent) isEvent() {}

// Key enumerates the keys the toolkit cares about; everything else arrives
// as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyF11
	KeyC
	KeyQ
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
