// Package backend defines the contract between a stage and the windowing
// system: native surface lifetime, GL context currency, buffer swaps and
// the window-system event stream. Implementations register themselves so
// the highest-priority backend available on the host is picked at runtime.
package backend

// Options configures surface creation.
type Options struct {
	Title     string
	Width     int
	Height    int
	VSync     bool
	Resizable bool
}

// Surface is one native drawable plus its GL context binding. A surface is
// exclusively owned by the stage that created it and must only be used
// from the render thread.
type Surface interface {
	// MakeCurrent binds the surface's GL context to the calling thread.
	// Required before any GL call on behalf of this surface; a no-op if
	// already current.
	MakeCurrent() error

	// SwapBuffers presents the back buffer. May block on vertical sync.
	// A failure means the drawable or context was lost.
	SwapBuffers() error

	// BufferAge reports how many frames ago the current back buffer was
	// last fully fresh. ok=false means the backend cannot report ages and
	// callers must assume plain double buffering. age 0 with ok=true means
	// the buffer contents are undefined.
	BufferAge() (age int, ok bool)

	Size() (w, h int)
	Resize(w, h int)
	SetTitle(title string)
	Show()
	Hide()

	// Window-manager features. Implementations without support return
	// ErrUnsupported, which callers swallow.
	SetFullscreen(on bool) error
	SetCursorVisible(visible bool) error
	SetUserResizable(on bool) error

	// SetEventCallback registers the receiver for window-system events.
	SetEventCallback(cb func(Event))

	// Destroy releases the drawable and context. The surface is unusable
	// afterwards.
	Destroy()
}

// Backend creates surfaces and pumps the platform event queue.
type Backend interface {
	Name() string
	CreateSurface(opts Options) (Surface, error)

	// PollEvents drains the platform queue, emitting events through the
	// callbacks registered on this backend's surfaces.
	PollEvents()
}
