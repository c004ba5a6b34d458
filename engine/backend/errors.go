package backend

import "errors"

var (
	// ErrNoBackendAvailable means no registered backend could create a
	// surface on this host. Fatal for the stage being constructed.
	ErrNoBackendAvailable = errors.New("backend: no backend available")

	// ErrUnsupported marks a window-manager feature the backend cannot
	// provide (buffer-age query, fullscreen, cursor hide, user resize).
	// Not a failure: callers fall back to documented defaults.
	ErrUnsupported = errors.New("backend: unsupported feature")

	// ErrSurfaceLost means the drawable or its GL context became invalid
	// mid-session. The owning stage transitions to unrealized.
	ErrSurfaceLost = errors.New("backend: surface lost")
)

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "backend: not registered: " + e.Name
}

// UnavailableError indicates a backend is registered but cannot run on
// this host.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "backend: unavailable: " + e.Name
}
