package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory instantiates a backend. Called at most once; the instance is
// cached for the life of the process since a backend owns global platform
// state (one event queue, one GL library binding).
type Factory func() (Backend, error)

type entry struct {
	name      string
	priority  int
	factory   Factory
	available func() bool
	cached    Backend
	initErr   error
	once      sync.Once
}

var registry = struct {
	mu      sync.Mutex
	entries map[string]*entry
}{entries: make(map[string]*entry)}

// Register adds a backend under name. Higher priority wins during
// auto-selection: window-system backends register around 100, headless and
// software fallbacks around 10. A nil available means always available.
// Registering an existing name replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.entries[name] = &entry{
		name:      name,
		priority:  priority,
		factory:   factory,
		available: available,
	}
}

// Names returns registered backend names, highest priority first.
func Names() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return sortedLocked(false)
}

// Available returns the names of backends that can run on this host,
// highest priority first.
func Available() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return sortedLocked(true)
}

// Open returns the named backend, instantiating it on first use.
func Open(name string) (Backend, error) {
	registry.mu.Lock()
	e, ok := registry.entries[name]
	registry.mu.Unlock()
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !e.available() {
		return nil, &UnavailableError{Name: name}
	}
	e.once.Do(func() {
		e.cached, e.initErr = e.factory()
	})
	if e.initErr != nil {
		return nil, fmt.Errorf("backend %q: %w", name, e.initErr)
	}
	return e.cached, nil
}

// Best opens the highest-priority available backend, falling through on
// instantiation failure.
func Best() (Backend, error) {
	var lastErr error
	for _, name := range Available() {
		b, err := Open(name)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

func sortedLocked(onlyAvailable bool) []string {
	type cand struct {
		name     string
		priority int
	}
	cands := make([]cand, 0, len(registry.entries))
	for name, e := range registry.entries {
		if onlyAvailable && !e.available() {
			continue
		}
		cands = append(cands, cand{name, e.priority})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].priority > cands[j].priority })
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.name
	}
	return names
}
