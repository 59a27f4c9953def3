package backend

import (
	"sort"
	"sync"

	"github.com/fogmire/tilelight"
)

// BackendFactory builds a fresh backend instance. Factories are registered
// from init functions, so a blank import is all it takes to make a backend
// selectable.
type BackendFactory func() RenderBackend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// selectionOrder ranks backends for Default. The wgpu backend moves the
// per-pixel loop off the CPU when a device is present and mirrors the
// software pass bit for bit when one is not, so preferring it is safe.
var selectionOrder = []string{BackendWgpu, BackendSoftware}

// Register makes a backend selectable under the given name, replacing any
// previous registration. Backend packages call this from init.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	backends[name] = factory
	registryMu.Unlock()
}

// Unregister removes a backend. Tests use this to simulate builds without
// a given backend.
func Unregister(name string) {
	registryMu.Lock()
	delete(backends, name)
	registryMu.Unlock()
}

// Available returns the registered backend names in lexical order.
func Available() []string {
	registryMu.RLock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	registryMu.RUnlock()

	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend is selectable under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get builds a backend by name, or nil when none is registered under it.
// The registry lock is not held while the factory runs.
func Get(name string) RenderBackend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default builds the highest-ranked registered backend. Names outside the
// ranking are considered last, in lexical order, so the pick stays
// deterministic. Returns nil when the registry is empty.
func Default() RenderBackend {
	for _, name := range selectionOrder {
		if b := Get(name); b != nil {
			return b
		}
	}
	for _, name := range Available() {
		if b := Get(name); b != nil {
			return b
		}
	}
	return nil
}

// MustDefault is Default for setup paths that cannot proceed without a
// backend; it panics instead of returning nil.
func MustDefault() RenderBackend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault picks the default backend and initializes it. Callers that
// do not care which backend runs use this as their single entry point.
func InitDefault() (RenderBackend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}

	tilelight.Logger().Info("backend: selected", "name", b.Name())
	return b, nil
}
