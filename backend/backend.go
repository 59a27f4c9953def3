package backend

import (
	"errors"

	"github.com/fogmire/tilelight"
	"github.com/fogmire/tilelight/render"
)

// RenderBackend runs the per-cell compositing pass against a render
// target. Implementations register themselves with Register; callers pick
// one with Get or let Default choose.
//
// Whatever executes the pass, the arithmetic is fixed: two backends given
// the same compositor, grid, and target dimensions write the same bytes.
type RenderBackend interface {
	// Name identifies the backend, e.g. "software" or "wgpu".
	Name() string

	// Init acquires whatever the backend needs to render. Call it once,
	// before the first pass.
	Init() error

	// Close releases the backend's resources. No calls after Close.
	Close()

	// Render composites the grid into the target.
	Render(target render.RenderTarget, c *tilelight.Compositor, g *tilelight.Grid) error

	// Blit copies the compositor's atlas into the target without
	// consulting a grid. Used for debug views of the atlas itself.
	Blit(target render.RenderTarget, c *tilelight.Compositor) error
}

var (
	// ErrBackendNotAvailable reports that no backend by that name is
	// registered, or that none could be initialized.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized reports a Render or Blit before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)
