package backend

import (
	"github.com/fogmire/tilelight"
	"github.com/fogmire/tilelight/render"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
	// BackendWgpu is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendWgpu = "wgpu"
)

// SoftwareBackend is a CPU-based compositing backend.
// It wraps a tilelight.Renderer and copies its output into the
// render target, honoring the target's row stride.
type SoftwareBackend struct {
	initialized bool
	opts        []tilelight.RendererOption
	renderer    *tilelight.Renderer
	scratch     *tilelight.Pixmap
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software compositing backend.
// Options are applied to the renderer created on first use.
func NewSoftwareBackend(opts ...tilelight.RendererOption) *SoftwareBackend {
	return &SoftwareBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	if b.renderer != nil {
		b.renderer.Close()
		b.renderer = nil
	}
	b.scratch = nil
	b.initialized = false
}

// Render composites the grid into the target.
// The pass runs on the CPU through a cached tilelight.Renderer.
func (b *SoftwareBackend) Render(target render.RenderTarget, c *tilelight.Compositor, g *tilelight.Grid) error {
	if target == nil || c == nil || g == nil {
		return nil
	}

	pm := b.scratchFor(target)
	if err := b.renderer.Render(c, g, pm); err != nil {
		return err
	}

	copyPixels(target, pm)
	return nil
}

// Blit copies the compositor's atlas into the target without
// consulting a grid.
func (b *SoftwareBackend) Blit(target render.RenderTarget, c *tilelight.Compositor) error {
	if target == nil || c == nil {
		return nil
	}

	pm := b.scratchFor(target)
	b.renderer.RenderBlit(c, pm)

	copyPixels(target, pm)
	return nil
}

// SetCellSize overrides the edge length of one grid cell on the target,
// in pixels. Takes effect on the next Render; values below 1 are ignored.
func (b *SoftwareBackend) SetCellSize(px int) {
	if px < 1 {
		return
	}
	b.opts = append(b.opts, tilelight.WithCellSize(px))
	if b.renderer != nil {
		b.renderer.Close()
		b.renderer = nil
	}
}

// Renderer returns the underlying renderer for advanced usage.
// Returns nil if nothing has been rendered yet.
func (b *SoftwareBackend) Renderer() *tilelight.Renderer {
	return b.renderer
}

// scratchFor returns the cached scratch pixmap sized for the target,
// creating the renderer and pixmap as needed.
func (b *SoftwareBackend) scratchFor(target render.RenderTarget) *tilelight.Pixmap {
	if b.renderer == nil {
		b.renderer = tilelight.NewRenderer(b.opts...)
	}

	w := target.Width()
	h := target.Height()
	if b.scratch == nil || b.scratch.Width() != w || b.scratch.Height() != h {
		b.scratch = tilelight.NewPixmap(w, h)
	}
	return b.scratch
}

// copyPixels copies a pixmap into the target row by row.
// The pixmap is tightly packed; the target may carry extra stride.
func copyPixels(target render.RenderTarget, pm *tilelight.Pixmap) {
	dst := target.Pixels()
	if dst == nil {
		return
	}

	src := pm.Data()
	stride := target.Stride()
	rowLen := pm.Width() * 4

	for y := 0; y < pm.Height(); y++ {
		copy(dst[y*stride:y*stride+rowLen], src[y*rowLen:(y+1)*rowLen])
	}
}
