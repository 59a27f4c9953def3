package tilelight

import "errors"

// RememberedDarken is the darkening coefficient applied to the RGB of cells
// that are remembered but not currently visible.
const RememberedDarken float32 = 0.2

// ErrNoAtlas is returned when a compositor is constructed without an atlas.
var ErrNoAtlas = errors.New("tilelight: compositor needs an atlas")

// Compositor turns one cell-space position into one color.
//
// It is the per-sample core of the library: decode the cell under the
// position, layer its present channels in ascending order, light diminished
// channels by distance from the viewer, and darken the result when the cell
// is merely remembered. Shading reads only the compositor's fields, the
// grid, and the atlas, so any number of goroutines may shade concurrently
// as long as nobody mutates those in between.
type Compositor struct {
	layout Layout
	atlas  Atlas
	ratio  Vec2
	viewer Vec2
}

// NewCompositor validates the layout once and builds a compositor around
// an atlas and its coordinate ratio. The ratio converts integer atlas-cell
// coordinates to normalized texture coordinates; ImageAtlas.Ratio supplies
// it for image-backed atlases.
func NewCompositor(layout Layout, atlas Atlas, ratio Vec2) (*Compositor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if atlas == nil {
		return nil, ErrNoAtlas
	}
	return &Compositor{
		layout: layout,
		atlas:  atlas,
		ratio:  ratio,
	}, nil
}

// SetViewer moves the lighting origin, in cell units.
// Call between passes, not while one is running.
func (c *Compositor) SetViewer(v Vec2) {
	c.viewer = v
}

// Viewer returns the current lighting origin.
func (c *Compositor) Viewer() Vec2 {
	return c.viewer
}

// Layout returns the cell layout the compositor decodes with.
func (c *Compositor) Layout() Layout {
	return c.layout
}

// Ratio returns the atlas coordinate ratio.
func (c *Compositor) Ratio() Vec2 {
	return c.ratio
}

// Atlas returns the atlas the compositor samples.
func (c *Compositor) Atlas() Atlas {
	return c.atlas
}

// Shade composites the cell under pos and returns its color.
//
// pos must lie inside the grid; see Grid.CellIndex for the contract. Shade
// itself never fails: all configuration errors were caught at construction.
func (c *Compositor) Shade(g *Grid, pos Vec2) RGBA {
	return c.ShadeCell(g.CellAt(pos), pos)
}

// ShadeCell composites a single cell record as if it were the cell under
// pos. Drivers that keep cells outside a Grid (GPU buffers, custom storage)
// use this directly; Shade is a grid lookup plus this call.
func (c *Compositor) ShadeCell(cell Cell, pos Vec2) RGBA {
	status := c.layout.Status(cell)
	if c.layout.IsVisible(status) {
		return c.resolve(cell, status, pos)
	}
	// Remembered cells run the same channel resolution, diminish flags
	// included, and darken the final composite.
	return c.resolve(cell, status, pos).Darken(RememberedDarken)
}

// resolve layers the cell's channels in ascending index order.
//
// A channel with a cleared present flag contributes nothing, whatever its
// coordinate bits hold. A set diminish flag scales the sample's RGB by the
// lighting intensity at pos; the intensity is evaluated inside the loop,
// once per diminished channel, to keep the arithmetic identical to the GPU
// kernel.
func (c *Compositor) resolve(cell Cell, status uint32, pos Vec2) RGBA {
	var acc RGBA
	f := pos.Fract()

	for ch := 0; ch < c.layout.NumChannels; ch++ {
		if !c.layout.ChannelPresent(status, ch) {
			continue
		}

		ax, ay := c.layout.ChannelCoords(cell, ch)
		u := (float32(ax) + f.X) * c.ratio.X
		v := (float32(ay) + f.Y) * c.ratio.Y
		sample := c.atlas.Sample(u, v)

		if c.layout.ChannelDiminished(status, ch) {
			sample = sample.Scale(Intensity(pos.Sub(c.viewer).LengthSq()))
		}

		acc = acc.Blend(sample)
	}

	return acc
}

// Blit returns the atlas sample at normalized (u, v) unchanged: no cell
// decoding, no lighting, no darkening. It is the passthrough counterpart to
// Shade, used to draw a texture straight to a target.
func (c *Compositor) Blit(u, v float32) RGBA {
	return c.atlas.Sample(u, v)
}
