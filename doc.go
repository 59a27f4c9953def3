// Package tilelight composites tile-based visibility grids for Go.
//
// # Overview
//
// tilelight is a Pure Go compositing library for grid-based renderers that
// track per-cell visibility (roguelike fog-of-war). Each cell of a grid packs
// a status word and per-channel texture-atlas coordinates into four float32
// slots; tilelight decodes the cell, layers its channels in order, applies
// distance-based lighting, and darkens cells that are only remembered.
//
// # Quick Start
//
//	import "github.com/fogmire/tilelight"
//
//	layout := tilelight.DefaultLayout()
//	grid := tilelight.NewGrid(20, 20)
//	atlas, _ := tilelight.NewImageAtlas(tilesImg, 48)
//
//	comp, _ := tilelight.NewCompositor(layout, atlas, atlas.Ratio())
//	comp.SetViewer(tilelight.V2(10, 10))
//
//	r := tilelight.NewRenderer()
//	defer r.Close()
//
//	dst := tilelight.NewPixmap(960, 960)
//	r.Render(comp, grid, dst)
//	dst.SavePNG("frame.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Compositor, Grid, Cell, Layout, Atlas, Renderer, Pixmap
//   - Internal: texel (atlas sampling), parallel (worker pool)
//   - Backends: software (default), wgpu (WebGPU compute via gogpu/wgpu)
//
// # Coordinate System
//
// Cell space places (0,0) at the top-left of the grid; X increases right and
// Y increases down. The integer part of a position selects a cell, the
// fractional part addresses the interior of its tile.
//
// # Determinism
//
// Shading is a pure function of the cell, the position, and the viewer.
// Rendering the same inputs produces byte-identical output for any worker
// count, and the arithmetic matches a GPU evaluation of the same formulas.
package tilelight

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
