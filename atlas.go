package tilelight

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/fogmire/tilelight/internal/texel"
)

// ErrInvalidAtlas is returned when an atlas cannot be constructed.
var ErrInvalidAtlas = errors.New("tilelight: invalid atlas")

// Atlas samples a texture atlas at normalized coordinates.
//
// (0,0) is the top-left of the atlas and (1,1) the bottom-right. The
// compositor addresses tiles by integer atlas-cell coordinates scaled into
// this range by the atlas ratio; an Atlas implementation only needs to
// resolve the final normalized coordinate.
type Atlas interface {
	// Sample returns the color at (u, v). Out-of-range coordinates clamp
	// to the nearest edge texel.
	Sample(u, v float32) RGBA
}

// SamplingMode selects how an ImageAtlas resolves coordinates that fall
// between texels.
type SamplingMode uint8

const (
	// SamplingNearest selects the closest texel. This matches a GPU
	// nearest-filter sampler and is the default: tile art is authored per
	// texel and the compositor lands on exact texel centers at the native
	// cell size, so nothing is lost.
	SamplingNearest SamplingMode = iota

	// SamplingBilinear interpolates between the four surrounding texels.
	// Smoother when a pass samples tiles at non-native scales.
	SamplingBilinear

	// SamplingBicubic interpolates a 4x4 texel neighborhood with
	// Catmull-Rom weights. Highest quality, slowest.
	SamplingBicubic
)

// String returns a string representation of the sampling mode.
func (m SamplingMode) String() string {
	switch m {
	case SamplingNearest:
		return "Nearest"
	case SamplingBilinear:
		return "Bilinear"
	case SamplingBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// ImageAtlas is an Atlas backed by an RGBA pixel buffer.
//
// The atlas is divided into square cells of CellSize pixels; integer cell
// coordinates address tiles left to right, top to bottom. The buffer is
// copied at construction, so later changes to the source image do not
// affect sampling. Texel bytes are sampled as stored and treated as
// straight (non-premultiplied) alpha, matching the channel blend rule.
type ImageAtlas struct {
	width    int
	height   int
	pix      []uint8
	cellSize int
	mode     SamplingMode
}

// NewImageAtlas builds an atlas from an image whose tiles are cellSize
// pixels square.
func NewImageAtlas(img image.Image, cellSize int) (*ImageAtlas, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidAtlas)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidAtlas, cellSize)
	}
	if cellSize > w || cellSize > h {
		return nil, fmt.Errorf("%w: cell size %d exceeds atlas %dx%d", ErrInvalidAtlas, cellSize, w, h)
	}

	a := &ImageAtlas{
		width:    w,
		height:   h,
		cellSize: cellSize,
		mode:     SamplingNearest,
	}

	// Reuse the pixel data when it is already a tightly packed RGBA image;
	// otherwise convert through the standard draw path.
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == w*4 {
		a.pix = make([]uint8, len(rgba.Pix))
		copy(a.pix, rgba.Pix)
		return a, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	a.pix = rgba.Pix
	return a, nil
}

// Sample returns the atlas color at normalized (u, v) using the configured
// sampling mode.
func (a *ImageAtlas) Sample(u, v float32) RGBA {
	r, g, b, al := texel.Sample(a.pix, a.width, a.height, u, v, a.texelMode())
	return RGBA{R: r, G: g, B: b, A: al}
}

// texelMode maps the public sampling mode to the internal sampler's.
func (a *ImageAtlas) texelMode() texel.Mode {
	switch a.mode {
	case SamplingBilinear:
		return texel.ModeBilinear
	case SamplingBicubic:
		return texel.ModeBicubic
	default:
		return texel.ModeNearest
	}
}

// Ratio returns the scale factor from integer atlas-cell coordinates to
// normalized texture coordinates: cell size over atlas size, per axis.
func (a *ImageAtlas) Ratio() Vec2 {
	return Vec2{
		X: float32(a.cellSize) / float32(a.width),
		Y: float32(a.cellSize) / float32(a.height),
	}
}

// CellSize returns the tile edge length in pixels.
func (a *ImageAtlas) CellSize() int {
	return a.cellSize
}

// Columns returns how many tile columns the atlas holds.
func (a *ImageAtlas) Columns() int {
	return a.width / a.cellSize
}

// Rows returns how many tile rows the atlas holds.
func (a *ImageAtlas) Rows() int {
	return a.height / a.cellSize
}

// Width returns the atlas width in pixels.
func (a *ImageAtlas) Width() int {
	return a.width
}

// Height returns the atlas height in pixels.
func (a *ImageAtlas) Height() int {
	return a.height
}

// Pix returns the raw texels, tightly packed RGBA. GPU backends upload
// this buffer directly; callers must not mutate it.
func (a *ImageAtlas) Pix() []uint8 {
	return a.pix
}

// SetSamplingMode changes the sampling mode. Not safe to call while a
// render pass is using the atlas.
func (a *ImageAtlas) SetSamplingMode(m SamplingMode) {
	a.mode = m
}

// SamplingMode returns the current sampling mode.
func (a *ImageAtlas) SamplingMode() SamplingMode {
	return a.mode
}

// Ensure ImageAtlas implements Atlas.
var _ Atlas = (*ImageAtlas)(nil)

// ResampleAtlas rescales a tile atlas so that each cell ends up
// dstCellSize pixels square, preserving the tile grid. The sampling mode
// picks the interpolator: nearest keeps hard pixel art edges, bilinear and
// bicubic trade sharpness for smoothness.
func ResampleAtlas(img image.Image, srcCellSize, dstCellSize int, m SamplingMode) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidAtlas)
	}
	if srcCellSize <= 0 || dstCellSize <= 0 {
		return nil, fmt.Errorf("%w: cell sizes %d -> %d", ErrInvalidAtlas, srcCellSize, dstCellSize)
	}

	bounds := img.Bounds()
	dw := bounds.Dx() * dstCellSize / srcCellSize
	dh := bounds.Dy() * dstCellSize / srcCellSize
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	var interp xdraw.Interpolator
	switch m {
	case SamplingBilinear:
		interp = xdraw.BiLinear
	case SamplingBicubic:
		interp = xdraw.CatmullRom
	default:
		interp = xdraw.NearestNeighbor
	}
	interp.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)

	return dst, nil
}
