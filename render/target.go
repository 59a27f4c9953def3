package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// RenderTarget is a destination for compositing passes.
//
// A target offers CPU access (Pixels), GPU access (TextureView), or both;
// a backend picks whichever it can serve. All tilelight targets are 8-bit
// RGBA.
type RenderTarget interface {
	// Width and Height are the target dimensions in pixels.
	Width() int
	Height() int

	// Format identifies the pixel format.
	Format() gputypes.TextureFormat

	// TextureView exposes the target to GPU backends. CPU-only targets
	// return nil.
	TextureView() TextureView

	// Pixels exposes the raw bytes, four per pixel, row by row. GPU-only
	// targets return nil.
	Pixels() []byte

	// Stride is the byte distance between rows. Backends must honor it;
	// wrapped images may pad rows beyond Width*4.
	Stride() int
}

// PixmapTarget keeps the pass output in an *image.RGBA on the CPU. The
// software backend writes it directly and the wgpu backend reads frames
// back into it.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget allocates a CPU target of the given size.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage adopts img without copying; passes write into
// the caller's pixels.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Rect.Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Rect.Dy()
}

// Format returns the pixel format, always RGBA8.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil; the pixels live in host memory.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns the backing bytes of the wrapped image.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the wrapped image's row stride in bytes.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the wrapped *image.RGBA, sharing memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the whole target with one color.
func (t *PixmapTarget) Clear(c color.Color) {
	b := t.img.Rect
	if b.Empty() {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)

	// Paint the first row by hand, then replicate it downward.
	first := t.img.PixOffset(b.Min.X, b.Min.Y)
	row := t.img.Pix[first : first+b.Dx()*4]
	for x := 0; x < len(row); x += 4 {
		row[x+0] = rgba.R
		row[x+1] = rgba.G
		row[x+2] = rgba.B
		row[x+3] = rgba.A
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		off := t.img.PixOffset(b.Min.X, y)
		copy(t.img.Pix[off:off+len(row)], row)
	}
}

// SetPixel writes one pixel. Out-of-bounds coordinates are ignored.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel reads one pixel; out-of-bounds coordinates read as zero.
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}

// Resize replaces the backing image with a fresh one of the given size.
// Old contents are dropped, not scaled.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ RenderTarget = (*PixmapTarget)(nil)
