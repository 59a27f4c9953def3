package tilelight

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is a width*height RGBA8 pixel buffer, 4 bytes per pixel in row
// order. It is where the compositor's float32 colors become bytes:
// components are scaled by 255 and rounded to nearest, the conversion a
// GPU applies when storing to an RGBA8 unorm target. Nothing else in the
// library quantizes.
type Pixmap struct {
	w, h int
	pix  []uint8
}

// NewPixmap creates a transparent black pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{w: width, h: height, pix: make([]uint8, width*height*4)}
}

// FromImage copies an image into a new pixmap, dropping its origin offset.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pm.SetPixel(x-b.Min.X, y-b.Min.Y, FromColor(img.At(x, y)))
		}
	}
	return pm
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.w }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.h }

// Data returns the raw pixel bytes. The slice aliases the pixmap.
func (p *Pixmap) Data() []uint8 { return p.pix }

// SetPixel writes one pixel. Writes outside the buffer are dropped.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if uint(x) >= uint(p.w) || uint(y) >= uint(p.h) {
		return
	}
	px := p.pix[(y*p.w+x)*4:]
	px[0] = quantize(c.R)
	px[1] = quantize(c.G)
	px[2] = quantize(c.B)
	px[3] = quantize(c.A)
}

// GetPixel reads one pixel. Reads outside the buffer return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if uint(x) >= uint(p.w) || uint(y) >= uint(p.h) {
		return Transparent
	}
	px := p.pix[(y*p.w+x)*4:]
	return RGBA{
		R: float32(px[0]) / 255,
		G: float32(px[1]) / 255,
		B: float32(px[2]) / 255,
		A: float32(px[3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	if len(p.pix) == 0 {
		return
	}
	p.pix[0] = quantize(c.R)
	p.pix[1] = quantize(c.G)
	p.pix[2] = quantize(c.B)
	p.pix[3] = quantize(c.A)
	// Double the filled prefix until it covers the buffer.
	for n := 4; n < len(p.pix); n *= 2 {
		copy(p.pix[n:], p.pix[:n])
	}
}

// quantize converts one [0, 1] component to a byte, rounding to nearest.
func quantize(x float32) uint8 {
	return uint8(clamp255(x*255) + 0.5)
}

// ToImage copies the pixmap into a fresh image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.w, p.h))
	copy(img.Pix, p.pix)
	return img
}

// SavePNG writes the pixmap to path as a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.w, p.h)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
