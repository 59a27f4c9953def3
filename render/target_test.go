package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"one cell", 48, 48},
		{"map sized", 960, 960},
		{"uneven", 100, 37},
		{"single row", 256, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)

			if target.Width() != tt.width || target.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d",
					target.Width(), target.Height(), tt.width, tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.TextureView() != nil {
				t.Error("CPU target reports a texture view")
			}
			if got, want := len(target.Pixels()), tt.width*tt.height*4; got != want {
				t.Errorf("len(Pixels()) = %d, want %d", got, want)
			}
			if target.Stride() != tt.width*4 {
				t.Errorf("Stride() = %d, want %d", target.Stride(), tt.width*4)
			}
		})
	}
}

func TestPixmapTargetAdoptsImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	img.SetRGBA(10, 20, color.RGBA{R: 255, A: 255})

	target := NewPixmapTargetFromImage(img)

	if target.Width() != 64 || target.Height() != 32 {
		t.Fatalf("size = %dx%d, want 64x32", target.Width(), target.Height())
	}

	// No copy: the pre-existing pixel shows through, and writes through the
	// target land in the caller's image.
	if got := target.GetPixel(10, 20).(color.RGBA); got.R != 255 {
		t.Errorf("adopted pixel = %v, want red", got)
	}
	target.SetPixel(0, 0, color.RGBA{G: 255, A: 255})
	if img.RGBAAt(0, 0).G != 255 {
		t.Error("write through target did not reach the adopted image")
	}
}

// A view into a larger image has a stride wider than its own rows and a
// nonzero origin. Clear must fill exactly the view.
func TestPixmapTargetPaddedStride(t *testing.T) {
	parent := image.NewRGBA(image.Rect(0, 0, 16, 8))
	view := parent.SubImage(image.Rect(4, 2, 12, 6)).(*image.RGBA)
	target := NewPixmapTargetFromImage(view)

	if target.Width() != 8 || target.Height() != 4 {
		t.Fatalf("view size = %dx%d, want 8x4", target.Width(), target.Height())
	}
	if target.Stride() <= target.Width()*4 {
		t.Fatalf("Stride() = %d, expected padding beyond %d", target.Stride(), target.Width()*4)
	}

	target.Clear(color.RGBA{R: 9, G: 8, B: 7, A: 255})

	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 4 && x < 12 && y >= 2 && y < 6
			got := parent.RGBAAt(x, y)
			if inside && got != (color.RGBA{R: 9, G: 8, B: 7, A: 255}) {
				t.Fatalf("view pixel (%d, %d) = %v, not cleared", x, y, got)
			}
			if !inside && got != (color.RGBA{}) {
				t.Fatalf("pixel (%d, %d) outside the view = %v, clobbered", x, y, got)
			}
		}
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(7, 5)
	target.Clear(color.RGBA{R: 1, G: 2, B: 3, A: 4})

	pix := target.Pixels()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 1 || pix[i+1] != 2 || pix[i+2] != 3 || pix[i+3] != 4 {
			t.Fatalf("byte %d: pixel = %v, want {1 2 3 4}", i, pix[i:i+4])
		}
	}
}

func TestPixmapTargetSetGetPixel(t *testing.T) {
	target := NewPixmapTarget(48, 48)

	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	target.SetPixel(47, 0, want)

	if got := target.GetPixel(47, 0).(color.RGBA); got != want {
		t.Errorf("GetPixel(47, 0) = %v, want %v", got, want)
	}

	// Out of bounds: writes vanish, reads come back zero.
	target.SetPixel(48, 48, want)
	if got := target.GetPixel(48, 48).(color.RGBA); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds GetPixel = %v, want zero", got)
	}
}

func TestPixmapTargetResizeDropsContents(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	target.Clear(color.White)

	target.Resize(20, 5)

	if target.Width() != 20 || target.Height() != 5 {
		t.Fatalf("size after Resize = %dx%d, want 20x5", target.Width(), target.Height())
	}
	if got := target.GetPixel(3, 3).(color.RGBA); got != (color.RGBA{}) {
		t.Errorf("pixel after Resize = %v, want zero", got)
	}
}

func TestPixmapTargetImageSharesMemory(t *testing.T) {
	target := NewPixmapTarget(6, 6)

	img := target.Image()
	img.SetRGBA(2, 3, color.RGBA{B: 255, A: 255})

	if got := target.GetPixel(2, 3).(color.RGBA); got.B != 255 {
		t.Errorf("pixel via target = %v after write via Image()", got)
	}

	raw := target.Pixels()
	raw[0] = 77
	if img.Pix[0] != 77 {
		t.Error("Pixels() does not alias the image bytes")
	}
}
