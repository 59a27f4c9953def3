package tilelight

import "testing"

// benchScene builds a w x h grid of mixed cells over the shared test atlas:
// every cell carries a base tile, a third carry an overlay, diagonal stripes
// are diminished, and a band near the bottom is remembered.
func benchScene(b *testing.B, w, h int) (*Compositor, *Grid) {
	b.Helper()
	atlas, err := NewImageAtlas(testAtlasImage(), 2)
	if err != nil {
		b.Fatalf("NewImageAtlas() error = %v", err)
	}
	comp, err := NewCompositor(DefaultLayout(), atlas, atlas.Ratio())
	if err != nil {
		b.Fatalf("NewCompositor() error = %v", err)
	}
	comp.SetViewer(V2(float32(w)/2, float32(h)/2))

	layout := comp.Layout()
	grid := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := grid.Cell(x, y)
			layout.SetChannel(cell, 0, x%2, y%2, (x+y)%3 == 0)
			if (x+y)%3 == 1 {
				layout.SetChannel(cell, 1, 1, 1, false)
			}
			layout.SetVisible(cell, y < h*3/4)
		}
	}
	return comp, grid
}

// BenchmarkShade benchmarks the per-sample core for typical cell shapes.
func BenchmarkShade(b *testing.B) {
	comp, grid := benchScene(b, 8, 8)

	cells := []struct {
		name string
		pos  Vec2
	}{
		{"one_channel", V2(2.5, 0.5)},
		{"two_channels", V2(1.5, 0.5)},
		{"diminished", V2(0.5, 0.5)},
		{"remembered", V2(1.5, 7.5)},
	}

	for _, c := range cells {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = comp.Shade(grid, c.pos)
			}
		})
	}
}

// BenchmarkRender benchmarks full passes at several target sizes.
func BenchmarkRender(b *testing.B) {
	sizes := []struct {
		name     string
		cells    int
		cellSize int
	}{
		{"16x16cells_16px", 16, 16},
		{"32x32cells_16px", 32, 16},
		{"16x16cells_48px", 16, 48},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			comp, grid := benchScene(b, size.cells, size.cells)
			r := NewRenderer(WithCellSize(size.cellSize))
			defer r.Close()
			px := size.cells * size.cellSize
			dst := NewPixmap(px, px)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := r.Render(comp, grid, dst); err != nil {
					b.Fatalf("Render() error = %v", err)
				}
			}
			b.SetBytes(int64(px*px) * 4)
		})
	}
}

// BenchmarkRenderWorkers benchmarks one scene across worker counts.
func BenchmarkRenderWorkers(b *testing.B) {
	comp, grid := benchScene(b, 24, 24)

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(map[int]string{1: "1_worker", 2: "2_workers", 4: "4_workers", 8: "8_workers"}[workers], func(b *testing.B) {
			r := NewRenderer(WithCellSize(16), WithWorkers(workers))
			defer r.Close()
			dst := NewPixmap(24*16, 24*16)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := r.Render(comp, grid, dst); err != nil {
					b.Fatalf("Render() error = %v", err)
				}
			}
			b.SetBytes(int64(24*16*24*16) * 4)
		})
	}
}

// BenchmarkRenderBlit benchmarks the atlas passthrough pass.
func BenchmarkRenderBlit(b *testing.B) {
	comp, _ := benchScene(b, 4, 4)
	r := NewRenderer()
	defer r.Close()
	dst := NewPixmap(512, 512)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.RenderBlit(comp, dst)
	}
	b.SetBytes(512 * 512 * 4)
}

// BenchmarkAtlasSample benchmarks one texture fetch per sampling mode.
func BenchmarkAtlasSample(b *testing.B) {
	atlas, err := NewImageAtlas(testAtlasImage(), 2)
	if err != nil {
		b.Fatalf("NewImageAtlas() error = %v", err)
	}

	modes := []struct {
		name string
		mode SamplingMode
	}{
		{"nearest", SamplingNearest},
		{"bilinear", SamplingBilinear},
		{"bicubic", SamplingBicubic},
	}

	for _, m := range modes {
		b.Run(m.name, func(b *testing.B) {
			atlas.SetSamplingMode(m.mode)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = atlas.Sample(0.37, 0.61)
			}
		})
	}
}
