package tilelight

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Default: one worker per CPU, 48px cells
//	r := tilelight.NewRenderer()
//
//	// Single-threaded, 16px cells
//	r := tilelight.NewRenderer(tilelight.WithWorkers(1), tilelight.WithCellSize(16))
type RendererOption func(*Renderer)

// WithWorkers sets the number of worker goroutines for parallel shading.
// If n <= 0, GOMAXPROCS is used. Output is byte-identical for any worker
// count; this only trades latency for parallelism.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.workers = n
	}
}

// WithCellSize sets how many output pixels each grid cell covers per edge.
// The default is DefaultCellSize. Values below 1 are ignored.
func WithCellSize(px int) RendererOption {
	return func(r *Renderer) {
		if px >= 1 {
			r.cellSize = px
		}
	}
}
