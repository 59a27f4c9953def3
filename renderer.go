package tilelight

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/fogmire/tilelight/internal/parallel"
)

// DefaultCellSize is the default edge length of one grid cell in output
// pixels, matching the tile art size of the reference frontend.
const DefaultCellSize = 48

// ErrGridCoverage is returned when a target reaches cells the grid does not
// have. The shading core does no bounds checking, so the renderer verifies
// coverage once per pass instead.
var ErrGridCoverage = errors.New("tilelight: grid does not cover target")

// Renderer drives full-target render passes over a cell grid.
//
// Every output pixel is shaded independently at its center: pixel (px, py)
// maps to cell-space position ((px+0.5)/cellSize, (py+0.5)/cellSize), the
// same interpolation a GPU would feed a fragment evaluation. Rows are
// handed out to a worker pool one band at a time; because shading is pure,
// the output is byte-identical for any worker count.
//
// A Renderer owns its worker pool. Close releases it; the renderer must not
// be used afterwards.
type Renderer struct {
	pool     *parallel.WorkerPool
	workers  int
	cellSize int

	stats     RenderStats
	statsMu   sync.RWMutex
	lastFrame time.Time
}

// RenderStats contains performance statistics for a render operation.
type RenderStats struct {
	// PixelsShaded is the number of output pixels written.
	PixelsShaded int

	// CellsCovered is the number of grid cells the target spanned.
	CellsCovered int

	// TimeShade is the time spent in parallel shading.
	TimeShade time.Duration

	// TimeTotal is the wall time of the whole pass.
	TimeTotal time.Duration

	// Frame timing across consecutive passes.
	FrameTime time.Duration
	FPS       float64
}

// NewRenderer creates a renderer. Options configure the worker count and
// the cell size; the defaults are one worker per CPU and DefaultCellSize.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		workers:  runtime.GOMAXPROCS(0),
		cellSize: DefaultCellSize,
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}

	r.pool = parallel.NewWorkerPool(r.workers)
	return r
}

// Render shades the grid into dst through the compositor.
// For cancellable rendering, use RenderWithContext.
func (r *Renderer) Render(c *Compositor, g *Grid, dst *Pixmap) error {
	return r.RenderWithContext(context.Background(), c, g, dst)
}

// RenderWithContext shades the grid into dst with cancellation support.
//
// Cancellation is checked between row bands, never inside the per-sample
// core, so a canceled pass returns ctx.Err() with the target partially
// written. A nil compositor, grid, or target is a no-op.
func (r *Renderer) RenderWithContext(ctx context.Context, c *Compositor, g *Grid, dst *Pixmap) error {
	if c == nil || g == nil || dst == nil {
		return nil
	}

	if err := r.checkCoverage(g, dst); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	startTotal := time.Now()
	width, height := dst.Width(), dst.Height()
	invCell := 1 / float32(r.cellSize)

	bands := rowBands(height, r.workers*4)
	work := make([]func(), len(bands))
	startShade := time.Now()
	for i, band := range bands {
		y0, y1 := band[0], band[1]
		work[i] = func() {
			select {
			case <-ctx.Done():
				return
			default:
			}
			for py := y0; py < y1; py++ {
				cy := (float32(py) + 0.5) * invCell
				for px := 0; px < width; px++ {
					cx := (float32(px) + 0.5) * invCell
					dst.SetPixel(px, py, c.Shade(g, V2(cx, cy)))
				}
			}
		}
	}
	r.pool.ExecuteAll(work)
	shadeTime := time.Since(startShade)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cellsX := (width + r.cellSize - 1) / r.cellSize
	cellsY := (height + r.cellSize - 1) / r.cellSize
	r.updateStats(width*height, cellsX*cellsY, shadeTime, time.Since(startTotal))

	Logger().Debug("tilelight: pass complete",
		"pixels", width*height,
		"cells", cellsX*cellsY,
		"workers", r.workers,
		"elapsed", time.Since(startTotal))

	return nil
}

// RenderBlit copies the compositor's atlas to dst, sampling each pixel
// center across the full normalized coordinate range. No cells are decoded
// and no lighting is applied.
func (r *Renderer) RenderBlit(c *Compositor, dst *Pixmap) {
	if c == nil || dst == nil {
		return
	}

	width, height := dst.Width(), dst.Height()
	invW := 1 / float32(width)
	invH := 1 / float32(height)

	bands := rowBands(height, r.workers*4)
	work := make([]func(), len(bands))
	for i, band := range bands {
		y0, y1 := band[0], band[1]
		work[i] = func() {
			for py := y0; py < y1; py++ {
				v := (float32(py) + 0.5) * invH
				for px := 0; px < width; px++ {
					u := (float32(px) + 0.5) * invW
					dst.SetPixel(px, py, c.Blit(u, v))
				}
			}
		}
	}
	r.pool.ExecuteAll(work)
}

// checkCoverage verifies that every pixel center in dst maps to a cell the
// grid actually has. This is the single bounds check standing in for the
// per-sample check the core omits.
func (r *Renderer) checkCoverage(g *Grid, dst *Pixmap) error {
	needX := (dst.Width() + r.cellSize - 1) / r.cellSize
	needY := (dst.Height() + r.cellSize - 1) / r.cellSize
	if needX > g.Width() || needY > g.Height() {
		return fmt.Errorf("%w: target %dx%dpx needs %dx%d cells, grid is %dx%d",
			ErrGridCoverage, dst.Width(), dst.Height(), needX, needY, g.Width(), g.Height())
	}
	return nil
}

// rowBands splits height rows into at most n contiguous [y0, y1) bands.
func rowBands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([][2]int, 0, n)
	step := height / n
	extra := height % n
	y := 0
	for i := 0; i < n; i++ {
		h := step
		if i < extra {
			h++
		}
		bands = append(bands, [2]int{y, y + h})
		y += h
	}
	return bands
}

// updateStats updates the render statistics.
func (r *Renderer) updateStats(pixels, cells int, shade, total time.Duration) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()

	r.stats.PixelsShaded = pixels
	r.stats.CellsCovered = cells
	r.stats.TimeShade = shade
	r.stats.TimeTotal = total

	if !r.lastFrame.IsZero() {
		r.stats.FrameTime = time.Since(r.lastFrame)
		if r.stats.FrameTime > 0 {
			r.stats.FPS = float64(time.Second) / float64(r.stats.FrameTime)
		}
	}
	r.lastFrame = time.Now()
}

// Stats returns the statistics of the most recent pass.
func (r *Renderer) Stats() RenderStats {
	r.statsMu.RLock()
	defer r.statsMu.RUnlock()
	return r.stats
}

// CellSize returns the output pixels per grid cell edge.
func (r *Renderer) CellSize() int {
	return r.cellSize
}

// Workers returns the number of worker goroutines used for shading.
func (r *Renderer) Workers() int {
	return r.workers
}

// Close releases the worker pool. The renderer must not be used after
// Close; it is safe to call Close more than once.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
