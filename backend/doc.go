// Package backend selects how the compositing pass executes.
//
// Two implementations exist. The software backend walks the grid on the
// CPU and is always available; importing this package registers it. The
// wgpu backend dispatches the same pass as a compute shader and is opt-in:
//
//	import _ "github.com/fogmire/tilelight/backend/wgpu"
//
// Select by name with Get, or take the best available:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	target := render.NewPixmapTarget(960, 960)
//	if err := b.Render(target, compositor, grid); err != nil {
//		log.Fatal(err)
//	}
//
// Backends are interchangeable in the strictest sense: the wgpu shader
// mirrors the software arithmetic operation for operation, so switching
// backends never changes a frame.
package backend
