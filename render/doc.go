// Package render provides the integration layer between tilelight and GPU
// frameworks.
//
// This package defines the abstractions that let host applications hand
// tilelight a rendering destination and, optionally, a GPU device.
//
// # Key Principle
//
// tilelight RECEIVES a GPU device from the host application, it does NOT
// create its own. The library composites cells; producing the device, the
// window, and the presented frame stays with the host. This follows the
// pattern where a rendering library is injected with GPU resources rather
// than managing them itself.
//
// # Core Interfaces
//
//   - DeviceHandle: provides GPU device access from the host application
//   - RenderTarget: defines where compositing output goes
//   - TextureView: a GPU-side view for texture-backed targets
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target, the default for the
//     software backend and for the WebGPU backend's readback path
//
// # Usage
//
//	target := render.NewPixmapTarget(960, 960)
//	b := backend.MustDefault()
//	b.Render(target, comp, grid)
//	img := target.Image()
//
// # Thread Safety
//
// Targets are not thread-safe for concurrent writes from multiple passes.
// A single pass may write a target from many goroutines, each owning
// disjoint rows.
package render
