// Package wgpu provides a GPU compositing backend using gogpu/wgpu.
//
// This backend expresses the per-cell compositing pass as a WGSL compute
// shader and builds real pipelines for it through the gogpu/wgpu Pure Go
// WebGPU implementation, which supports Vulkan, Metal, and DX12 backends
// depending on the platform.
//
// # Architecture Overview
//
// The pass maps one compute invocation to one output pixel:
//
//	Grid cells + atlas texels -> uniform/storage buffers -> cs_tile -> packed RGBA8 output
//
// Key components:
//
//   - Backend: Main entry point implementing backend.RenderBackend
//   - tile.wgsl: WGSL compute shader with the full compositing algorithm
//     (status decode, channel stacking, distance lighting, remembered
//     darkening) plus a cs_blit passthrough entry point
//   - naga: WGSL to SPIR-V compilation at Init
//   - serialize.go: frame, cell and atlas buffer serialization matching
//     the shader's binding layout
//
// # Registration and Selection
//
// The wgpu backend is automatically registered when this package is
// imported:
//
//	import _ "github.com/fogmire/tilelight/backend/wgpu"
//
// The backend is preferred over the software backend by
// backend.Default(). If GPU initialization fails, the backend logs the
// reason and keeps rendering on the CPU path.
//
// # Basic Usage
//
//	b := backend.Default() // wgpu when imported, otherwise software
//	if err := b.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	target := render.NewPixmapTarget(960, 960)
//	if err := b.Render(target, compositor, grid); err != nil {
//	    log.Fatal(err)
//	}
//
// A host application that already owns a GPU device can share it instead
// of letting the backend acquire one:
//
//	wb := wgpu.NewBackend()
//	if err := wb.SetDeviceHandle(handle); err != nil {
//	    log.Printf("wgpu: %v", err)
//	}
//
// # Determinism and Current Status
//
// Every backend produces byte-identical frames for the same inputs, and
// WGSL floating point rules do not guarantee that a GPU dispatch of the
// shader matches the CPU compositor bit for bit. Compute dispatch is
// therefore gated until readback precision is validated against the
// software path: Init compiles the shader and creates the pipelines,
// Render serializes the frame buffers exactly as a dispatch would upload
// them, and execution runs on the CPU renderer. All data flow up to the
// dispatch boundary is real and tested.
//
// # Requirements
//
//   - gogpu/wgpu module (github.com/gogpu/wgpu)
//   - gogpu/naga module (github.com/gogpu/naga)
//   - A GPU that supports Vulkan (for pipeline creation)
//
// Build with the nogpu tag to exclude GPU support entirely; the package
// then only exports the serialization helpers.
//
// # Thread Safety
//
// Backend is safe for concurrent use from multiple goroutines. Internal
// synchronization is handled via a mutex; one Render runs at a time.
//
// # Related Packages
//
//   - github.com/fogmire/tilelight: core compositing library
//   - github.com/fogmire/tilelight/backend: backend interface and registry
//   - github.com/fogmire/tilelight/render: render target abstraction
//   - github.com/gogpu/wgpu: Pure Go WebGPU implementation
package wgpu
