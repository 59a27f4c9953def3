//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fogmire/tilelight"
	"github.com/fogmire/tilelight/backend"
	"github.com/fogmire/tilelight/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrNoGPU is returned when no compatible GPU adapter can be found.
var ErrNoGPU = errors.New("wgpu: no compatible GPU found")

// init registers the wgpu backend on package import.
// This enables automatic backend selection when using backend.Default().
//
// To use the wgpu backend, import this package:
//
//	import _ "github.com/fogmire/tilelight/backend/wgpu"
func init() {
	backend.Register(backend.BackendWgpu, func() backend.RenderBackend {
		return NewBackend()
	})
}

// Backend is a GPU compositing backend using gogpu/wgpu.
//
// Init compiles the tile shader to SPIR-V, brings up a GPU device and
// builds the compute pipelines. Render serializes the frame the way a
// dispatch would upload it, then executes the pass on the CPU: compute
// dispatch stays gated until readback precision is validated against the
// software compositor, so switching backends never changes a frame.
//
// If GPU bring-up fails, Init logs the reason and the backend keeps
// working on the CPU path.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shaderModule hal.ShaderModule
	bindLayout   hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout
	tilePipeline hal.ComputePipeline
	blitPipeline hal.ComputePipeline

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	// CPU execution path
	renderer *tilelight.Renderer
	scratch  *tilelight.Pixmap

	cellSize       int
	gpuReady       bool
	externalDevice bool
	initialized    bool
}

// NewBackend creates a new wgpu compositing backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{cellSize: tilelight.DefaultCellSize}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWgpu
}

// SetCellSize changes the edge length of one grid cell on the target, in
// pixels. Values below 1 are ignored. Call before the first render.
func (b *Backend) SetCellSize(px int) {
	if px < 1 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if px == b.cellSize {
		return
	}
	b.cellSize = px
	if b.renderer != nil {
		b.renderer.Close()
		b.renderer = nil
	}
}

// Init initializes the backend: the shader is compiled to SPIR-V, a GPU
// device is acquired and the compute pipelines are created. GPU failures
// are logged, not returned; the backend stays usable on the CPU path.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := b.compileShader(); err != nil {
		tilelight.Logger().Warn("wgpu: shader compilation failed, pass stays on CPU", "err", err)
		b.initialized = true
		return nil
	}

	if err := b.initGPU(); err != nil {
		tilelight.Logger().Warn("wgpu: GPU unavailable, pass stays on CPU", "err", err)
		b.initialized = true
		return nil
	}

	if err := b.createPipelines(); err != nil {
		tilelight.Logger().Warn("wgpu: pipeline creation failed, pass stays on CPU", "err", err)
		b.releaseGPU()
		b.initialized = true
		return nil
	}

	b.gpuReady = true
	b.initialized = true
	tilelight.Logger().Info("wgpu: compute pipelines ready")
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.destroyPipelines()
	b.releaseGPU()

	if b.renderer != nil {
		b.renderer.Close()
		b.renderer = nil
	}
	b.scratch = nil
	b.spirvCode = nil
	b.gpuReady = false
	b.initialized = false
}

// SetDeviceHandle switches the backend to a shared GPU device from a host
// application instead of the self-acquired one. The handle must expose
// HAL types via HalDevice() any and HalQueue() any.
func (b *Backend) SetDeviceHandle(h render.DeviceHandle) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := h.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: device handle HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: device handle HalQueue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.spirvCode == nil {
		if err := b.compileShader(); err != nil {
			return fmt.Errorf("wgpu: compile shader: %w", err)
		}
	}

	b.destroyPipelines()
	b.releaseGPU()

	b.device = device
	b.queue = queue
	b.externalDevice = true

	if err := b.createPipelines(); err != nil {
		b.gpuReady = false
		return fmt.Errorf("wgpu: create pipelines with shared device: %w", err)
	}
	b.gpuReady = true
	b.initialized = true
	tilelight.Logger().Info("wgpu: switched to shared GPU device")
	return nil
}

// Render composites the grid into the target.
//
// When the GPU is ready the frame buffers are serialized exactly as a
// dispatch would upload them, verifying the data conversion; execution
// then runs on the CPU renderer until dispatch precision is validated.
func (b *Backend) Render(target render.RenderTarget, c *tilelight.Compositor, g *tilelight.Grid) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if target == nil || c == nil || g == nil {
		return nil
	}

	if b.gpuReady {
		if _, err := buildFrame(c, g, target, b.cellSize); err != nil {
			tilelight.Logger().Debug("wgpu: frame not uploadable", "err", err)
		}
	}

	pm := b.scratchFor(target)
	if err := b.renderer.Render(c, g, pm); err != nil {
		return err
	}

	copyToTarget(target, pm)
	return nil
}

// Blit copies the compositor's atlas into the target without consulting
// a grid.
func (b *Backend) Blit(target render.RenderTarget, c *tilelight.Compositor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if target == nil || c == nil {
		return nil
	}

	pm := b.scratchFor(target)
	b.renderer.RenderBlit(c, pm)

	copyToTarget(target, pm)
	return nil
}

// GPUReady reports whether the compute pipelines were created.
func (b *Backend) GPUReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpuReady
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (b *Backend) SPIRVCode() []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spirvCode
}

// compileShader compiles the embedded WGSL to SPIR-V via naga.
func (b *Backend) compileShader() error {
	spirvBytes, err := naga.Compile(tileShaderWGSL)
	if err != nil {
		return fmt.Errorf("wgpu: failed to compile tile shader: %w", err)
	}

	b.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range b.spirvCode {
		b.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return nil
}

// initGPU acquires a GPU adapter and opens a device on it.
func (b *Backend) initGPU() error {
	gpuBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return ErrNoGPU
	}

	instance, err := gpuBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return ErrNoGPU
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue

	tilelight.Logger().Info("wgpu: GPU device opened", "adapter", selected.Info.Name)
	return nil
}

// createPipelines builds the shader module, layouts and compute pipelines.
// The bind group layout matches the @binding annotations in tile.wgsl.
func (b *Backend) createPipelines() error {
	shaderModule, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "tile_shader",
		Source: hal.ShaderSource{
			SPIRV: b.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	b.shaderModule = shaderModule

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "tile_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: tileConfigSize,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    3,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "tile_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	tilePipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "tile_pipeline",
		Layout: b.pipeLayout,
		Compute: hal.ComputeState{
			Module:     b.shaderModule,
			EntryPoint: "cs_tile",
		},
	})
	if err != nil {
		return fmt.Errorf("create tile pipeline: %w", err)
	}
	b.tilePipeline = tilePipeline

	blitPipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "blit_pipeline",
		Layout: b.pipeLayout,
		Compute: hal.ComputeState{
			Module:     b.shaderModule,
			EntryPoint: "cs_blit",
		},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline: %w", err)
	}
	b.blitPipeline = blitPipeline

	return nil
}

// destroyPipelines releases the pipelines, layouts and shader module.
func (b *Backend) destroyPipelines() {
	if b.device == nil {
		return
	}
	if b.blitPipeline != nil {
		b.device.DestroyComputePipeline(b.blitPipeline)
		b.blitPipeline = nil
	}
	if b.tilePipeline != nil {
		b.device.DestroyComputePipeline(b.tilePipeline)
		b.tilePipeline = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		b.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shaderModule != nil {
		b.device.DestroyShaderModule(b.shaderModule)
		b.shaderModule = nil
	}
}

// releaseGPU drops the device and instance unless they are shared.
func (b *Backend) releaseGPU() {
	if b.externalDevice {
		// Don't destroy shared resources, we don't own them
		b.device = nil
		b.queue = nil
		b.externalDevice = false
		return
	}
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.queue = nil
}

// scratchFor returns the cached scratch pixmap sized for the target,
// creating the renderer and pixmap as needed.
func (b *Backend) scratchFor(target render.RenderTarget) *tilelight.Pixmap {
	if b.renderer == nil {
		b.renderer = tilelight.NewRenderer(tilelight.WithCellSize(b.cellSize))
	}

	w := target.Width()
	h := target.Height()
	if b.scratch == nil || b.scratch.Width() != w || b.scratch.Height() != h {
		b.scratch = tilelight.NewPixmap(w, h)
	}
	return b.scratch
}

// copyToTarget copies a pixmap into the target row by row.
// The pixmap is tightly packed; the target may carry extra stride.
func copyToTarget(target render.RenderTarget, pm *tilelight.Pixmap) {
	dst := target.Pixels()
	if dst == nil {
		return
	}

	src := pm.Data()
	stride := target.Stride()
	rowLen := pm.Width() * 4

	for y := 0; y < pm.Height(); y++ {
		copy(dst[y*stride:y*stride+rowLen], src[y*rowLen:(y+1)*rowLen])
	}
}
