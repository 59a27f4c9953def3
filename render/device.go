package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle hands tilelight a GPU device owned by the host application.
//
// tilelight never opens a device of its own when a handle is supplied: the
// host creates and owns the device, and the wgpu backend builds its compute
// pipelines on it, so textures and buffers stay shareable between the host's
// rendering and the compositing pass. The type is an alias for
// gpucontext.DeviceProvider, so anything that already speaks gpucontext
// plugs in unchanged.
type DeviceHandle = gpucontext.DeviceProvider

// TextureView is a bindable view into a GPU texture. Texture-backed targets
// expose one; CPU targets return nil.
type TextureView interface {
	// Destroy releases the view's GPU resources.
	Destroy()
}

// NullDeviceHandle is the no-GPU handle: every accessor returns nil. Passing
// it to a backend forces the CPU path, which tests use to pin down fallback
// behavior.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns the undefined format.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
