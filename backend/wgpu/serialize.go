package wgpu

import (
	_ "embed"
	"errors"
	"math"

	"github.com/fogmire/tilelight"
	"github.com/fogmire/tilelight/render"
)

//go:embed shaders/tile.wgsl
var tileShaderWGSL string

// errAtlasNotImage is returned by buildFrame when the compositor's atlas
// is not an ImageAtlas and therefore has no texel buffer to upload.
var errAtlasNotImage = errors.New("wgpu: atlas is not image-backed")

// tileConfig is the GPU-compatible frame configuration.
// Must match the Config struct in tile.wgsl, field for field.
type tileConfig struct {
	GridWidth    uint32 // Grid width in cells
	GridHeight   uint32 // Grid height in cells
	TargetWidth  uint32 // Target width in pixels
	TargetHeight uint32 // Target height in pixels
	AtlasWidth   uint32 // Atlas width in texels
	AtlasHeight  uint32 // Atlas height in texels

	CellSize float32 // Pixels per cell edge
	RatioX   float32 // Atlas cell-to-normalized scale, x
	RatioY   float32 // Atlas cell-to-normalized scale, y
	ViewerX  float32 // Lighting origin, cell units
	ViewerY  float32 // Lighting origin, cell units

	NumChannels    uint32 // Compositing channels per cell
	StatusIndex    uint32 // Cell slot holding the status word
	VisibleMask    uint32 // Visible flag mask
	BitsPerChannel uint32 // Width of each channel's flag group
	PresentOffset  uint32 // Present flag position within a group
	DiminishOffset uint32 // Diminish flag position within a group

	RememberedDarken float32 // Darkening coefficient for remembered cells
	Padding0         uint32  // Padding for alignment
	Padding1         uint32  // Padding for alignment
}

// tileConfigSize is the serialized size of tileConfig in bytes.
const tileConfigSize = 80

// gpuFrame holds the serialized buffers for one compute dispatch.
type gpuFrame struct {
	config []byte // Uniform buffer, tileConfigSize bytes
	cells  []byte // Read-only storage, 16 bytes per cell
	atlas  []byte // Read-only storage, packed RGBA8 texels
}

// buildFrame serializes everything a dispatch uploads: the frame
// configuration, the grid's cell records, and the atlas texels.
// The atlas must be image-backed; other Atlas implementations have no
// buffer a shader could read.
func buildFrame(c *tilelight.Compositor, g *tilelight.Grid, target render.RenderTarget, cellSize int) (*gpuFrame, error) {
	atlas, ok := c.Atlas().(*tilelight.ImageAtlas)
	if !ok {
		return nil, errAtlasNotImage
	}

	layout := c.Layout()
	ratio := c.Ratio()
	viewer := c.Viewer()

	cfg := tileConfig{
		GridWidth:    uint32(g.Width()),
		GridHeight:   uint32(g.Height()),
		TargetWidth:  uint32(target.Width()),
		TargetHeight: uint32(target.Height()),
		AtlasWidth:   uint32(atlas.Width()),
		AtlasHeight:  uint32(atlas.Height()),

		CellSize: float32(cellSize),
		RatioX:   ratio.X,
		RatioY:   ratio.Y,
		ViewerX:  viewer.X,
		ViewerY:  viewer.Y,

		NumChannels:    uint32(layout.NumChannels),
		StatusIndex:    uint32(layout.StatusIndex),
		VisibleMask:    layout.VisibleMask,
		BitsPerChannel: uint32(layout.BitsPerChannel),
		PresentOffset:  uint32(layout.PresentOffset),
		DiminishOffset: uint32(layout.DiminishOffset),

		RememberedDarken: tilelight.RememberedDarken,
	}

	return &gpuFrame{
		config: configToBytes(cfg),
		cells:  cellsToBytes(g.Cells()),
		atlas:  atlas.Pix(),
	}, nil
}

// configToBytes serializes the frame configuration for the uniform buffer.
func configToBytes(cfg tileConfig) []byte {
	buf := make([]byte, tileConfigSize)
	writeUint32(buf, 0, cfg.GridWidth)
	writeUint32(buf, 4, cfg.GridHeight)
	writeUint32(buf, 8, cfg.TargetWidth)
	writeUint32(buf, 12, cfg.TargetHeight)
	writeUint32(buf, 16, cfg.AtlasWidth)
	writeUint32(buf, 20, cfg.AtlasHeight)
	writeFloat32(buf, 24, cfg.CellSize)
	writeFloat32(buf, 28, cfg.RatioX)
	writeFloat32(buf, 32, cfg.RatioY)
	writeFloat32(buf, 36, cfg.ViewerX)
	writeFloat32(buf, 40, cfg.ViewerY)
	writeUint32(buf, 44, cfg.NumChannels)
	writeUint32(buf, 48, cfg.StatusIndex)
	writeUint32(buf, 52, cfg.VisibleMask)
	writeUint32(buf, 56, cfg.BitsPerChannel)
	writeUint32(buf, 60, cfg.PresentOffset)
	writeUint32(buf, 64, cfg.DiminishOffset)
	writeFloat32(buf, 68, cfg.RememberedDarken)
	writeUint32(buf, 72, cfg.Padding0)
	writeUint32(buf, 76, cfg.Padding1)
	return buf
}

// cellsToBytes serializes cell records for the storage buffer. Each cell
// is four u32 words holding the slots' bit patterns verbatim.
func cellsToBytes(cells []tilelight.Cell) []byte {
	buf := make([]byte, len(cells)*16)
	for i, cell := range cells {
		off := i * 16
		for s, slot := range cell {
			writeUint32(buf, off+s*4, math.Float32bits(slot))
		}
	}
	return buf
}

// Byte serialization helpers

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}
