package tilelight

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned when a Layout fails validation.
// Returned errors wrap it with a description of the failing rule, so
// callers can test with errors.Is and still log the detail.
var ErrInvalidLayout = errors.New("tilelight: invalid layout")

// Layout describes how a Cell packs its status word and channel
// coordinates. All bit positions are fixed for the lifetime of a grid and
// must match whatever produced the cell data, so a Layout is validated once
// up front rather than on every decode.
//
// The status word lives in slot StatusIndex of the cell. Each channel i
// owns a group of BitsPerChannel flag bits starting at i*BitsPerChannel,
// with the present flag at PresentOffset and the diminish flag at
// DiminishOffset within the group. VisibleMask selects the visible flag and
// must not overlap any channel group.
//
// Channel atlas coordinates are packed two per slot starting at slot 0:
// channel i occupies the low 16 bits of slot i/2 when i is even and the
// high 16 bits when i is odd.
type Layout struct {
	// NumChannels is the number of compositing channels per cell.
	NumChannels int

	// StatusIndex is the cell slot holding the status word.
	StatusIndex int

	// VisibleMask selects the visible flag in the status word.
	VisibleMask uint32

	// BitsPerChannel is the width of each channel's flag group.
	BitsPerChannel int

	// PresentOffset is the present flag's position within a channel group.
	PresentOffset int

	// DiminishOffset is the diminish flag's position within a channel group.
	DiminishOffset int
}

// DefaultLayout returns the layout used by the reference frontend: three
// channels (floor, object, overlay) with two flag bits each from bit 0,
// the visible flag at bit 6, and the status word in the last cell slot.
func DefaultLayout() Layout {
	return Layout{
		NumChannels:    3,
		StatusIndex:    3,
		VisibleMask:    1 << 6,
		BitsPerChannel: 2,
		PresentOffset:  0,
		DiminishOffset: 1,
	}
}

// Validate checks that the layout is internally consistent.
// It returns an error wrapping ErrInvalidLayout if any rule fails:
//
//   - at least one channel, and channel coordinates must leave a free slot
//     for the status word
//   - flag offsets must differ and fall inside a channel's bit group
//   - all channel flag bits must fit in the 32-bit status word
//   - the visible mask must be nonzero and must not overlap channel bits
func (l Layout) Validate() error {
	if l.NumChannels < 1 {
		return fmt.Errorf("%w: need at least one channel, got %d", ErrInvalidLayout, l.NumChannels)
	}
	if l.StatusIndex < 0 || l.StatusIndex >= cellSlots {
		return fmt.Errorf("%w: status index %d outside cell", ErrInvalidLayout, l.StatusIndex)
	}
	if l.StatusIndex < l.coordSlots() {
		return fmt.Errorf("%w: status index %d collides with channel coordinates (%d slots)",
			ErrInvalidLayout, l.StatusIndex, l.coordSlots())
	}
	if l.BitsPerChannel < 1 {
		return fmt.Errorf("%w: bits per channel must be positive, got %d", ErrInvalidLayout, l.BitsPerChannel)
	}
	if l.PresentOffset == l.DiminishOffset {
		return fmt.Errorf("%w: present and diminish offsets coincide at %d", ErrInvalidLayout, l.PresentOffset)
	}
	if l.PresentOffset < 0 || l.PresentOffset >= l.BitsPerChannel {
		return fmt.Errorf("%w: present offset %d outside channel group", ErrInvalidLayout, l.PresentOffset)
	}
	if l.DiminishOffset < 0 || l.DiminishOffset >= l.BitsPerChannel {
		return fmt.Errorf("%w: diminish offset %d outside channel group", ErrInvalidLayout, l.DiminishOffset)
	}
	if l.NumChannels*l.BitsPerChannel > 32 {
		return fmt.Errorf("%w: %d channels of %d bits exceed the status word",
			ErrInvalidLayout, l.NumChannels, l.BitsPerChannel)
	}
	if l.VisibleMask == 0 {
		return fmt.Errorf("%w: visible mask is zero", ErrInvalidLayout)
	}
	if l.channelMask()&l.VisibleMask != 0 {
		return fmt.Errorf("%w: visible mask %#x overlaps channel flag bits %#x",
			ErrInvalidLayout, l.VisibleMask, l.channelMask())
	}
	return nil
}

// coordSlots returns the number of cell slots occupied by packed channel
// coordinates.
func (l Layout) coordSlots() int {
	return (l.NumChannels + 1) / 2
}

// channelMask returns the union of every channel's flag bits.
func (l Layout) channelMask() uint32 {
	var mask uint32
	for i := 0; i < l.NumChannels; i++ {
		mask |= 1 << (i*l.BitsPerChannel + l.PresentOffset)
		mask |= 1 << (i*l.BitsPerChannel + l.DiminishOffset)
	}
	return mask
}

// IsVisible reports whether the visible flag is set in a status word.
func (l Layout) IsVisible(status uint32) bool {
	return status&l.VisibleMask != 0
}

// ChannelPresent reports whether channel ch contributes to the composite.
// A cleared present flag means the channel's coordinate bits are ignored
// entirely, whatever they contain.
func (l Layout) ChannelPresent(status uint32, ch int) bool {
	return status&(1<<(ch*l.BitsPerChannel+l.PresentOffset)) != 0
}

// ChannelDiminished reports whether channel ch receives distance lighting.
func (l Layout) ChannelDiminished(status uint32, ch int) bool {
	return status&(1<<(ch*l.BitsPerChannel+l.DiminishOffset)) != 0
}
