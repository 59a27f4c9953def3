package tilelight

import "math"

// cellSlots is the number of float32 slots in a cell record.
const cellSlots = 4

// Cell is one grid entry in the exact form a GPU sees it: four float32
// slots whose bits carry a status word and packed atlas coordinates.
//
// The slots are containers for bit patterns, not numbers. Reading them as
// floats is meaningless; all access goes through math.Float32bits and
// math.Float32frombits so that no arithmetic ever touches (and possibly
// renormalizes) the payload.
type Cell [cellSlots]float32

// Status returns the cell's status word, bit for bit.
func (l Layout) Status(c Cell) uint32 {
	return math.Float32bits(c[l.StatusIndex])
}

// ChannelCoords returns the atlas coordinates packed for channel ch.
// Channel i lives in the 16-bit half-word i%2 of slot i/2; within the
// half-word, the low byte is the atlas x and the next byte the atlas y.
// ch must be in [0, NumChannels); the coordinate bits are meaningful only
// while the channel's present flag is set.
func (l Layout) ChannelCoords(c Cell, ch int) (x, y int) {
	word := math.Float32bits(c[ch/2])
	if ch&1 == 1 {
		word >>= 16
	}
	return int(word & 0xFF), int(word >> 8 & 0xFF)
}

// SetVisible sets or clears the visible flag in the cell's status word.
func (l Layout) SetVisible(c *Cell, visible bool) {
	status := math.Float32bits(c[l.StatusIndex])
	if visible {
		status |= l.VisibleMask
	} else {
		status &^= l.VisibleMask
	}
	c[l.StatusIndex] = math.Float32frombits(status)
}

// SetChannel marks channel ch present, stores its atlas coordinates, and
// sets or clears its diminish flag. Coordinates are masked to [0, 255].
// Out-of-range channels are ignored.
func (l Layout) SetChannel(c *Cell, ch, x, y int, diminish bool) {
	if ch < 0 || ch >= l.NumChannels {
		return
	}

	status := math.Float32bits(c[l.StatusIndex])
	status |= 1 << (ch*l.BitsPerChannel + l.PresentOffset)
	if diminish {
		status |= 1 << (ch*l.BitsPerChannel + l.DiminishOffset)
	} else {
		status &^= 1 << (ch*l.BitsPerChannel + l.DiminishOffset)
	}
	c[l.StatusIndex] = math.Float32frombits(status)

	coord := uint32(x&0xFF) | uint32(y&0xFF)<<8
	word := math.Float32bits(c[ch/2])
	if ch&1 == 1 {
		word = word&0x0000FFFF | coord<<16
	} else {
		word = word&0xFFFF0000 | coord
	}
	c[ch/2] = math.Float32frombits(word)
}

// SetDiminish sets or clears channel ch's diminish flag, leaving the
// present flag and packed coordinates alone. Out-of-range channels are
// ignored.
func (l Layout) SetDiminish(c *Cell, ch int, diminish bool) {
	if ch < 0 || ch >= l.NumChannels {
		return
	}
	status := math.Float32bits(c[l.StatusIndex])
	if diminish {
		status |= 1 << (ch*l.BitsPerChannel + l.DiminishOffset)
	} else {
		status &^= 1 << (ch*l.BitsPerChannel + l.DiminishOffset)
	}
	c[l.StatusIndex] = math.Float32frombits(status)
}

// ClearChannel clears channel ch's present and diminish flags. The packed
// coordinate bits are left behind; a cleared present flag makes them inert.
// Out-of-range channels are ignored.
func (l Layout) ClearChannel(c *Cell, ch int) {
	if ch < 0 || ch >= l.NumChannels {
		return
	}
	status := math.Float32bits(c[l.StatusIndex])
	status &^= 1 << (ch*l.BitsPerChannel + l.PresentOffset)
	status &^= 1 << (ch*l.BitsPerChannel + l.DiminishOffset)
	c[l.StatusIndex] = math.Float32frombits(status)
}
