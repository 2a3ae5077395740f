package smudge

import (
	"image"

	"github.com/gogpu/smudge/internal/device"
	"github.com/gogpu/smudge/internal/filter"
)

// Blurrer is the blur capability used by the Blurring mode.
type Blurrer interface {
	// NeededRect returns the area Blur reads to produce rect.
	NeededRect(rect image.Rectangle, rx, ry float64) image.Rectangle
	// Blur blurs rect of dev in place. channels selects the channels that
	// receive the result; nil selects all.
	Blur(dev *device.Fixed, rect image.Rectangle, rx, ry float64, channels []bool)
}

// Option configures a Strategy during creation.
//
// Example:
//
//	s := smudge.New(smudge.Blurring, smudge.MaskColoring{}, false,
//	    smudge.WithLevelOfDetail(1))
type Option func(*options)

type options struct {
	lod      LevelOfDetail
	blurrer  Blurrer
	maxBytes int
}

func defaultOptions() options {
	return options{
		blurrer:  filter.Gaussian{},
		maxBytes: device.DefaultMaxBytes,
	}
}

// WithLevelOfDetail sets the level of detail blur radii are scaled to.
func WithLevelOfDetail(l LevelOfDetail) Option {
	return func(o *options) {
		o.lod = l
	}
}

// WithBlurrer replaces the Gaussian blur. Passing nil leaves the strategy
// without a blur capability, so Blurring falls back to Dulling.
func WithBlurrer(b Blurrer) Option {
	return func(o *options) {
		o.blurrer = b
	}
}

// WithMaxBufferBytes sets the byte budget of each scratch buffer.
// Growing past it fails the dab with device.ErrBufferTooLarge.
// A value <= 0 disables the budget.
func WithMaxBufferBytes(n int) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}
