package color

import (
	"errors"
	"fmt"
	stdcolor "image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned by FromHex for malformed color strings.
var ErrInvalidHex = errors.New("color: invalid hex color")

// Color is a single pixel value tagged with its color space.
// The zero value has no space and must not be composited.
type Color struct {
	space *Space
	data  [MaxChannels]byte
}

// New creates a color in space from raw channel bytes.
// Missing channels are zero, extra channels are ignored.
func New(space *Space, channels ...byte) Color {
	c := Color{space: space}
	copy(c.data[:space.Channels()], channels)
	return c
}

// Transparent returns a fully transparent color in space.
func Transparent(space *Space) Color {
	return Color{space: space}
}

// FromNRGBA converts a straight-alpha sRGB color into space.
func FromNRGBA(space *Space, c stdcolor.NRGBA) Color {
	out := New(SRGB, c.R, c.G, c.B, c.A)
	out.ConvertTo(space)
	return out
}

// FromHex parses "#rrggbb" or "#rgb" into an opaque color in space.
func FromHex(space *Space, hex string) (Color, error) {
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	r, g, b := parsed.Clamped().RGB255()
	return FromNRGBA(space, stdcolor.NRGBA{R: r, G: g, B: b, A: 255}), nil
}

// Space returns the color space the channels are expressed in.
func (c Color) Space() *Space { return c.space }

// Data returns the channel bytes. The slice aliases c, so writes through
// it modify the color.
func (c *Color) Data() []byte {
	if c.space == nil {
		return nil
	}
	return c.data[:c.space.Channels()]
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 {
	if c.space == nil {
		return 0
	}
	return c.data[c.space.AlphaIndex()]
}

// ConvertTo converts c into space in place.
func (c *Color) ConvertTo(space *Space) {
	if c.space.Equal(space) {
		c.space = space
		return
	}
	var out [MaxChannels]byte
	if c.space != nil {
		ConvertPixels(out[:], space, c.data[:], c.space, 1)
	}
	c.space = space
	c.data = out
}

// ConvertedTo returns a copy of c converted into space.
func (c Color) ConvertedTo(space *Space) Color {
	c.ConvertTo(space)
	return c
}

// NRGBA returns c as a straight-alpha sRGB color.
func (c Color) NRGBA() stdcolor.NRGBA {
	s := c.ConvertedTo(SRGB)
	return stdcolor.NRGBA{R: s.data[0], G: s.data[1], B: s.data[2], A: s.data[3]}
}

// Equal reports whether both colors share a space and channel values.
func (c Color) Equal(o Color) bool {
	return c.space.Equal(o.space) && c.data == o.data
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("%s%v", c.space, c.data[:c.channels()])
}

func (c Color) channels() int {
	if c.space == nil {
		return 0
	}
	return c.space.Channels()
}
