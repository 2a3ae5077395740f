package smudge

import (
	"image"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Re-exported pixel types so callers outside this module can build
// surfaces, masks and colors for strokes and strategies.
type (
	// Surface is a persistent paint layer.
	Surface = device.Surface
	// Fixed is a scratch pixel buffer, also used for stamp dabs.
	Fixed = device.Fixed
	// Mask holds 8-bit dab weights aligned to a rectangle.
	Mask = device.Mask
	// Color is a pixel value tagged with its color space.
	Color = color.Color
	// ColorSpace describes the channel layout and transfer of pixels.
	ColorSpace = color.Space
)

// Built-in color spaces.
var (
	SRGB      = color.SRGB
	LinearRGB = color.LinearRGB
	GrayA     = color.GrayA
)

// NewSurface creates a transparent surface covering bounds.
func NewSurface(space *ColorSpace, bounds image.Rectangle) (*Surface, error) {
	return device.NewSurface(space, bounds)
}

// SurfaceFromImage copies img into a new surface in space.
func SurfaceFromImage(img image.Image, space *ColorSpace) *Surface {
	return device.FromImage(img, space)
}

// NewFixed creates a zeroed buffer covering rect.
func NewFixed(space *ColorSpace, rect image.Rectangle) (*Fixed, error) {
	return device.NewFixedRect(space, rect)
}

// NewMask creates a zero mask covering rect.
func NewMask(rect image.Rectangle) *Mask {
	return device.NewMask(rect)
}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque color in space.
func ParseColor(space *ColorSpace, hex string) (Color, error) {
	return color.FromHex(space, hex)
}

// LookupColorSpace returns the built-in space with the given id, such as
// "RGBA8-sRGB".
func LookupColorSpace(id string) (*ColorSpace, bool) {
	return color.Lookup(id)
}
