package smudge

import (
	"image"
	"math"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Source is the pixel data a dab samples its background from.
// *device.Surface and *device.Fixed implement it.
type Source interface {
	ColorSpace() *color.Space
	// ReadBytes copies rect into dst, laid out with rect's width as row
	// length. Pixels outside the source are transparent.
	ReadBytes(dst []byte, rect image.Rectangle)
	device.Sampler
}

var (
	_ Source = (*device.Surface)(nil)
	_ Source = (*device.Fixed)(nil)
)

// scaleRect scales r by f around its center, rounding outward. The result
// covers at least one pixel.
func scaleRect(r image.Rectangle, f float64) image.Rectangle {
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	hw := float64(r.Dx()) * f / 2
	hh := float64(r.Dy()) * f / 2

	out := image.Rect(
		int(math.Floor(cx-hw)), int(math.Floor(cy-hh)),
		int(math.Ceil(cx+hw)), int(math.Ceil(cy+hh)),
	)
	if out.Dx() < 1 {
		out.Max.X = out.Min.X + 1
	}
	if out.Dy() < 1 {
		out.Max.Y = out.Min.Y + 1
	}
	return out
}
