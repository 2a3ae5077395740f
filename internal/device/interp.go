package device

import (
	"image"
	"math"

	"github.com/gogpu/smudge/internal/color"
)

// InterpolationMode defines how sub-pixel coordinates are sampled.
type InterpolationMode uint8

const (
	// InterpBilinear blends the four pixels around the coordinate,
	// weighting colors by alpha.
	InterpBilinear InterpolationMode = iota

	// InterpNearest selects the pixel containing the coordinate.
	InterpNearest
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sampler reads a pixel at a fractional coordinate.
//
// Pixel (i, j) covers [i, i+1) x [j, j+1), so sampling at (i+0.5, j+0.5)
// returns pixel (i, j) exactly.
type Sampler interface {
	SampleAt(x, y float64, dst []byte)
}

// plane is a rectangle of pixels in one color space.
type plane struct {
	space *color.Space
	rect  image.Rectangle
	data  []byte
}

// offset returns the byte offset of (x, y), or -1 outside the rectangle.
func (p *plane) offset(x, y int) int {
	if !(image.Point{X: x, Y: y}).In(p.rect) {
		return -1
	}
	return ((y-p.rect.Min.Y)*p.rect.Dx() + (x - p.rect.Min.X)) * p.space.PixelSize()
}

// readRect copies rect into dst, laid out with rect's width as row length.
// Pixels outside the plane are transparent.
func (p *plane) readRect(dst []byte, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	ps := p.space.PixelSize()
	dstRow := rect.Dx() * ps
	in := rect.Intersect(p.rect)
	if in != rect {
		clear(dst[:dstRow*rect.Dy()])
	}
	if in.Empty() {
		return
	}

	n := in.Dx() * ps
	srcStride := p.rect.Dx() * ps
	for y := in.Min.Y; y < in.Max.Y; y++ {
		so := (y-p.rect.Min.Y)*srcStride + (in.Min.X-p.rect.Min.X)*ps
		do := (y-rect.Min.Y)*dstRow + (in.Min.X-rect.Min.X)*ps
		copy(dst[do:do+n], p.data[so:so+n])
	}
}

// writeRect copies src, laid out with rect's width as row length, into the
// plane. Pixels outside the plane are dropped.
func (p *plane) writeRect(src []byte, rect image.Rectangle) {
	in := rect.Intersect(p.rect)
	if in.Empty() {
		return
	}
	ps := p.space.PixelSize()
	srcRow := rect.Dx() * ps
	dstStride := p.rect.Dx() * ps
	n := in.Dx() * ps
	for y := in.Min.Y; y < in.Max.Y; y++ {
		so := (y-rect.Min.Y)*srcRow + (in.Min.X-rect.Min.X)*ps
		do := (y-p.rect.Min.Y)*dstStride + (in.Min.X-p.rect.Min.X)*ps
		copy(p.data[do:do+n], src[so:so+n])
	}
}

// sample reads the plane at a fractional coordinate into dst.
func (p *plane) sample(x, y float64, mode InterpolationMode, dst []byte) {
	ps := p.space.PixelSize()
	if mode == InterpNearest {
		o := p.offset(int(math.Floor(x)), int(math.Floor(y)))
		if o < 0 {
			clear(dst[:ps])
			return
		}
		copy(dst[:ps], p.data[o:o+ps])
		return
	}

	fx, fy := x-0.5, y-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	corners := [4]struct {
		x, y int
		w    float64
	}{
		{x0, y0, (1 - tx) * (1 - ty)},
		{x0 + 1, y0, tx * (1 - ty)},
		{x0, y0 + 1, (1 - tx) * ty},
		{x0 + 1, y0 + 1, tx * ty},
	}

	alpha := p.space.AlphaIndex()
	var acc [color.MaxChannels]float64
	var totalAlpha float64
	for _, c := range corners {
		if c.w == 0 {
			continue
		}
		o := p.offset(c.x, c.y)
		if o < 0 {
			continue
		}
		px := p.data[o : o+ps]
		wa := c.w * float64(px[alpha])
		for i := 0; i < alpha; i++ {
			acc[i] += wa * float64(px[i])
		}
		totalAlpha += wa
	}

	if totalAlpha <= 0 {
		clear(dst[:ps])
		return
	}
	for i := 0; i < alpha; i++ {
		dst[i] = roundByte(acc[i] / totalAlpha)
	}
	dst[alpha] = roundByte(totalAlpha)
}

// roundByte rounds v to the nearest byte, clamping to [0, 255].
func roundByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
