package device

import (
	"image"
	stdcolor "image/color"
	"image/draw"

	"github.com/gogpu/smudge/internal/color"
)

// Surface is a persistent paint layer.
//
// Reads outside Bounds return transparent pixels and writes outside Bounds
// are dropped, so callers can address it with rectangles that straddle the
// edge.
type Surface struct {
	plane

	// Interpolation selects how SampleAt reads fractional coordinates.
	Interpolation InterpolationMode
}

// NewSurface creates a transparent surface covering bounds.
func NewSurface(space *color.Space, bounds image.Rectangle) (*Surface, error) {
	if bounds.Dx() < 0 || bounds.Dy() < 0 {
		return nil, ErrInvalidDimensions
	}
	bounds = bounds.Canon()
	return &Surface{
		plane: plane{
			space: space,
			rect:  bounds,
			data:  make([]byte, bounds.Dx()*bounds.Dy()*space.PixelSize()),
		},
	}, nil
}

// FromImage creates a surface in space holding a copy of img.
func FromImage(img image.Image, space *color.Space) *Surface {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 {
		nrgba = image.NewNRGBA(b)
		draw.Draw(nrgba, b, img, b.Min, draw.Src)
	}

	s, _ := NewSurface(space, b)
	color.ConvertPixels(s.data, space, nrgba.Pix, color.SRGB, b.Dx()*b.Dy())
	return s
}

// ColorSpace returns the color space of the pixels.
func (s *Surface) ColorSpace() *color.Space { return s.space }

// Bounds returns the addressable area.
func (s *Surface) Bounds() image.Rectangle { return s.rect }

// Data returns the raw pixel bytes, row-major with no padding.
func (s *Surface) Data() []byte { return s.data }

// ReadBytes copies rect into dst, laid out with rect's width as row length.
func (s *Surface) ReadBytes(dst []byte, rect image.Rectangle) {
	s.readRect(dst, rect)
}

// WriteBytes copies src, laid out with rect's width as row length, into
// the surface.
func (s *Surface) WriteBytes(src []byte, rect image.Rectangle) {
	s.writeRect(src, rect)
}

// Pixel returns the color at (x, y), transparent outside Bounds.
func (s *Surface) Pixel(x, y int) color.Color {
	c := color.Transparent(s.space)
	if o := s.offset(x, y); o >= 0 {
		copy(c.Data(), s.data[o:o+s.space.PixelSize()])
	}
	return c
}

// SetPixel sets the color at (x, y), converting c into the surface space.
func (s *Surface) SetPixel(x, y int, c color.Color) {
	o := s.offset(x, y)
	if o < 0 {
		return
	}
	c.ConvertTo(s.space)
	copy(s.data[o:], c.Data())
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c color.Color) {
	fillPixels(s.data, c.ConvertedTo(s.space))
}

// SampleAt implements Sampler.
func (s *Surface) SampleAt(x, y float64, dst []byte) {
	s.sample(x, y, s.Interpolation, dst)
}

// Image returns a straight-alpha sRGB copy of the surface.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(s.rect)
	color.ConvertPixels(img.Pix, color.SRGB, s.data, s.space, s.rect.Dx()*s.rect.Dy())
	return img
}

// At implements image.Image.
func (s *Surface) At(x, y int) stdcolor.Color {
	return s.Pixel(x, y).NRGBA()
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() stdcolor.Model {
	return stdcolor.NRGBAModel
}
