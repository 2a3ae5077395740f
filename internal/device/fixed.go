package device

import (
	"fmt"
	"image"

	"github.com/gogpu/smudge/internal/color"
)

// DefaultMaxBytes is the default byte budget of a Fixed buffer.
const DefaultMaxBytes = 256 << 20

// Fixed is a scratch pixel buffer bound to a rectangle.
//
// The buffer extent always matches the rectangle most recently passed to
// SetRect once LazyGrowBufferWithoutInitialization has been called. Growth
// reuses existing capacity and never zero-fills, so callers must overwrite
// every pixel before reading it back.
//
// Fixed is not safe for concurrent use.
type Fixed struct {
	plane
	maxBytes int

	// Interpolation selects how SampleAt reads fractional coordinates.
	Interpolation InterpolationMode
}

// NewFixed creates an empty buffer in space.
func NewFixed(space *color.Space) *Fixed {
	return &Fixed{
		plane:    plane{space: space},
		maxBytes: DefaultMaxBytes,
	}
}

// NewFixedRect creates a zeroed buffer covering rect.
func NewFixedRect(space *color.Space, rect image.Rectangle) (*Fixed, error) {
	if rect.Dx() < 0 || rect.Dy() < 0 {
		return nil, ErrInvalidDimensions
	}
	f := NewFixed(space)
	f.SetRect(rect)
	if err := f.LazyGrowBufferWithoutInitialization(); err != nil {
		return nil, err
	}
	clear(f.data)
	return f, nil
}

// SetMaxBytes sets the byte budget enforced when the buffer grows.
// A value <= 0 disables the budget.
func (f *Fixed) SetMaxBytes(n int) {
	f.maxBytes = n
}

// SetRect assigns a new rectangle. The backing array is not resized until
// LazyGrowBufferWithoutInitialization is called.
func (f *Fixed) SetRect(rect image.Rectangle) {
	f.rect = rect.Canon()
}

// LazyGrowBufferWithoutInitialization sizes the backing array for the
// current rectangle. Existing capacity is reused and new bytes are not
// cleared.
func (f *Fixed) LazyGrowBufferWithoutInitialization() error {
	need := f.rect.Dx() * f.rect.Dy() * f.space.PixelSize()
	if need <= cap(f.data) {
		f.data = f.data[:need]
		return nil
	}
	if f.maxBytes > 0 && need > f.maxBytes {
		return fmt.Errorf("%w: %d bytes for %v (budget %d)", ErrBufferTooLarge, need, f.rect, f.maxBytes)
	}
	f.data = make([]byte, need)
	return nil
}

// ColorSpace returns the color space of the pixels.
func (f *Fixed) ColorSpace() *color.Space { return f.space }

// Bounds returns the current rectangle.
func (f *Fixed) Bounds() image.Rectangle { return f.rect }

// Data returns the raw pixel bytes, row-major with no padding.
func (f *Fixed) Data() []byte { return f.data }

// PixelSize returns the number of bytes per pixel.
func (f *Fixed) PixelSize() int { return f.space.PixelSize() }

// RowStride returns the number of bytes per row.
func (f *Fixed) RowStride() int { return f.rect.Dx() * f.space.PixelSize() }

// Fill sets every pixel to c, converting c into the buffer space.
func (f *Fixed) Fill(c color.Color) {
	fillPixels(f.data, c.ConvertedTo(f.space))
}

// ReadBytes copies rect into dst. Pixels outside the buffer are transparent.
func (f *Fixed) ReadBytes(dst []byte, rect image.Rectangle) {
	f.readRect(dst, rect)
}

// WriteBytes copies src, laid out for rect, into the buffer.
func (f *Fixed) WriteBytes(src []byte, rect image.Rectangle) {
	f.writeRect(src, rect)
}

// SampleAt implements Sampler.
func (f *Fixed) SampleAt(x, y float64, dst []byte) {
	f.sample(x, y, f.Interpolation, dst)
}

// Clone returns a deep copy of the buffer.
func (f *Fixed) Clone() *Fixed {
	c := *f
	c.data = append([]byte(nil), f.data...)
	return &c
}

// MirrorX flips the buffer contents horizontally in place.
func (f *Fixed) MirrorX() {
	mirrorX(f.data, f.rect.Dx(), f.rect.Dy(), f.space.PixelSize())
}

// MirrorY flips the buffer contents vertically in place.
func (f *Fixed) MirrorY() {
	mirrorY(f.data, f.rect.Dx(), f.rect.Dy(), f.space.PixelSize())
}

// fillPixels repeats c over data.
func fillPixels(data []byte, c color.Color) {
	px := c.Data()
	ps := len(px)
	if ps == 0 || len(data) < ps {
		return
	}
	copy(data, px)
	// Doubling copy keeps the fill O(n) with few calls.
	for filled := ps; filled < len(data); filled *= 2 {
		copy(data[filled:], data[:filled])
	}
}

func mirrorX(data []byte, w, h, ps int) {
	stride := w * ps
	for y := 0; y < h; y++ {
		row := data[y*stride : y*stride+stride]
		for l, r := 0, w-1; l < r; l, r = l+1, r-1 {
			for i := 0; i < ps; i++ {
				row[l*ps+i], row[r*ps+i] = row[r*ps+i], row[l*ps+i]
			}
		}
	}
}

func mirrorY(data []byte, w, h, ps int) {
	stride := w * ps
	for t, b := 0, h-1; t < b; t, b = t+1, b-1 {
		top := data[t*stride : t*stride+stride]
		bottom := data[b*stride : b*stride+stride]
		for i := range top {
			top[i], bottom[i] = bottom[i], top[i]
		}
	}
}
