package device

import "image"

// Mask holds 8-bit weights aligned to a dab rectangle.
// Values range from 0 (no effect) to 255 (full effect).
type Mask struct {
	rect image.Rectangle
	data []uint8
}

// NewMask creates a zeroed mask covering rect.
func NewMask(rect image.Rectangle) *Mask {
	rect = rect.Canon()
	return &Mask{
		rect: rect,
		data: make([]uint8, rect.Dx()*rect.Dy()),
	}
}

// Bounds returns the rectangle the mask is aligned to.
func (m *Mask) Bounds() image.Rectangle { return m.rect }

// Width returns the mask width.
func (m *Mask) Width() int { return m.rect.Dx() }

// Height returns the mask height.
func (m *Mask) Height() int { return m.rect.Dy() }

// RowStride returns the number of bytes per row.
func (m *Mask) RowStride() int { return m.rect.Dx() }

// Data returns the underlying weights, row-major.
func (m *Mask) Data() []uint8 { return m.data }

// At returns the weight at local coordinates (x, y), 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.rect.Dx() || y < 0 || y >= m.rect.Dy() {
		return 0
	}
	return m.data[y*m.rect.Dx()+x]
}

// Set sets the weight at local coordinates (x, y).
func (m *Mask) Set(x, y int, v uint8) {
	if x < 0 || x >= m.rect.Dx() || y < 0 || y >= m.rect.Dy() {
		return
	}
	m.data[y*m.rect.Dx()+x] = v
}

// Fill sets every weight to v.
func (m *Mask) Fill(v uint8) {
	for i := range m.data {
		m.data[i] = v
	}
}

// MoveTo aligns the mask to a rectangle of the same size at p.
func (m *Mask) MoveTo(p image.Point) {
	m.rect = m.rect.Sub(m.rect.Min).Add(p)
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{
		rect: m.rect,
		data: append([]uint8(nil), m.data...),
	}
}

// MirrorX flips the weights horizontally in place.
func (m *Mask) MirrorX() {
	mirrorX(m.data, m.rect.Dx(), m.rect.Dy(), 1)
}

// MirrorY flips the weights vertically in place.
func (m *Mask) MirrorY() {
	mirrorY(m.data, m.rect.Dx(), m.rect.Dy(), 1)
}

// Empty reports whether the mask covers no pixels.
func (m *Mask) Empty() bool {
	return m == nil || m.rect.Empty()
}
