package smudge

import (
	"image"

	"github.com/gogpu/smudge/internal/blend"
	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// DabColoring mixes paint into the blended dab.
type DabColoring interface {
	// SupportsFusedDullingBlending reports whether the dulling background
	// and the color-rate pass can run as one fill.
	SupportsFusedDullingBlending() bool

	// BlendInColorRate composites paint into dst, laid out for dstRect,
	// with op at opacity.
	BlendInColorRate(paint color.Color, op blend.Op, opacity uint8, dst *device.Fixed, dstRect image.Rectangle)

	// BlendInFusedBackgroundAndColorRateWithDulling mixes dulling and paint
	// into one color and applies it to dst in a single pass.
	BlendInFusedBackgroundAndColorRateWithDulling(dst *device.Fixed, src Source, dstRect image.Rectangle,
		dulling color.Color, smearOp blend.Op, smearOpacity uint8,
		paint color.Color, colorRateOp blend.Op, colorRateOpacity uint8)
}

// MaskColoring mixes in the flat paint color. It is stateless.
type MaskColoring struct{}

// SupportsFusedDullingBlending returns true.
func (MaskColoring) SupportsFusedDullingBlending() bool { return true }

// BlendInFusedBackgroundAndColorRateWithDulling implements DabColoring.
func (MaskColoring) BlendInFusedBackgroundAndColorRateWithDulling(dst *device.Fixed, src Source, dstRect image.Rectangle,
	dulling color.Color, smearOp blend.Op, smearOpacity uint8,
	paint color.Color, colorRateOp blend.Op, colorRateOpacity uint8) {
	if !safeAssert(paint.Space().Equal(colorRateOp.Space()), "paint color space mismatch",
		"paint", paint.Space(), "op", colorRateOp.Space()) {
		return
	}

	fill := dulling
	colorRateOp.Composite(blend.Params{
		Dst:     fill.Data(),
		Src:     paint.Data(),
		Rows:    1,
		Cols:    1,
		Opacity: colorRateOpacity,
	})

	if smearOp.ID() == blend.IDCopy && smearOpacity == 255 {
		dst.Fill(fill)
		return
	}

	src.ReadBytes(dst.Data(), dstRect)
	smearOp.Composite(blend.Params{
		Dst:          dst.Data(),
		DstRowStride: dst.RowStride(),
		Src:          fill.Data(),
		Rows:         1,
		Cols:         dstRect.Dx() * dstRect.Dy(),
		Opacity:      smearOpacity,
	})
}

// BlendInColorRate broadcasts paint over dst.
func (MaskColoring) BlendInColorRate(paint color.Color, op blend.Op, opacity uint8, dst *device.Fixed, dstRect image.Rectangle) {
	if !safeAssert(paint.Space().Equal(op.Space()), "paint color space mismatch",
		"paint", paint.Space(), "op", op.Space()) {
		return
	}

	op.Composite(blend.Params{
		Dst:          dst.Data(),
		DstRowStride: dstRect.Dx() * dst.PixelSize(),
		Src:          paint.Data(),
		Rows:         dstRect.Dy(),
		Cols:         dstRect.Dx(),
		Opacity:      opacity,
	})
}

// StampColoring mixes in a colored dab captured with SetStampDab, such as
// a textured brush tip. It cannot fuse with dulling.
type StampColoring struct {
	dab *device.Fixed
}

// SetStampDab sets the dab mixed in by the next BlendInColorRate. The dab
// must cover the destination rectangle size.
func (s *StampColoring) SetStampDab(dab *device.Fixed) {
	s.dab = dab
}

// SupportsFusedDullingBlending returns false.
func (*StampColoring) SupportsFusedDullingBlending() bool { return false }

// BlendInFusedBackgroundAndColorRateWithDulling does nothing; callers use
// the two-pass path.
func (*StampColoring) BlendInFusedBackgroundAndColorRateWithDulling(*device.Fixed, Source, image.Rectangle,
	color.Color, blend.Op, uint8, color.Color, blend.Op, uint8) {
}

// BlendInColorRate composites the stamp dab over dst. paint is ignored.
// dst is left untouched when the dab is missing, too small or in another
// color space.
func (s *StampColoring) BlendInColorRate(_ color.Color, op blend.Op, opacity uint8, dst *device.Fixed, dstRect image.Rectangle) {
	if !safeAssert(s.dab != nil, "stamp dab not set") {
		return
	}
	if !safeAssert(dst.ColorSpace().Equal(s.dab.ColorSpace()), "stamp dab space mismatch",
		"dst", dst.ColorSpace(), "dab", s.dab.ColorSpace()) {
		return
	}
	b := s.dab.Bounds()
	if !safeAssert(b.Dx() >= dstRect.Dx() && b.Dy() >= dstRect.Dy(), "stamp dab smaller than dab rect",
		"dab", b, "rect", dstRect) {
		return
	}

	op.Composite(blend.Params{
		Dst:          dst.Data(),
		DstRowStride: dstRect.Dx() * dst.PixelSize(),
		Src:          s.dab.Data(),
		SrcRowStride: s.dab.RowStride(),
		Rows:         dstRect.Dy(),
		Cols:         dstRect.Dx(),
		Opacity:      opacity,
	})
}

var (
	_ DabColoring = MaskColoring{}
	_ DabColoring = (*StampColoring)(nil)
)
