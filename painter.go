package smudge

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/smudge/internal/blend"
	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Painter composites finished dabs onto a destination surface, optionally
// repeating them mirrored around an axis.
type Painter struct {
	surface *device.Surface
	opID    string
	opacity uint8

	mirrorH, mirrorV bool
	axis             f64.Vec2

	converted *device.Fixed
	maxBytes  int
}

// NewPainter creates a painter over surface using "over" at full opacity.
func NewPainter(surface *device.Surface) *Painter {
	return &Painter{
		surface: surface,
		opID:     blend.IDOver,
		opacity:  255,
		maxBytes: device.DefaultMaxBytes,
	}
}

// Surface returns the destination surface.
func (p *Painter) Surface() *device.Surface { return p.surface }

// SetCompositeOp sets the operator dabs are composited with.
func (p *Painter) SetCompositeOp(id string) { p.opID = id }

// SetOpacity sets the opacity dabs are composited at.
func (p *Painter) SetOpacity(opacity uint8) { p.opacity = opacity }

// Opacity returns the current opacity.
func (p *Painter) Opacity() uint8 { return p.opacity }

// SetMaxBufferBytes sets the byte budget of the buffer dabs are converted
// into when their color space differs from the surface. A value <= 0
// disables the budget.
func (p *Painter) SetMaxBufferBytes(n int) {
	p.maxBytes = n
	if p.converted != nil {
		p.converted.SetMaxBytes(n)
	}
}

// SetMirror enables mirrored copies across the vertical line x = axis[0]
// (horizontal) and the horizontal line y = axis[1] (vertical).
func (p *Painter) SetMirror(horizontal, vertical bool, axis f64.Vec2) {
	p.mirrorH = horizontal
	p.mirrorV = vertical
	p.axis = axis
}

// BltFixedWithFixedSelection composites src through selection onto the
// surface with its top-left corner at dst. The selection is aligned with
// src; pixels outside the surface are skipped. The only error is a
// failure to grow the conversion buffer.
func (p *Painter) BltFixedWithFixedSelection(dst image.Point, src *device.Fixed, selection *device.Mask) error {
	if src == nil || selection.Empty() {
		return nil
	}
	size := src.Bounds().Size()
	size.X = min(size.X, selection.Width())
	size.Y = min(size.Y, selection.Height())

	target := image.Rectangle{Min: dst, Max: dst.Add(size)}
	clip := target.Intersect(p.surface.Bounds())
	if clip.Empty() || p.opacity == 0 {
		return nil
	}

	space := p.surface.ColorSpace()
	op, ok := blend.Lookup(space, p.opID)
	if !safeAssert(ok, "unknown composite operator, using over", "op", p.opID) {
		op, _ = blend.Lookup(space, blend.IDOver)
	}
	src, err := p.inSpace(src, space)
	if err != nil {
		return err
	}

	ps := space.PixelSize()
	sb := p.surface.Bounds()
	dstStride := sb.Dx() * ps
	dx, dy := clip.Min.X-target.Min.X, clip.Min.Y-target.Min.Y

	op.Composite(blend.Params{
		Dst:           p.surface.Data()[(clip.Min.Y-sb.Min.Y)*dstStride+(clip.Min.X-sb.Min.X)*ps:],
		DstRowStride:  dstStride,
		Src:           src.Data()[dy*src.RowStride()+dx*ps:],
		SrcRowStride:  src.RowStride(),
		Mask:          selection.Data()[dy*selection.RowStride()+dx:],
		MaskRowStride: selection.RowStride(),
		Rows:          clip.Dy(),
		Cols:          clip.Dx(),
		Opacity:       p.opacity,
	})
	return nil
}

// inSpace returns src converted into space, reusing a scratch device.
func (p *Painter) inSpace(src *device.Fixed, space *color.Space) (*device.Fixed, error) {
	if safeAssert(src.ColorSpace().Equal(space), "dab color space differs from destination, converting",
		"dab", src.ColorSpace(), "destination", space) {
		return src, nil
	}
	if p.converted == nil || !p.converted.ColorSpace().Equal(space) {
		p.converted = device.NewFixed(space)
		p.converted.SetMaxBytes(p.maxBytes)
	}
	b := src.Bounds()
	p.converted.SetRect(b)
	if err := p.converted.LazyGrowBufferWithoutInitialization(); err != nil {
		return nil, fmt.Errorf("converted dab: %w", err)
	}
	color.ConvertPixels(p.converted.Data(), space, src.Data(), src.ColorSpace(), b.Dx()*b.Dy())
	return p.converted, nil
}

// RenderMirrorMaskSafe composites the mirrored copies of a dab already
// blitted at rect. Mirroring flips dab and mask in place; with preserve
// set it works on copies so both stay usable for another painter.
func (p *Painter) RenderMirrorMaskSafe(rect image.Rectangle, dab *device.Fixed, mask *device.Mask, preserve bool) error {
	if !p.mirrorH && !p.mirrorV {
		return nil
	}
	if preserve {
		dab = dab.Clone()
		mask = mask.Clone()
	}

	mx := int(math.Round(2*p.axis[0])) - rect.Max.X
	my := int(math.Round(2*p.axis[1])) - rect.Max.Y

	if p.mirrorH {
		dab.MirrorX()
		mask.MirrorX()
		if err := p.BltFixedWithFixedSelection(image.Pt(mx, rect.Min.Y), dab, mask); err != nil {
			return err
		}
	}
	switch {
	case p.mirrorH && p.mirrorV:
		dab.MirrorY()
		mask.MirrorY()
		if err := p.BltFixedWithFixedSelection(image.Pt(mx, my), dab, mask); err != nil {
			return err
		}

		dab.MirrorX()
		mask.MirrorX()
		return p.BltFixedWithFixedSelection(image.Pt(rect.Min.X, my), dab, mask)
	case p.mirrorV:
		dab.MirrorY()
		mask.MirrorY()
		return p.BltFixedWithFixedSelection(image.Pt(rect.Min.X, my), dab, mask)
	}
	return nil
}
