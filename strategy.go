package smudge

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/smudge/internal/blend"
	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// DabParams holds the per-dab brush values, all normalized to [0, 1]
// except SmudgeRate (up to MaxSmudgeRate), Scaling ([1, 2]) and
// SmudgeRadius (sample size relative to the dab, above 1 for blurring
// adds the dulling color on top of the blur).
type DabParams struct {
	Opacity       float64
	SmudgeRate    float64
	MaxSmudgeRate float64
	Scaling       float64
	ColorRate     float64
	SmudgeRadius  float64
}

// Strategy blends dabs for one stroke.
//
// A Strategy owns the scratch buffers reused by every dab and must only be
// used from one goroutine at a time.
type Strategy struct {
	mode     Mode
	coloring DabColoring
	scaling  bool
	opts     options

	blendDevice  *device.Fixed
	tempDevice   *device.Fixed
	filterDevice *device.Fixed

	smearOp      blend.Op
	colorRateOp  blend.Op
	dullingColor color.Color
}

// New creates a strategy. scaling enables the smudge scaling factor of
// DabParams. A nil coloring defaults to MaskColoring.
func New(mode Mode, coloring DabColoring, scaling bool, opts ...Option) *Strategy {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if coloring == nil {
		coloring = MaskColoring{}
	}
	return &Strategy{
		mode:     mode,
		coloring: coloring,
		scaling:  scaling,
		opts:     o,
	}
}

// Initialize prepares the strategy for painting into dstSpace.
//
// smearAlpha selects whether the smear carries alpha ("copy") or paints
// over the background ("over"). colorRateOpID names the operator paint is
// mixed in with; unknown ids fall back to "over". Blurring without a blur
// capability falls back to Dulling.
func (s *Strategy) Initialize(dstSpace *color.Space, smearAlpha bool, colorRateOpID string) error {
	if dstSpace == nil {
		return fmt.Errorf("%w: nil destination color space", ErrInvalidConfig)
	}

	smearOp, ok := blend.Lookup(dstSpace, s.SmearCompositeOp(smearAlpha))
	if !ok {
		return fmt.Errorf("%w: no smear operator for %s", ErrInvalidConfig, dstSpace)
	}
	colorRateOp, ok := blend.Lookup(dstSpace, colorRateOpID)
	if !safeAssert(ok, "unknown color rate operator, using over", "op", colorRateOpID) {
		colorRateOp, _ = blend.Lookup(dstSpace, blend.IDOver)
	}

	s.smearOp = smearOp
	s.colorRateOp = colorRateOp
	s.blendDevice = s.newDevice(dstSpace)
	s.tempDevice = nil
	s.dullingColor.ConvertTo(dstSpace)

	if s.mode == Blurring {
		if s.opts.blurrer != nil {
			s.filterDevice = s.newDevice(dstSpace)
		} else {
			Logger().Warn("smudge: no blur capability, falling back to dulling")
			s.mode = Dulling
		}
	}

	Logger().Debug("smudge: strategy initialized",
		"mode", s.mode,
		"space", dstSpace,
		"smearOp", smearOp.ID(),
		"colorRateOp", colorRateOp.ID(),
		"scaling", s.scaling,
	)
	return nil
}

func (s *Strategy) newDevice(space *color.Space) *device.Fixed {
	d := device.NewFixed(space)
	d.SetMaxBytes(s.opts.maxBytes)
	return d
}

// Mode returns the effective blend mode.
func (s *Strategy) Mode() Mode { return s.mode }

// NeededRect returns the source area a dab at srcRect reads for the given
// smudge radius and scaling factor.
func (s *Strategy) NeededRect(srcRect image.Rectangle, radiusFactor, scalingFactor float64) image.Rectangle {
	r := srcRect
	if s.mode == Dulling || (s.mode == Blurring && radiusFactor > 1) {
		r = r.Union(scaleRect(srcRect, s.sampleRadius(radiusFactor)))
	}
	if s.scaling && scalingFactor > 1 {
		r = r.Union(NeededScaleUpRect(srcRect, scalingFactor))
	}
	if s.mode == Blurring && s.opts.blurrer != nil {
		sigma := s.blurSigma(srcRect, radiusFactor)
		r = r.Union(s.opts.blurrer.NeededRect(srcRect, sigma, sigma))
	}
	return r
}

// PreciseColorSpace returns the space dabs are blended in, or the default
// space before Initialize.
func (s *Strategy) PreciseColorSpace() *color.Space {
	if !safeAssert(s.smearOp != nil, "strategy not initialized") {
		return color.Default()
	}
	return s.smearOp.Space()
}

// SmearCompositeOp returns the operator the background is smeared with.
func (s *Strategy) SmearCompositeOp(smearAlpha bool) string {
	if smearAlpha {
		return blend.IDCopy
	}
	return blend.IDOver
}

// FinalCompositeOp returns the operator destinations composite the dab
// with.
func (s *Strategy) FinalCompositeOp(bool) string {
	return blend.IDCopy
}

// FinalPainterOpacity returns the destination opacity. The blend strength
// is already part of the dab, so it is always opaque.
func (s *Strategy) FinalPainterOpacity(opacity, smudgeRate float64) uint8 {
	return 255
}

// ColorRateOpacity returns colorRate² · opacity as an 8-bit opacity.
func (s *Strategy) ColorRateOpacity(opacity, smudgeRate, colorRate, maxSmudgeRate float64) uint8 {
	return quantize(colorRate * colorRate * opacity)
}

// DullingRateOpacity returns 0.8 · smudgeRate · opacity as an 8-bit
// opacity.
func (s *Strategy) DullingRateOpacity(opacity, smudgeRate float64) uint8 {
	return quantize(0.8 * smudgeRate * opacity)
}

// SmearRateOpacity returns smudgeRate · opacity as an 8-bit opacity.
func (s *Strategy) SmearRateOpacity(opacity, smudgeRate float64) uint8 {
	return quantize(smudgeRate * opacity)
}

// quantize rounds v·255 half away from zero into [0, 255].
func quantize(v float64) uint8 {
	q := math.Round(v * 255)
	if q <= 0 {
		return 0
	}
	if q >= 255 {
		return 255
	}
	return uint8(q)
}

// BlendBrush blends one dab and composites it through mask onto every
// destination.
//
// srcRect is where the background is taken from and dstRect where the dab
// lands; both have the size of mask. neededRect is the area returned by
// NeededRect for srcRect. preserveMask keeps mask unmodified when more than
// one destination renders mirrored copies.
//
// Precondition faults are logged and skip the dab. When dulling samples
// nothing (zero radius or no mask weight under the sample) the background
// is kept as read from src. The only errors are ErrNotInitialized and
// scratch growth failures wrapping device.ErrBufferTooLarge; the latter
// must abort the stroke.
func (s *Strategy) BlendBrush(dsts []*Painter, src Source, mask *device.Mask, preserveMask bool,
	neededRect, srcRect, dstRect image.Rectangle, paint color.Color, p DabParams) error {
	if s.blendDevice == nil {
		return ErrNotInitialized
	}
	if dstRect.Empty() || mask.Empty() {
		return nil
	}
	if !safeAssert(srcRect.Size() == dstRect.Size(), "source and destination rects differ",
		"src", srcRect, "dst", dstRect) {
		return nil
	}
	if !safeAssert(src.ColorSpace().Equal(s.blendDevice.ColorSpace()), "source color space mismatch",
		"source", src.ColorSpace(), "blend", s.blendDevice.ColorSpace()) {
		return nil
	}

	colorRateOpacity := s.ColorRateOpacity(p.Opacity, p.SmudgeRate, p.ColorRate, p.MaxSmudgeRate)

	// The dulling color is only valid for this dab when sampled is set.
	sampled := false
	if s.mode == Dulling || (s.mode == Blurring && p.SmudgeRadius > 1) {
		ok, err := SampleDullingColor(srcRect, s.sampleRadius(p.SmudgeRadius), src,
			s.blendDevice, mask, &s.dullingColor)
		if err != nil {
			return err
		}
		sampled = ok
		if !ok {
			Logger().Debug("smudge: nothing sampled, keeping the background",
				"src", srcRect, "radius", p.SmudgeRadius)
		}
		if ok && !safeAssert(s.dullingColor.Space().Equal(s.colorRateOp.Space()), "dulling color space drifted",
			"dulling", s.dullingColor.Space(), "op", s.colorRateOp.Space()) {
			s.dullingColor.ConvertTo(s.colorRateOp.Space())
		}
	}

	s.blendDevice.SetRect(dstRect)
	if err := s.blendDevice.LazyGrowBufferWithoutInitialization(); err != nil {
		return fmt.Errorf("blend device: %w", err)
	}

	paintColor := paint.ConvertedTo(s.dullingColor.Space())
	dullingRateOpacity := s.DullingRateOpacity(p.Opacity, p.SmudgeRate)

	if sampled && s.canFuse(colorRateOpacity, dullingRateOpacity) {
		s.coloring.BlendInFusedBackgroundAndColorRateWithDulling(s.blendDevice, src, dstRect,
			s.dullingColor, s.smearOp, dullingRateOpacity,
			paintColor, s.colorRateOp, colorRateOpacity)
	} else {
		var err error
		switch s.mode {
		case Smearing:
			err = s.blendInBackgroundWithSmearing(src, srcRect, dstRect,
				s.SmearRateOpacity(p.Opacity, p.SmudgeRate), p.Scaling)
		case Dulling:
			if sampled {
				s.blendInBackgroundWithDulling(src, dstRect, dullingRateOpacity)
			} else {
				src.ReadBytes(s.blendDevice.Data(), dstRect)
			}
		case Blurring:
			err = s.blendInBackgroundWithBlurring(src, neededRect, srcRect, dstRect,
				s.SmearRateOpacity(p.Opacity, p.SmudgeRate), p.SmudgeRadius, p.Scaling)
			if err == nil && sampled {
				s.blendInDullingOverBlur(dstRect, dullingRateOpacity, p.SmudgeRadius)
			}
		}
		if err != nil {
			return err
		}

		if colorRateOpacity > 0 {
			s.coloring.BlendInColorRate(paintColor, s.colorRateOp, colorRateOpacity, s.blendDevice, dstRect)
		}
	}

	preserve := preserveMask && len(dsts) > 1
	for _, d := range dsts {
		d.SetOpacity(s.FinalPainterOpacity(p.Opacity, p.SmudgeRate))
		if err := d.BltFixedWithFixedSelection(dstRect.Min, s.blendDevice, mask); err != nil {
			return err
		}
		if err := d.RenderMirrorMaskSafe(dstRect, s.blendDevice, mask, preserve); err != nil {
			return err
		}
	}
	return nil
}

// canFuse reports whether dulling and color rate can run as one fill with
// the same result as two passes.
func (s *Strategy) canFuse(colorRateOpacity, dullingRateOpacity uint8) bool {
	if colorRateOpacity == 0 || s.mode != Dulling || !s.coloring.SupportsFusedDullingBlending() {
		return false
	}
	smear, rate := s.smearOp.ID(), s.colorRateOp.ID()
	return (smear == blend.IDOver && rate == blend.IDOver) ||
		(smear == blend.IDCopy && dullingRateOpacity == 255)
}

// sampleRadius returns the dulling sample radius. Blurring samples exactly
// the dab and uses the excess radius as dulling strength instead.
func (s *Strategy) sampleRadius(radiusFactor float64) float64 {
	if s.mode == Blurring {
		return 1
	}
	return radiusFactor
}

// blurSigma converts the smudge radius into a Gaussian sigma for the
// current level of detail. The radius is clipped to the dab.
func (s *Strategy) blurSigma(srcRect image.Rectangle, radiusFactor float64) float64 {
	r := min(radiusFactor, 1) * float64(min(srcRect.Dx(), srcRect.Dy())) / 2
	r = s.opts.lod.Transform(r)
	if r <= 0 {
		return 0
	}
	return 0.3*r + 0.3
}

func (s *Strategy) blendInBackgroundWithSmearing(src Source, srcRect, dstRect image.Rectangle, opacity uint8, scaling float64) error {
	return s.blendInSource(src, src, srcRect, dstRect, opacity, scaling)
}

func (s *Strategy) blendInBackgroundWithDulling(src Source, dstRect image.Rectangle, opacity uint8) {
	dst := s.blendDevice
	if s.smearOp.ID() == blend.IDCopy && opacity == 255 {
		dst.Fill(s.dullingColor)
		return
	}

	src.ReadBytes(dst.Data(), dstRect)
	s.smearOp.Composite(blend.Params{
		Dst:          dst.Data(),
		DstRowStride: dst.RowStride(),
		Src:          s.dullingColor.Data(),
		Rows:         1,
		Cols:         dstRect.Dx() * dstRect.Dy(),
		Opacity:      opacity,
	})
}

// blendInBackgroundWithBlurring blurs the source around srcRect in the
// filter device, then smears the blurred pixels like Smearing does.
// Scaling is applied after the blur.
func (s *Strategy) blendInBackgroundWithBlurring(src Source, neededRect, srcRect, dstRect image.Rectangle,
	opacity uint8, radiusFactor, scaling float64) error {
	sigma := s.blurSigma(srcRect, radiusFactor)
	area := neededRect.Union(s.opts.blurrer.NeededRect(srcRect, sigma, sigma))

	fd := s.filterDevice
	fd.SetRect(area)
	if err := fd.LazyGrowBufferWithoutInitialization(); err != nil {
		return fmt.Errorf("filter device: %w", err)
	}
	src.ReadBytes(fd.Data(), area)
	s.opts.blurrer.Blur(fd, srcRect, sigma, sigma, nil)

	return s.blendInSource(src, fd, srcRect, dstRect, opacity, scaling)
}

// blendInDullingOverBlur lays the sampled dulling color over the blurred
// dab, reaching full dulling strength at radius 2.
func (s *Strategy) blendInDullingOverBlur(dstRect image.Rectangle, dullingRateOpacity uint8, radiusFactor float64) {
	amount := min(radiusFactor-1, 1)
	opacity := quantize(amount * float64(dullingRateOpacity) / 255)
	s.smearOp.Composite(blend.Params{
		Dst:          s.blendDevice.Data(),
		DstRowStride: s.blendDevice.RowStride(),
		Src:          s.dullingColor.Data(),
		Rows:         1,
		Cols:         dstRect.Dx() * dstRect.Dy(),
		Opacity:      opacity,
	})
}

// blendInSource carries srcRect of src over the background read from bg at
// dstRect, using the smear operator and magnifying by scaling when enabled.
func (s *Strategy) blendInSource(bg, src Source, srcRect, dstRect image.Rectangle, opacity uint8, scaling float64) error {
	dst := s.blendDevice
	scaled := s.scaling && scaling > 1

	if s.smearOp.ID() == blend.IDCopy && opacity == 255 {
		if scaled {
			ScaleUp(dst, dstRect, src, srcRect, scaling)
		} else {
			src.ReadBytes(dst.Data(), srcRect)
		}
		return nil
	}

	bg.ReadBytes(dst.Data(), dstRect)

	tmp, err := s.temp(src.ColorSpace(), srcRect)
	if err != nil {
		return err
	}
	if scaled {
		ScaleUp(tmp, srcRect, src, srcRect, scaling)
	} else {
		src.ReadBytes(tmp.Data(), srcRect)
	}

	s.smearOp.Composite(blend.Params{
		Dst:          dst.Data(),
		DstRowStride: dst.RowStride(),
		Src:          tmp.Data(),
		SrcRowStride: tmp.RowStride(),
		Rows:         dstRect.Dy(),
		Cols:         dstRect.Dx(),
		Opacity:      opacity,
	})
	return nil
}

// temp returns the reusable temporary device sized to rect.
func (s *Strategy) temp(space *color.Space, rect image.Rectangle) (*device.Fixed, error) {
	if s.tempDevice == nil || !s.tempDevice.ColorSpace().Equal(space) {
		s.tempDevice = s.newDevice(space)
	}
	s.tempDevice.SetRect(rect)
	if err := s.tempDevice.LazyGrowBufferWithoutInitialization(); err != nil {
		return nil, fmt.Errorf("temp device: %w", err)
	}
	return s.tempDevice, nil
}
