package smudge

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Stroke paints a sequence of dabs onto a surface with one brush preset.
// Each dab smudges the pixels under the previous dab position into its own
// position.
//
// A Stroke is not safe for concurrent use.
type Stroke struct {
	cfg      Config
	surface  *device.Surface
	strategy *Strategy
	stamp    *StampColoring
	stampDev *device.Fixed
	painter  *Painter
	paint    color.Color
	params   DabParams

	step      float64
	last      f64.Vec2
	hasLast   bool
	travelled float64

	dabs int
	err  error
}

// NewStroke validates cfg and prepares a stroke over surface. Dabs are
// blended in the surface color space.
func NewStroke(cfg Config, surface *device.Surface, opts ...Option) (*Stroke, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrInvalidConfig)
	}
	space := surface.ColorSpace()

	paint, err := cfg.Paint(space)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Stroke{
		cfg:     cfg,
		surface: surface,
		paint:   paint,
		params:  cfg.DabParams(),
		step:    max(cfg.Spacing*cfg.Diameter, 1),
	}

	var coloring DabColoring = MaskColoring{}
	if cfg.Coloring == ColoringStamp {
		s.stamp = &StampColoring{}
		coloring = s.stamp
	}

	opts = append([]Option{WithLevelOfDetail(cfg.LevelOfDetail)}, opts...)
	s.strategy = New(cfg.Mode, coloring, cfg.SmudgeScaling, opts...)
	if err := s.strategy.Initialize(space, cfg.SmearAlpha, cfg.ColorRateOp); err != nil {
		return nil, err
	}

	if s.stamp != nil {
		s.stampDev = device.NewFixed(space)
		s.stampDev.SetMaxBytes(s.strategy.opts.maxBytes)
	}

	s.painter = NewPainter(surface)
	s.painter.SetMaxBufferBytes(s.strategy.opts.maxBytes)
	s.painter.SetCompositeOp(s.strategy.FinalCompositeOp(cfg.SmearAlpha))
	if cfg.MirrorHorizontal || cfg.MirrorVertical {
		b := surface.Bounds()
		axis := f64.Vec2{
			float64(b.Min.X) + float64(b.Dx())/2,
			float64(b.Min.Y) + float64(b.Dy())/2,
		}
		s.painter.SetMirror(cfg.MirrorHorizontal, cfg.MirrorVertical, axis)
	}
	return s, nil
}

// Strategy returns the strategy blending the dabs.
func (s *Stroke) Strategy() *Strategy { return s.strategy }

// Dabs returns the number of dabs painted so far.
func (s *Stroke) Dabs() int { return s.dabs }

// Aborted reports whether a dab failed and the stroke stopped.
func (s *Stroke) Aborted() bool { return s.err != nil }

// PaintAt paints one dab centered at p.
func (s *Stroke) PaintAt(p f64.Vec2) error {
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrStrokeAborted, s.err)
	}

	mask := NewRoundDab(s.cfg.Diameter, s.cfg.Hardness, p)
	dstRect := mask.Bounds()
	srcRect := dstRect
	if s.hasLast {
		// The source keeps the dab's sub-pixel alignment.
		d := image.Pt(int(math.Round(s.last[0]-p[0])), int(math.Round(s.last[1]-p[1])))
		srcRect = dstRect.Add(d)
	}
	neededRect := s.strategy.NeededRect(srcRect, s.params.SmudgeRadius, s.params.Scaling)

	if s.stamp != nil {
		dab, err := s.stampDab(mask)
		if err != nil {
			return s.abort(err)
		}
		s.stamp.SetStampDab(dab)
	}

	err := s.strategy.BlendBrush([]*Painter{s.painter}, s.surface, mask, false,
		neededRect, srcRect, dstRect, s.paint, s.params)
	if err != nil {
		return s.abort(err)
	}

	s.last = p
	s.hasLast = true
	s.dabs++
	return nil
}

// stampDab builds the colored brush tip into the stroke's reused stamp
// buffer: the paint color with the mask as alpha.
func (s *Stroke) stampDab(mask *device.Mask) (*device.Fixed, error) {
	space := s.surface.ColorSpace()
	dab := s.stampDev
	dab.SetRect(mask.Bounds())
	if err := dab.LazyGrowBufferWithoutInitialization(); err != nil {
		return nil, fmt.Errorf("stamp dab: %w", err)
	}
	dab.Fill(s.paint)

	ps := space.PixelSize()
	alpha := space.AlphaIndex()
	data := dab.Data()
	for i, m := range mask.Data() {
		data[i*ps+alpha] = m
	}
	return dab, nil
}

func (s *Stroke) abort(err error) error {
	s.err = err
	Logger().Warn("smudge: stroke aborted", "dabs", s.dabs, "err", err)
	return fmt.Errorf("%w: %w", ErrStrokeAborted, err)
}

// PaintLine paints dabs from `from` to `to`, one every spacing·diameter
// pixels. Distance left over after the last dab carries into the next
// call, so a polyline painted segment by segment has even spacing. A dab is
// placed at from when the stroke has none yet.
func (s *Stroke) PaintLine(from, to f64.Vec2) error {
	if !s.hasLast {
		if err := s.PaintAt(from); err != nil {
			return err
		}
		s.travelled = 0
	}

	dx, dy := to[0]-from[0], to[1]-from[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length

	placed := -1.0
	for d := s.step - s.travelled; d <= length; d += s.step {
		if err := s.PaintAt(f64.Vec2{from[0] + ux*d, from[1] + uy*d}); err != nil {
			return err
		}
		placed = d
	}
	if placed >= 0 {
		s.travelled = length - placed
	} else {
		s.travelled += length
	}
	return nil
}

// End finishes the stroke and returns the error that aborted it, if any.
func (s *Stroke) End() error {
	Logger().Debug("smudge: stroke ended", "dabs", s.dabs, "aborted", s.err != nil)
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrStrokeAborted, s.err)
	}
	return nil
}
