// Package smudge implements a color-smudge brush engine.
//
// # Overview
//
// For every dab stamped during a stroke, the engine blends the pixels
// already under the brush ("background") with the paint color into a
// scratch buffer, then composites that buffer through the dab mask onto
// one or more destination layers. Three blend modes are available:
//
//   - Smearing drags the pixels under the previous dab position forward.
//   - Dulling replaces the background with a single averaged color.
//   - Blurring drags a Gaussian-blurred copy of the background.
//
// Paint color is mixed in afterwards at a rate controlled by the
// color-rate parameter, either as a flat color (MaskColoring) or from the
// brush's own colored dab (StampColoring).
//
// # Quick Start
//
//	surface, _ := smudge.NewSurface(smudge.SRGB, image.Rect(0, 0, 512, 512))
//
//	cfg := smudge.DefaultConfig()
//	cfg.Mode = smudge.Dulling
//
//	stroke, err := smudge.NewStroke(cfg, surface)
//	if err != nil {
//		return err
//	}
//	stroke.PaintLine(f64.Vec2{10, 10}, f64.Vec2{400, 300})
//	stroke.End()
//
// # Lower-level API
//
// Brush engines that place dabs themselves use Strategy directly:
// construct one per stroke with New, call Initialize once with the
// destination color space, then call BlendBrush for every dab. A Strategy
// owns scratch buffers that are reused across dabs and is not safe for
// concurrent use; independent strokes may run in parallel on separate
// strategies.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive debug
// lifecycle events and warnings about recovered faults.
package smudge
