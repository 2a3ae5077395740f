package smudge

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/smudge/internal/device"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// NewRoundDab returns an anti-aliased circular dab mask of the given
// diameter centered at center, aligned to the pixel grid.
//
// hardness in [0, 1] is the fraction of the radius painted at full
// strength; beyond it the weight falls off linearly to zero at the edge.
func NewRoundDab(diameter, hardness float64, center f64.Vec2) *device.Mask {
	r := diameter / 2
	if r <= 0 {
		return device.NewMask(image.Rectangle{})
	}
	hardness = min(max(hardness, 0), 1)

	rect := image.Rect(
		int(math.Floor(center[0]-r)), int(math.Floor(center[1]-r)),
		int(math.Ceil(center[0]+r)), int(math.Ceil(center[1]+r)),
	)
	w, h := rect.Dx(), rect.Dy()

	// Circle in mask-local coordinates.
	cx := float32(center[0] - float64(rect.Min.X))
	cy := float32(center[1] - float64(rect.Min.Y))
	rr := float32(r)
	k := rr * kappa

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	z.MoveTo(cx+rr, cy)
	z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	z.ClosePath()

	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	mask := device.NewMask(rect)
	data := mask.Data()
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - float64(cy)
		for x := 0; x < w; x++ {
			a := coverage.Pix[y*coverage.Stride+x]
			if a == 0 {
				continue
			}
			dx := float64(x) + 0.5 - float64(cx)
			d := math.Sqrt(dx*dx+dy*dy) / r
			f := falloff(d, hardness)
			data[y*w+x] = uint8(float64(a)*f + 0.5)
		}
	}
	return mask
}

// falloff returns the weight at normalized distance d from the center.
// A hardness of 1 keeps the anti-aliased coverage unchanged.
func falloff(d, hardness float64) float64 {
	if d <= hardness || hardness >= 1 {
		return 1
	}
	if d >= 1 {
		return 0
	}
	return (1 - d) / (1 - hardness)
}
