package smudge

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/smudge/internal/device"
)

// NeededScaleUpRect returns the source area a scale-up of rect by factor
// reads: rect shrunk by 1/factor around its center, rounded outward so
// partially covered pixels are included.
func NeededScaleUpRect(rect image.Rectangle, factor float64) image.Rectangle {
	if factor <= 1 {
		return rect
	}
	cx := float64(rect.Min.X) + float64(rect.Dx())/2
	cy := float64(rect.Min.Y) + float64(rect.Dy())/2
	hw := float64(rect.Dx()) / 2 / factor
	hh := float64(rect.Dy()) / 2 / factor
	return image.Rect(
		int(math.Floor(cx-hw)), int(math.Floor(cy-hh)),
		int(math.Ceil(cx+hw)), int(math.Ceil(cy+hh)),
	)
}

// scaleUpTransform maps destination coordinates in rect to source
// coordinates: a zoom by factor anchored at both rectangle centers.
func scaleUpTransform(rect, srcRect image.Rectangle, factor float64) f64.Aff3 {
	inv := 1 / factor
	dcx := float64(rect.Min.X) + float64(rect.Dx())/2
	dcy := float64(rect.Min.Y) + float64(rect.Dy())/2
	scx := float64(srcRect.Min.X) + float64(srcRect.Dx())/2
	scy := float64(srcRect.Min.Y) + float64(srcRect.Dy())/2
	return f64.Aff3{
		inv, 0, scx - dcx*inv,
		0, inv, scy - dcy*inv,
	}
}

// ScaleUp fills dst, laid out for rect, with srcRect of src magnified by
// factor around the centers. Sub-pixel reads go through src's own
// SampleAt. factor is clamped to [1, 2]; 1 copies the pixels unchanged.
func ScaleUp(dst *device.Fixed, rect image.Rectangle, src Source, srcRect image.Rectangle, factor float64) {
	if rect.Empty() {
		return
	}
	factor = min(max(factor, 1), 2)
	if factor == 1 && rect.Size() == srcRect.Size() {
		src.ReadBytes(dst.Data(), srcRect)
		return
	}

	m := scaleUpTransform(rect, srcRect, factor)
	ps := dst.PixelSize()
	data := dst.Data()
	w := rect.Dx()
	for y := 0; y < rect.Dy(); y++ {
		py := float64(rect.Min.Y+y) + 0.5
		for x := 0; x < w; x++ {
			px := float64(rect.Min.X+x) + 0.5
			sx := m[0]*px + m[1]*py + m[2]
			sy := m[3]*px + m[4]*py + m[5]
			o := (y*w + x) * ps
			src.SampleAt(sx, sy, data[o:o+ps])
		}
	}
}
