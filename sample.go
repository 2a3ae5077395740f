package smudge

import (
	"fmt"
	"image"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// SampleDullingColor averages the pixels of src under mask into result.
//
// The sampled area is srcRect scaled by radius around its center; the mask
// is stretched over it. Colors are weighted by mask value and alpha, and
// the resulting alpha is the mask-weighted mean alpha. A fully transparent
// sample keeps the mask-weighted mean of its color channels. A nil mask
// weights every pixel fully.
//
// scratch receives the raw source pixels and must share the source color
// space. SampleDullingColor reports false and leaves result untouched when
// nothing was sampled. The only error is a failure to grow scratch.
func SampleDullingColor(srcRect image.Rectangle, radius float64, src Source,
	scratch *device.Fixed, mask *device.Mask, result *color.Color) (bool, error) {
	if srcRect.Empty() || radius <= 0 {
		return false, nil
	}
	space := src.ColorSpace()
	if !safeAssert(scratch.ColorSpace().Equal(space), "sample scratch space mismatch",
		"scratch", scratch.ColorSpace(), "source", space) {
		return false, nil
	}

	rect := scaleRect(srcRect, radius)
	scratch.SetRect(rect)
	if err := scratch.LazyGrowBufferWithoutInitialization(); err != nil {
		return false, fmt.Errorf("sample dulling color: %w", err)
	}
	src.ReadBytes(scratch.Data(), rect)

	ps := space.PixelSize()
	alpha := space.AlphaIndex()
	data := scratch.Data()
	w, h := rect.Dx(), rect.Dy()

	var sums, plain [color.MaxChannels]uint64
	var alphaSum, weightSum uint64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			weight := uint64(255)
			if mask != nil {
				weight = uint64(mask.At(x*mask.Width()/w, y*mask.Height()/h))
				if weight == 0 {
					continue
				}
			}
			px := data[(y*w+x)*ps:]
			wa := weight * uint64(px[alpha])
			for c := 0; c < alpha; c++ {
				sums[c] += wa * uint64(px[c])
				plain[c] += weight * uint64(px[c])
			}
			alphaSum += wa
			weightSum += weight
		}
	}
	if weightSum == 0 {
		return false, nil
	}

	*result = color.Transparent(space)
	out := result.Data()
	if alphaSum > 0 {
		for c := 0; c < alpha; c++ {
			out[c] = uint8((sums[c] + alphaSum/2) / alphaSum)
		}
	} else {
		for c := 0; c < alpha; c++ {
			out[c] = uint8((plain[c] + weightSum/2) / weightSum)
		}
	}
	out[alpha] = uint8((alphaSum + weightSum/2) / weightSum)
	return true, nil
}
