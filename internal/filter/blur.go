package filter

import (
	"image"
	"sync"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Gaussian blurs a device region in place. The zero value is ready to use
// and safe for concurrent use on distinct devices.
type Gaussian struct{}

// NeededRect returns the area that must hold valid pixels for Blur to
// produce correct output over rect.
func (Gaussian) NeededRect(rect image.Rectangle, rx, ry float64) image.Rectangle {
	ex, ey := KernelReach(rx), KernelReach(ry)
	return image.Rect(rect.Min.X-ex, rect.Min.Y-ey, rect.Max.X+ex, rect.Max.Y+ey)
}

// Blur convolves rect of dev with a Gaussian of radii rx and ry.
//
// Pixels outside rect are read (clamped to the device bounds) but never
// written. channels selects which channels receive the result, indexed as
// in the device color space; nil selects all of them.
func (Gaussian) Blur(dev *device.Fixed, rect image.Rectangle, rx, ry float64, channels []bool) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	rect = rect.Intersect(bounds)
	if rect.Empty() || (rx <= 0 && ry <= 0) {
		return
	}

	space := dev.ColorSpace()
	ps := space.PixelSize()
	alpha := space.AlphaIndex()

	// The horizontal pass covers every row the vertical pass reads.
	reachY := KernelReach(ry)
	rows := image.Rect(rect.Min.X, rect.Min.Y-reachY, rect.Max.X, rect.Max.Y+reachY).Intersect(bounds)

	w, h := rows.Dx(), rows.Dy()
	temp := getTempBuffer(w * h * ps)
	defer putTempBuffer(temp)

	horizontal(dev, rows, temp, CachedGaussianKernel(rx), alpha)
	vertical(dev, rect, rows, temp, CachedGaussianKernel(ry), alpha, writeMask(channels, ps))
}

// horizontal convolves rows of dev into temp. temp holds alpha-weighted
// color sums followed by the alpha sum for every pixel.
func horizontal(dev *device.Fixed, rows image.Rectangle, temp []float32, kernel []float32, alpha int) {
	ps := alpha + 1
	bounds := dev.Bounds()
	data := dev.Data()
	stride := dev.RowStride()
	half := len(kernel) / 2
	w := rows.Dx()

	for y := rows.Min.Y; y < rows.Max.Y; y++ {
		row := data[(y-bounds.Min.Y)*stride:]
		for x := rows.Min.X; x < rows.Max.X; x++ {
			var acc [color.MaxChannels]float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, bounds.Min.X, bounds.Max.X-1)
				px := row[(kx-bounds.Min.X)*ps:]
				wa := weight * float32(px[alpha])
				for c := 0; c < alpha; c++ {
					acc[c] += wa * float32(px[c])
				}
				acc[alpha] += wa
			}
			t := temp[((y-rows.Min.Y)*w+(x-rows.Min.X))*ps:]
			copy(t[:ps], acc[:ps])
		}
	}
}

// vertical convolves temp along columns and writes rect back into dev.
func vertical(dev *device.Fixed, rect, rows image.Rectangle, temp []float32, kernel []float32, alpha int, write [color.MaxChannels]bool) {
	ps := alpha + 1
	bounds := dev.Bounds()
	data := dev.Data()
	stride := dev.RowStride()
	half := len(kernel) / 2
	w := rows.Dx()

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			var acc [color.MaxChannels]float32
			for k, weight := range kernel {
				ky := clampInt(y+k-half, rows.Min.Y, rows.Max.Y-1)
				t := temp[((ky-rows.Min.Y)*w+(x-rows.Min.X))*ps:]
				for c := 0; c < ps; c++ {
					acc[c] += weight * t[c]
				}
			}

			px := data[(y-bounds.Min.Y)*stride+(x-bounds.Min.X)*ps:]
			a := acc[alpha]
			if a > 0 {
				for c := 0; c < alpha; c++ {
					if write[c] {
						px[c] = clampUint8(acc[c] / a)
					}
				}
			}
			if write[alpha] {
				px[alpha] = clampUint8(a)
			}
		}
	}
}

func writeMask(channels []bool, ps int) [color.MaxChannels]bool {
	var m [color.MaxChannels]bool
	for c := 0; c < ps; c++ {
		m[c] = channels == nil || (c < len(channels) && channels[c])
	}
	return m
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 0, 128*128*4)}
	},
}

// getTempBuffer returns a pooled buffer of exactly n elements. The contents
// are not cleared; every element is written before it is read.
func getTempBuffer(n int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if cap(wrapper.data) < n {
		tempBufferPool.Put(wrapper)
		return make([]float32, n)
	}
	return wrapper.data[:n]
}

// putTempBuffer returns buf to the pool.
func putTempBuffer(buf []float32) {
	// Buffers past 64MB are left to the GC.
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:0]})
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps v to [0, 255] and rounds to nearest.
func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
