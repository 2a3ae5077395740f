package color

import "math"

// srgbToLinearLUT maps an sRGB encoded byte to linear light in [0,1].
var srgbToLinearLUT [256]float32

// linearToSRGBLUT maps linear light quantized to 12 bits back to an sRGB
// encoded byte. 4096 entries keep every 8-bit output reachable.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range srgbToLinearLUT {
		srgbToLinearLUT[i] = srgbToLinear(float64(i) / 255.0)
	}
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = quantize(linearToSRGB(float64(i) / 4095.0))
	}
}

// srgbToLinear is the sRGB EOTF on a normalized value.
func srgbToLinear(s float64) float32 {
	if s <= 0.04045 {
		return float32(s / 12.92)
	}
	return float32(math.Pow((s+0.055)/1.055, 2.4))
}

// linearToSRGB is the sRGB OETF on a normalized value.
func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// quantize clamps a normalized value and rounds it to a byte.
func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}

// SRGBToLinearFast converts an sRGB byte to linear light using a lookup table.
//
//	SRGBToLinearFast(128) // ~0.2159
func SRGBToLinearFast(s uint8) float32 {
	return srgbToLinearLUT[s]
}

// LinearToSRGBFast converts linear light to an sRGB byte using a lookup table.
// Input is clamped to [0,1].
func LinearToSRGBFast(l float32) uint8 {
	if l <= 0 {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095.0+0.5)]
}

// SRGBToLinearSlow is the math.Pow reference for SRGBToLinearFast.
func SRGBToLinearSlow(s uint8) float32 {
	return srgbToLinear(float64(s) / 255.0)
}

// LinearToSRGBSlow is the math.Pow reference for LinearToSRGBFast.
func LinearToSRGBSlow(l float32) uint8 {
	v := float64(l)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return quantize(linearToSRGB(v))
}
