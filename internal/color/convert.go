package color

// Rec. 709 luminance weights applied in linear light.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// ConvertPixels converts n pixels from src (in srcSpace) into dst (in
// dstSpace). dst and src may alias only when the spaces are equal.
func ConvertPixels(dst []byte, dstSpace *Space, src []byte, srcSpace *Space, n int) {
	if n <= 0 {
		return
	}
	if dstSpace.Equal(srcSpace) {
		copy(dst[:n*dstSpace.PixelSize()], src[:n*srcSpace.PixelSize()])
		return
	}

	ds, ss := dstSpace.PixelSize(), srcSpace.PixelSize()
	for i := 0; i < n; i++ {
		r, g, b, a := decode(srcSpace, src[i*ss:i*ss+ss])
		encode(dstSpace, dst[i*ds:i*ds+ds], r, g, b, a)
	}
}

// decode returns the linear-light color channels and the alpha of px.
func decode(s *Space, px []byte) (r, g, b float32, a uint8) {
	switch s.model {
	case ModelGrayA:
		v := channelToLinear(s, px[0])
		return v, v, v, px[1]
	default:
		return channelToLinear(s, px[0]), channelToLinear(s, px[1]), channelToLinear(s, px[2]), px[3]
	}
}

// encode writes linear-light channels and alpha into px.
func encode(s *Space, px []byte, r, g, b float32, a uint8) {
	switch s.model {
	case ModelGrayA:
		px[0] = linearToChannel(s, lumaR*r+lumaG*g+lumaB*b)
		px[1] = a
	default:
		px[0] = linearToChannel(s, r)
		px[1] = linearToChannel(s, g)
		px[2] = linearToChannel(s, b)
		px[3] = a
	}
}

func channelToLinear(s *Space, v uint8) float32 {
	if s.transfer == TransferLinear {
		return float32(v) / 255.0
	}
	return SRGBToLinearFast(v)
}

func linearToChannel(s *Space, v float32) uint8 {
	if s.transfer == TransferLinear {
		return quantize(float64(v))
	}
	return LinearToSRGBFast(v)
}
