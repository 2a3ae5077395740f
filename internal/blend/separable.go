package blend

// Separable blend modes following the W3C Compositing and Blending
// Level 1 formulas, evaluated on straight-alpha channels:
//
//	Ra = Sa' + Da - Sa'*Da
//	Rc = (Dc*Da*(1-Sa') + Sc*Sa'*(1-Da) + B(Sc,Dc)*Sa'*Da) / Ra

// separable builds a pixelFunc from a per-channel blend function.
func separable(b func(s, d uint8) uint8) pixelFunc {
	return func(dst, src []byte, alpha int, opacity uint8) {
		sa := mul(src[alpha], opacity)
		if sa == 0 {
			return
		}
		da := dst[alpha]
		ra := union(sa, da)
		if ra == 0 {
			return
		}
		for i := 0; i < alpha; i++ {
			v := uint16(mul3(dst[i], da, inv(sa))) +
				uint16(mul3(src[i], sa, inv(da))) +
				uint16(mul3(b(src[i], dst[i]), sa, da))
			if v > 255 {
				v = 255
			}
			dst[i] = div(uint8(v), ra)
		}
		dst[alpha] = ra
	}
}

// blendMultiply darkens: B = S*D.
func blendMultiply(s, d uint8) uint8 {
	return mul(s, d)
}

// blendScreen lightens: B = 1 - (1-S)*(1-D).
func blendScreen(s, d uint8) uint8 {
	return inv(mul(inv(s), inv(d)))
}

// blendDarken keeps the darker channel.
func blendDarken(s, d uint8) uint8 {
	if s < d {
		return s
	}
	return d
}

// blendLighten keeps the lighter channel.
func blendLighten(s, d uint8) uint8 {
	if s > d {
		return s
	}
	return d
}

// blendOverlay multiplies or screens depending on the backdrop.
func blendOverlay(s, d uint8) uint8 {
	if d < 128 {
		return mul(s, uint8(min(2*uint16(d), 255)))
	}
	return inv(mul(inv(s), uint8(min(2*uint16(inv(d)), 255))))
}

// blendDifference returns |S - D|.
func blendDifference(s, d uint8) uint8 {
	if s > d {
		return s - d
	}
	return d - s
}
