package blend

// compositeOver paints src over dst.
//
//	Ra = Sa' + Da*(1-Sa')
//	Rc = lerp(Dc, Sc, Sa'/Ra)
//
// where Sa' is the source alpha scaled by opacity.
func compositeOver(dst, src []byte, alpha int, opacity uint8) {
	sa := mul(src[alpha], opacity)
	if sa == 0 {
		return
	}
	da := dst[alpha]
	if sa == 255 || da == 0 {
		copy(dst[:alpha], src[:alpha])
		dst[alpha] = sa
		return
	}

	ra := union(sa, da)
	t := div(sa, ra)
	for i := 0; i < alpha; i++ {
		dst[i] = lerp(dst[i], src[i], t)
	}
	dst[alpha] = ra
}

// compositeCopy replaces dst with src. Partial opacity interpolates the
// alpha-weighted colors so that transparent pixels do not bleed color.
func compositeCopy(dst, src []byte, alpha int, opacity uint8) {
	if opacity == 255 {
		copy(dst[:alpha+1], src[:alpha+1])
		return
	}

	da, sa := dst[alpha], src[alpha]
	ra := lerp(da, sa, opacity)
	if ra == 0 {
		for i := 0; i <= alpha; i++ {
			dst[i] = 0
		}
		return
	}
	for i := 0; i < alpha; i++ {
		blended := lerp(mul(dst[i], da), mul(src[i], sa), opacity)
		dst[i] = div(blended, ra)
	}
	dst[alpha] = ra
}

// compositeBehind paints src underneath dst.
func compositeBehind(dst, src []byte, alpha int, opacity uint8) {
	sa := mul(src[alpha], opacity)
	da := dst[alpha]
	if sa == 0 || da == 255 {
		return
	}
	if da == 0 {
		copy(dst[:alpha], src[:alpha])
		dst[alpha] = sa
		return
	}

	ra := union(sa, da)
	t := div(da, ra)
	for i := 0; i < alpha; i++ {
		dst[i] = lerp(src[i], dst[i], t)
	}
	dst[alpha] = ra
}

// compositeErase removes dst coverage by the source alpha.
func compositeErase(dst, src []byte, alpha int, opacity uint8) {
	sa := mul(src[alpha], opacity)
	dst[alpha] = mul(dst[alpha], inv(sa))
}
