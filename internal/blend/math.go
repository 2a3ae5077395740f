package blend

// Fixed-point helpers for 8-bit straight-alpha compositing.
//
// All helpers round to nearest so that a sequence of operations matches the
// reference float result within one unit per channel.

// mul returns a*b/255 rounded.
func mul(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 0x80
	return uint8(((t >> 8) + t) >> 8)
}

// mul3 returns a*b*c/(255*255) rounded.
func mul3(a, b, c uint8) uint8 {
	t := uint32(a)*uint32(b)*uint32(c) + 0x7f5b
	return uint8(((t >> 7) + t) >> 16)
}

// div returns a*255/b rounded and clamped to 255. b must be non-zero.
func div(a, b uint8) uint8 {
	v := (uint32(a)*255 + uint32(b)/2) / uint32(b)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// lerp moves a toward b by t/255.
func lerp(a, b, t uint8) uint8 {
	c := (int32(b)-int32(a))*int32(t) + 0x80
	return uint8(int32(a) + (((c >> 8) + c) >> 8))
}

// union returns the alpha of two stacked coverages: a + b - a*b.
func union(a, b uint8) uint8 {
	return uint8(uint16(a) + uint16(b) - uint16(mul(a, b)))
}

// inv returns 255 - x.
func inv(x uint8) uint8 {
	return 255 - x
}
