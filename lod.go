package smudge

// MaxLevelOfDetail is the coarsest supported level, a 1/256 preview.
const MaxLevelOfDetail LevelOfDetail = 8

// LevelOfDetail is a power-of-two downscale applied while painting on a
// reduced-resolution preview. Level n renders at 1/2^n of full size.
type LevelOfDetail int

// Scale returns the linear scale of the level, 1 for level 0. Levels are
// clamped to [0, MaxLevelOfDetail].
func (l LevelOfDetail) Scale() float64 {
	if l <= 0 {
		return 1
	}
	l = min(l, MaxLevelOfDetail)
	return 1 / float64(int(1)<<uint(l))
}

// Transform maps a full-resolution length to the level.
func (l LevelOfDetail) Transform(v float64) float64 {
	return v * l.Scale()
}
