package smudge

import (
	"fmt"
	"strings"
)

// Mode selects how the background is carried into the dab.
// It is fixed for the lifetime of a Strategy.
type Mode uint8

const (
	// Smearing drags the pixels under the previous dab position.
	Smearing Mode = iota
	// Dulling fills the dab with a single color sampled under the mask.
	Dulling
	// Blurring drags a blurred copy of the pixels under the previous dab.
	Blurring
)

var modeNames = [...]string{
	Smearing: "smearing",
	Dulling:  "dulling",
	Blurring: "blurring",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: mode %d", ErrInvalidConfig, m)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (m *Mode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range modeNames {
		if s == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, text)
}

// ColoringKind selects the DabColoring used by a Stroke.
type ColoringKind uint8

const (
	// ColoringMask mixes in the flat paint color.
	ColoringMask ColoringKind = iota
	// ColoringStamp mixes in the brush's colored dab.
	ColoringStamp
)

// String returns the lower-case kind name.
func (k ColoringKind) String() string {
	switch k {
	case ColoringMask:
		return "mask"
	case ColoringStamp:
		return "stamp"
	default:
		return fmt.Sprintf("ColoringKind(%d)", k)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ColoringKind) MarshalText() ([]byte, error) {
	if k > ColoringStamp {
		return nil, fmt.Errorf("%w: coloring %d", ErrInvalidConfig, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColoringKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "mask":
		*k = ColoringMask
	case "stamp":
		*k = ColoringStamp
	default:
		return fmt.Errorf("%w: unknown coloring %q", ErrInvalidConfig, text)
	}
	return nil
}
