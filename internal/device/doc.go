// Package device provides the pixel storage used by the smudge engine.
//
// Three kinds of storage exist:
//   - Fixed: a scratch buffer bound to a rectangle, reused across dabs.
//     Re-assigning its rectangle regrows the backing array lazily and
//     never zero-fills it.
//   - Surface: a persistent layer. Reads outside its bounds return
//     transparent pixels and writes outside its bounds are dropped.
//   - Mask: 8-bit weights aligned to a dab rectangle.
//
// Fixed and Surface both implement Sampler, the sub-pixel accessor used when
// a dab is rescaled.
package device

import "errors"

// Common errors for device operations.
var (
	// ErrInvalidDimensions is returned when a rectangle has negative size.
	ErrInvalidDimensions = errors.New("device: invalid dimensions")

	// ErrBufferTooLarge is returned when growing a buffer would exceed its
	// byte budget.
	ErrBufferTooLarge = errors.New("device: buffer exceeds byte budget")
)
