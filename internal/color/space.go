// Package color provides the color spaces and single-pixel colors used by
// the smudge engine.
//
// Every space stores 8 bits per channel with straight (non-premultiplied)
// alpha in the last channel. Spaces differ in their channel model (RGBA or
// gray+alpha) and in the transfer curve applied to the color channels.
package color

import "sync"

// Model identifies the channel layout of a color space.
type Model uint8

const (
	// ModelRGBA stores red, green, blue and alpha.
	ModelRGBA Model = iota
	// ModelGrayA stores a single gray value and alpha.
	ModelGrayA
)

// Transfer identifies the encoding of the color channels.
type Transfer uint8

const (
	// TransferSRGB means color channels are sRGB gamma encoded.
	TransferSRGB Transfer = iota
	// TransferLinear means color channels are linear light.
	TransferLinear
)

// MaxChannels is the largest channel count of any supported space.
const MaxChannels = 4

// Space describes a pixel layout. Spaces are compared by ID.
type Space struct {
	id       string
	model    Model
	transfer Transfer
}

// Built-in color spaces.
var (
	SRGB      = &Space{id: "RGBA8-sRGB", model: ModelRGBA, transfer: TransferSRGB}
	LinearRGB = &Space{id: "RGBA8-linear", model: ModelRGBA, transfer: TransferLinear}
	GrayA     = &Space{id: "GrayA8", model: ModelGrayA, transfer: TransferSRGB}
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*Space{
		SRGB.id:      SRGB,
		LinearRGB.id: LinearRGB,
		GrayA.id:     GrayA,
	}
)

// Default returns the neutral color space used when nothing else is known.
func Default() *Space { return SRGB }

// Lookup resolves a color space by its ID.
func Lookup(id string) (*Space, bool) {
	registryMu.RLock()
	s, ok := registry[id]
	registryMu.RUnlock()
	return s, ok
}

// IDs returns the IDs of all registered color spaces.
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// ID returns the unique identifier of the space.
func (s *Space) ID() string { return s.id }

// Model returns the channel model.
func (s *Space) Model() Model { return s.model }

// Transfer returns the transfer curve of the color channels.
func (s *Space) Transfer() Transfer { return s.transfer }

// Channels returns the number of channels including alpha.
func (s *Space) Channels() int {
	if s.model == ModelGrayA {
		return 2
	}
	return 4
}

// PixelSize returns the number of bytes per pixel.
func (s *Space) PixelSize() int { return s.Channels() }

// AlphaIndex returns the index of the alpha channel within a pixel.
func (s *Space) AlphaIndex() int { return s.Channels() - 1 }

// Equal reports whether two spaces describe the same layout.
// Two nil spaces are equal; a nil and a non-nil space are not.
func (s *Space) Equal(o *Space) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s == o || s.id == o.id
}

// String implements fmt.Stringer.
func (s *Space) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.id
}
