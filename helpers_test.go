package smudge

import (
	"bytes"
	"image"
	"log/slog"
	"testing"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

// Test helper functions shared across smudge tests.

var (
	red   = color.New(color.SRGB, 255, 0, 0, 255)
	blue  = color.New(color.SRGB, 0, 0, 255, 255)
	black = color.New(color.SRGB, 0, 0, 0, 255)
	white = color.New(color.SRGB, 255, 255, 255, 255)
)

// newSurface creates a surface filled with c.
func newSurface(t testing.TB, rect image.Rectangle, c color.Color) *device.Surface {
	t.Helper()
	s, err := device.NewSurface(c.Space(), rect)
	if err != nil {
		t.Fatal(err)
	}
	s.Fill(c)
	return s
}

// newMask creates a mask over rect with every weight set to v.
func newMask(rect image.Rectangle, v uint8) *device.Mask {
	m := device.NewMask(rect)
	m.Fill(v)
	return m
}

// initStrategy creates and initializes a strategy in sRGB.
func initStrategy(t testing.TB, mode Mode, coloring DabColoring, smearAlpha bool, colorRateOp string, opts ...Option) *Strategy {
	t.Helper()
	s := New(mode, coloring, false, opts...)
	if err := s.Initialize(color.SRGB, smearAlpha, colorRateOp); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

// pixelAt returns the bytes of the pixel at (x, y) of a buffer laid out
// for rect.
func pixelAt(data []byte, rect image.Rectangle, ps, x, y int) []byte {
	o := ((y-rect.Min.Y)*rect.Dx() + (x - rect.Min.X)) * ps
	return data[o : o+ps]
}

// surfacePixel returns the raw bytes at (x, y).
func surfacePixel(s *device.Surface, x, y int) []byte {
	return pixelAt(s.Data(), s.Bounds(), s.ColorSpace().PixelSize(), x, y)
}

// allPixels reports whether every pixel in data equals want.
func allPixels(data, want []byte) bool {
	for i := 0; i+len(want) <= len(data); i += len(want) {
		if !bytes.Equal(data[i:i+len(want)], want) {
			return false
		}
	}
	return true
}

func maxDiff(a, b []byte) int {
	d := 0
	for i := range a {
		v := int(a[i]) - int(b[i])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}

// captureLogs routes smudge logging into a buffer for the test duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

// bytesOf returns a copy of the channels of c.
func bytesOf(c color.Color) []byte {
	return append([]byte(nil), c.Data()...)
}
