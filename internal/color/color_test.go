package color

import (
	"errors"
	stdcolor "image/color"
	"math"
	"testing"
)

func TestSpaceChannels(t *testing.T) {
	tests := []struct {
		name       string
		space      *Space
		channels   int
		alphaIndex int
	}{
		{"srgb", SRGB, 4, 3},
		{"linear", LinearRGB, 4, 3},
		{"gray", GrayA, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.space.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}
			if got := tt.space.PixelSize(); got != tt.channels {
				t.Errorf("PixelSize() = %d, want %d", got, tt.channels)
			}
			if got := tt.space.AlphaIndex(); got != tt.alphaIndex {
				t.Errorf("AlphaIndex() = %d, want %d", got, tt.alphaIndex)
			}
		})
	}
}

func TestSpaceEqual(t *testing.T) {
	var nilSpace *Space
	if !nilSpace.Equal(nil) {
		t.Error("nil space should equal nil")
	}
	if SRGB.Equal(nil) {
		t.Error("SRGB should not equal nil")
	}
	if SRGB.Equal(LinearRGB) {
		t.Error("SRGB should not equal LinearRGB")
	}
	clone := &Space{id: SRGB.id, model: SRGB.model, transfer: SRGB.transfer}
	if !SRGB.Equal(clone) {
		t.Error("spaces with equal IDs should be equal")
	}
}

func TestLookup(t *testing.T) {
	for _, id := range []string{"RGBA8-sRGB", "RGBA8-linear", "GrayA8"} {
		s, ok := Lookup(id)
		if !ok || s.ID() != id {
			t.Errorf("Lookup(%q) = %v, %v", id, s, ok)
		}
	}
	if _, ok := Lookup("CMYK"); ok {
		t.Error("Lookup(CMYK) should fail")
	}
	if len(IDs()) != 3 {
		t.Errorf("IDs() = %v, want 3 entries", IDs())
	}
	if Default() != SRGB {
		t.Error("Default() should be SRGB")
	}
}

func TestColorConvertRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		space *Space
		tol   int
	}{
		{"srgb identity", SRGB, 0},
		{"linear", LinearRGB, 13},
	}

	src := New(SRGB, 200, 100, 50, 180)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := src.ConvertedTo(tt.space).ConvertedTo(SRGB)
			if back.Space() != SRGB {
				t.Fatalf("space = %v, want SRGB", back.Space())
			}
			for i, want := range src.data[:4] {
				diff := int(back.data[i]) - int(want)
				if diff < 0 {
					diff = -diff
				}
				if diff > tt.tol {
					t.Errorf("channel %d = %d, want %d +/- %d", i, back.data[i], want, tt.tol)
				}
			}
		})
	}
}

func TestColorConvertGray(t *testing.T) {
	white := New(SRGB, 255, 255, 255, 255).ConvertedTo(GrayA)
	if got := white.Data(); got[0] != 255 || got[1] != 255 {
		t.Errorf("white gray = %v, want [255 255]", got)
	}

	gray := New(GrayA, 128, 77)
	rgb := gray.ConvertedTo(SRGB)
	d := rgb.Data()
	if d[0] != 128 || d[1] != 128 || d[2] != 128 || d[3] != 77 {
		t.Errorf("gray to rgb = %v, want [128 128 128 77]", d)
	}
}

func TestColorAlphaPreserved(t *testing.T) {
	c := New(SRGB, 10, 20, 30, 42)
	for _, s := range []*Space{LinearRGB, GrayA} {
		if got := c.ConvertedTo(s).Alpha(); got != 42 {
			t.Errorf("alpha in %v = %d, want 42", s, got)
		}
	}
}

func TestColorDataAliases(t *testing.T) {
	c := New(SRGB, 1, 2, 3, 4)
	c.Data()[0] = 99
	if c.NRGBA().R != 99 {
		t.Errorf("Data() should alias the color, got R=%d", c.NRGBA().R)
	}

	var zero Color
	if zero.Data() != nil {
		t.Error("zero color should have nil data")
	}
}

func TestFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    stdcolor.NRGBA
		wantErr bool
	}{
		{"#ff8000", stdcolor.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"#fff", stdcolor.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"orange", stdcolor.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := FromHex(SRGB, tt.hex)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHex) {
					t.Fatalf("FromHex(%q) error = %v, want ErrInvalidHex", tt.hex, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromHex(%q) error = %v", tt.hex, err)
			}
			if got := c.NRGBA(); got != tt.want {
				t.Errorf("FromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestConvertPixels(t *testing.T) {
	src := []byte{255, 0, 0, 255, 0, 0, 0, 0}
	dst := make([]byte, 4)
	ConvertPixels(dst, GrayA, src, SRGB, 2)
	// Pure red has ~0.2126 linear luminance.
	want := LinearToSRGBFast(lumaR)
	if dst[0] != want || dst[1] != 255 || dst[2] != 0 || dst[3] != 0 {
		t.Errorf("ConvertPixels = %v, want [%d 255 0 0]", dst, want)
	}
}

func TestLUTAccuracy(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinearSlow(uint8(i))
		if math.Abs(float64(fast-slow)) > 1e-6 {
			t.Errorf("sRGB %d: fast=%f slow=%f", i, fast, slow)
		}
	}
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		fast, slow := int(LinearToSRGBFast(l)), int(LinearToSRGBSlow(l))
		if d := fast - slow; d > 1 || d < -1 {
			t.Errorf("linear %f: fast=%d slow=%d", l, fast, slow)
		}
	}
}

func TestLUTRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got := LinearToSRGBFast(SRGBToLinearFast(uint8(i))); got != uint8(i) {
			t.Errorf("round trip %d = %d", i, got)
		}
	}
}

func BenchmarkConvertPixels(b *testing.B) {
	const n = 1024
	src := make([]byte, n*4)
	dst := make([]byte, n*4)
	for i := range src {
		src[i] = byte(i * 7)
	}
	b.ReportAllocs()
	b.SetBytes(n * 4)
	for i := 0; i < b.N; i++ {
		ConvertPixels(dst, LinearRGB, src, SRGB, n)
	}
}
