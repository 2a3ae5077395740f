package smudge

import (
	"image"
	stdcolor "image/color"
	"testing"
)

func TestExportedConstructors(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)

	s, err := NewSurface(SRGB, rect)
	if err != nil {
		t.Fatal(err)
	}
	paint, err := ParseColor(SRGB, "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	s.Fill(paint)
	if got := s.Image().NRGBAAt(1, 1); got != (stdcolor.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v, want red", got)
	}

	img := image.NewNRGBA(rect)
	img.SetNRGBA(2, 2, stdcolor.NRGBA{G: 255, A: 255})
	if got := SurfaceFromImage(img, SRGB).Pixel(2, 2); got.NRGBA() != img.NRGBAAt(2, 2) {
		t.Errorf("SurfaceFromImage pixel = %v", got)
	}

	if space, ok := LookupColorSpace("GrayA8"); !ok || !space.Equal(GrayA) {
		t.Errorf("LookupColorSpace = %v, %v", space, ok)
	}
	if f, err := NewFixed(LinearRGB, rect); err != nil || len(f.Data()) != 64 {
		t.Errorf("NewFixed = %v", err)
	}
	if m := NewMask(rect); m.Width() != 4 || m.At(0, 0) != 0 {
		t.Error("NewMask not zeroed")
	}
}
