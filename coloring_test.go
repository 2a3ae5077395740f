package smudge

import (
	"bytes"
	"image"
	"testing"

	"github.com/gogpu/smudge/internal/blend"
	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

func filledFixed(t *testing.T, rect image.Rectangle, c color.Color) *device.Fixed {
	t.Helper()
	f, err := device.NewFixedRect(c.Space(), rect)
	if err != nil {
		t.Fatal(err)
	}
	f.Fill(c)
	return f
}

func mustOp(t *testing.T, space *color.Space, id string) blend.Op {
	t.Helper()
	op, ok := blend.Lookup(space, id)
	if !ok {
		t.Fatalf("no %s operator for %s", id, space)
	}
	return op
}

func TestMaskColoringBlendInColorRate(t *testing.T) {
	rect := image.Rect(3, 3, 7, 5)
	over := mustOp(t, color.SRGB, blend.IDOver)

	t.Run("broadcast", func(t *testing.T) {
		dst := filledFixed(t, rect, blue)
		MaskColoring{}.BlendInColorRate(red, over, 128, dst, rect)

		want := bytesOf(blue)
		over.Composite(blend.Params{Dst: want, Src: bytesOf(red), Rows: 1, Cols: 1, Opacity: 128})
		if !allPixels(dst.Data(), want) {
			t.Errorf("pixel = %v, want %v", dst.Data()[:4], want)
		}
	})

	t.Run("paint space mismatch", func(t *testing.T) {
		dst := filledFixed(t, rect, blue)
		MaskColoring{}.BlendInColorRate(color.New(color.GrayA, 0, 255), over, 255, dst, rect)
		if !allPixels(dst.Data(), bytesOf(blue)) {
			t.Error("dst modified")
		}
	})
}

func TestMaskColoringFused(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)
	copyOp := mustOp(t, color.SRGB, blend.IDCopy)
	over := mustOp(t, color.SRGB, blend.IDOver)

	dst := filledFixed(t, rect, black)
	src := newSurface(t, rect, white)
	MaskColoring{}.BlendInFusedBackgroundAndColorRateWithDulling(dst, src, rect,
		blue, copyOp, 255, red, over, 255)
	if !allPixels(dst.Data(), bytesOf(red)) {
		t.Errorf("full color rate: pixel = %v, want red", dst.Data()[:4])
	}

	dulling := blue
	MaskColoring{}.BlendInFusedBackgroundAndColorRateWithDulling(dst, src, rect,
		dulling, over, 255, red, over, 0)
	if !allPixels(dst.Data(), bytesOf(blue)) {
		t.Errorf("no color rate: pixel = %v, want blue", dst.Data()[:4])
	}
	if !dulling.Equal(blue) {
		t.Error("dulling color modified")
	}
}

func TestStampColoring(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	over := mustOp(t, color.SRGB, blend.IDOver)

	t.Run("fusion", func(t *testing.T) {
		if (&StampColoring{}).SupportsFusedDullingBlending() {
			t.Error("stamp coloring supports fusion")
		}
		if !(MaskColoring{}).SupportsFusedDullingBlending() {
			t.Error("mask coloring does not support fusion")
		}
	})

	t.Run("applies dab", func(t *testing.T) {
		dst := filledFixed(t, rect, blue)
		s := &StampColoring{}
		s.SetStampDab(filledFixed(t, image.Rect(10, 10, 13, 13), red))
		s.BlendInColorRate(black, over, 255, dst, rect)
		if !allPixels(dst.Data(), bytesOf(red)) {
			t.Errorf("pixel = %v, want red", dst.Data()[:4])
		}
	})

	tests := []struct {
		name string
		dab  *device.Fixed
	}{
		{"no dab", nil},
		{"space mismatch", filledFixed(t, rect, color.New(color.GrayA, 0, 255))},
		{"too small", filledFixed(t, image.Rect(0, 0, 1, 2), red)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filledFixed(t, rect, blue)
			before := append([]byte(nil), dst.Data()...)
			s := &StampColoring{}
			s.SetStampDab(tt.dab)
			s.BlendInColorRate(red, over, 255, dst, rect)
			if !bytes.Equal(dst.Data(), before) {
				t.Error("dst modified")
			}
		})
	}
}
