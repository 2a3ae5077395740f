package smudge

import (
	"image"
	"testing"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

func TestSampleDullingColor(t *testing.T) {
	rect := image.Rect(0, 0, 8, 8)

	t.Run("uniform", func(t *testing.T) {
		c := color.New(color.SRGB, 12, 34, 56, 255)
		src := newSurface(t, rect, c)
		var got color.Color
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.SRGB), newMask(rect, 255), &got)
		if err != nil || !ok {
			t.Fatalf("SampleDullingColor = %v, %v", ok, err)
		}
		if !got.Equal(c) {
			t.Errorf("got %v, want %v", got, c)
		}
	})

	t.Run("zero mask", func(t *testing.T) {
		src := newSurface(t, rect, red)
		got := blue
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.SRGB), newMask(rect, 0), &got)
		if err != nil || ok {
			t.Fatalf("SampleDullingColor = %v, %v; want false", ok, err)
		}
		if !got.Equal(blue) {
			t.Errorf("result modified to %v", got)
		}
	})

	t.Run("degenerate input", func(t *testing.T) {
		src := newSurface(t, rect, red)
		got := blue
		for _, tc := range []struct {
			rect   image.Rectangle
			radius float64
		}{
			{image.Rectangle{}, 1},
			{rect, 0},
			{rect, -1},
		} {
			ok, err := SampleDullingColor(tc.rect, tc.radius, src, device.NewFixed(color.SRGB), nil, &got)
			if err != nil || ok {
				t.Errorf("SampleDullingColor(%v, %v) = %v, %v", tc.rect, tc.radius, ok, err)
			}
		}
		if !got.Equal(blue) {
			t.Errorf("result modified to %v", got)
		}
	})

	t.Run("mask selects", func(t *testing.T) {
		src := newSurface(t, rect, red)
		for y := 0; y < 8; y++ {
			for x := 4; x < 8; x++ {
				src.SetPixel(x, y, blue)
			}
		}
		mask := newMask(rect, 0)
		for y := 0; y < 8; y++ {
			for x := 4; x < 8; x++ {
				mask.Set(x, y, 255)
			}
		}
		var got color.Color
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.SRGB), mask, &got)
		if err != nil || !ok {
			t.Fatalf("SampleDullingColor = %v, %v", ok, err)
		}
		if !got.Equal(blue) {
			t.Errorf("got %v, want blue", got)
		}
	})

	t.Run("alpha weighted", func(t *testing.T) {
		src := newSurface(t, rect, color.Transparent(color.SRGB))
		for y := 0; y < 8; y++ {
			for x := 0; x < 4; x++ {
				src.SetPixel(x, y, red)
			}
		}
		var got color.Color
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.SRGB), nil, &got)
		if err != nil || !ok {
			t.Fatalf("SampleDullingColor = %v, %v", ok, err)
		}
		want := color.New(color.SRGB, 255, 0, 0, 128)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("transparent keeps channels", func(t *testing.T) {
		c := color.New(color.SRGB, 10, 20, 30, 0)
		src := newSurface(t, rect, c)
		var got color.Color
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.SRGB), newMask(rect, 128), &got)
		if err != nil || !ok {
			t.Fatalf("SampleDullingColor = %v, %v", ok, err)
		}
		if !got.Equal(c) {
			t.Errorf("got %v, want %v", got, c)
		}
	})

	t.Run("radius widens the area", func(t *testing.T) {
		big := image.Rect(0, 0, 16, 16)
		src := newSurface(t, big, blue)
		inner := image.Rect(4, 4, 12, 12)
		for y := 4; y < 12; y++ {
			for x := 4; x < 12; x++ {
				src.SetPixel(x, y, red)
			}
		}
		var got color.Color
		if _, err := SampleDullingColor(inner, 2, src, device.NewFixed(color.SRGB), nil, &got); err != nil {
			t.Fatal(err)
		}
		// 64 red and 192 blue pixels.
		want := color.New(color.SRGB, 64, 0, 191, 255)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("scratch space mismatch", func(t *testing.T) {
		buf := captureLogs(t)
		src := newSurface(t, rect, red)
		got := blue
		ok, err := SampleDullingColor(rect, 1, src, device.NewFixed(color.GrayA), nil, &got)
		if err != nil || ok {
			t.Fatalf("SampleDullingColor = %v, %v; want false", ok, err)
		}
		if buf.Len() == 0 {
			t.Error("mismatch not logged")
		}
	})

	t.Run("budget", func(t *testing.T) {
		src := newSurface(t, rect, red)
		scratch := device.NewFixed(color.SRGB)
		scratch.SetMaxBytes(16)
		var got color.Color
		if _, err := SampleDullingColor(rect, 1, src, scratch, nil, &got); err == nil {
			t.Error("expected budget error")
		}
	})
}
