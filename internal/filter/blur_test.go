package filter

import (
	"image"
	"testing"

	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

func newFilled(t testing.TB, space *color.Space, rect image.Rectangle, c color.Color) *device.Fixed {
	t.Helper()
	f, err := device.NewFixedRect(space, rect)
	if err != nil {
		t.Fatal(err)
	}
	f.Fill(c)
	return f
}

func pixel(f *device.Fixed, x, y int) []byte {
	ps := f.PixelSize()
	b := f.Bounds()
	o := (y-b.Min.Y)*f.RowStride() + (x-b.Min.X)*ps
	return f.Data()[o : o+ps]
}

func TestGaussianNeededRect(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry float64
		in     image.Rectangle
		want   image.Rectangle
	}{
		{"zero radius", 0, 0, image.Rect(10, 10, 100, 100), image.Rect(10, 10, 100, 100)},
		{"symmetric", 5, 5, image.Rect(0, 0, 100, 100), image.Rect(-15, -15, 115, 115)},
		{"asymmetric", 3, 10, image.Rect(50, 50, 150, 150), image.Rect(41, 20, 159, 180)},
	}

	var g Gaussian
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.NeededRect(tt.in, tt.rx, tt.ry); got != tt.want {
				t.Errorf("NeededRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaussianUniformUnchanged(t *testing.T) {
	c := color.New(color.SRGB, 100, 150, 200, 255)
	f := newFilled(t, color.SRGB, image.Rect(0, 0, 16, 16), c)

	Gaussian{}.Blur(f, f.Bounds(), 3, 3, nil)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			px := pixel(f, x, y)
			if px[0] != 100 || px[1] != 150 || px[2] != 200 || px[3] != 255 {
				t.Fatalf("pixel(%d,%d) = %v, want [100 150 200 255]", x, y, px)
			}
		}
	}
}

func TestGaussianSpreadsImpulse(t *testing.T) {
	f := newFilled(t, color.GrayA, image.Rect(0, 0, 9, 9), color.New(color.GrayA, 0, 255))
	copy(pixel(f, 4, 4), []byte{255, 255})

	Gaussian{}.Blur(f, f.Bounds(), 1, 1, nil)

	center := pixel(f, 4, 4)[0]
	if center == 255 || center == 0 {
		t.Errorf("center = %d, want partially blurred", center)
	}
	left, right := pixel(f, 3, 4)[0], pixel(f, 5, 4)[0]
	up, down := pixel(f, 4, 3)[0], pixel(f, 4, 5)[0]
	if left == 0 || left != right || up != down || left != up {
		t.Errorf("neighbors = %d %d %d %d, want equal and nonzero", left, right, up, down)
	}
	if left >= center {
		t.Errorf("neighbor %d >= center %d", left, center)
	}
}

func TestGaussianOnlyWritesRect(t *testing.T) {
	f := newFilled(t, color.GrayA, image.Rect(0, 0, 8, 8), color.New(color.GrayA, 0, 255))
	copy(pixel(f, 0, 0), []byte{255, 255})

	Gaussian{}.Blur(f, image.Rect(2, 2, 6, 6), 2, 2, nil)

	if got := pixel(f, 0, 0)[0]; got != 255 {
		t.Errorf("pixel outside rect changed to %d", got)
	}
	if got := pixel(f, 2, 2)[0]; got == 0 {
		t.Error("pixel inside rect did not receive blurred impulse")
	}
}

func TestGaussianChannelMask(t *testing.T) {
	f := newFilled(t, color.GrayA, image.Rect(0, 0, 5, 1), color.New(color.GrayA, 0, 255))
	copy(pixel(f, 2, 0), []byte{255, 0})

	// Blur alpha only; gray values stay put.
	Gaussian{}.Blur(f, f.Bounds(), 1, 0, []bool{false, true})

	if got := pixel(f, 1, 0)[0]; got != 0 {
		t.Errorf("masked gray channel changed to %d", got)
	}
	if got := pixel(f, 2, 0)[1]; got == 0 || got == 255 {
		t.Errorf("alpha at hole = %d, want partially filled", got)
	}
}

func TestGaussianAlphaWeighted(t *testing.T) {
	// A single opaque pixel among transparent ones keeps its color.
	f := newFilled(t, color.GrayA, image.Rect(0, 0, 5, 5), color.Transparent(color.GrayA))
	copy(pixel(f, 2, 2), []byte{200, 255})

	Gaussian{}.Blur(f, f.Bounds(), 1, 1, nil)

	for _, p := range []image.Point{{2, 2}, {1, 2}, {3, 3}} {
		px := pixel(f, p.X, p.Y)
		if px[0] != 200 {
			t.Errorf("color at %v = %d, want 200", p, px[0])
		}
		if px[1] == 0 || px[1] == 255 {
			t.Errorf("alpha at %v = %d, want partial", p, px[1])
		}
	}
}

func TestGaussianDegenerate(t *testing.T) {
	c := color.New(color.GrayA, 7, 9)
	f := newFilled(t, color.GrayA, image.Rect(0, 0, 3, 3), c)
	copy(pixel(f, 1, 1), []byte{200, 255})

	var g Gaussian
	g.Blur(nil, image.Rect(0, 0, 3, 3), 2, 2, nil)
	g.Blur(f, image.Rect(10, 10, 20, 20), 2, 2, nil)
	g.Blur(f, f.Bounds(), 0, 0, nil)

	if got := pixel(f, 1, 1)[0]; got != 200 {
		t.Errorf("degenerate blur modified pixel: %d", got)
	}
}

func BenchmarkGaussianBlur(b *testing.B) {
	f := newFilled(b, color.SRGB, image.Rect(0, 0, 128, 128), color.New(color.SRGB, 10, 20, 30, 255))
	var g Gaussian
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Blur(f, f.Bounds(), 5, 5, nil)
	}
}
