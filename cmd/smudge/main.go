// Command smudge paints a color-smudge stroke onto an image.
//
// Usage:
//
//	smudge -config brush.toml -in canvas.png -path "20,20;300,200;500,40" -out out.png
//
// Without -in a striped canvas is generated.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	stdcolor "image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/smudge"
	"github.com/gogpu/smudge/internal/color"
	"github.com/gogpu/smudge/internal/device"
)

func main() {
	var (
		configPath = flag.String("config", "", "brush preset (TOML); defaults when empty")
		input      = flag.String("in", "", "input image; a striped canvas is generated when empty")
		output     = flag.String("out", "smudge.png", "output file")
		width      = flag.Int("width", 640, "generated canvas width")
		height     = flag.Int("height", 480, "generated canvas height")
		maxSize    = flag.Int("max-size", 0, "fit the input image into this many pixels per side (0 keeps size)")
		path       = flag.String("path", "40,240;600,240", "stroke polyline as x,y pairs separated by ';'")
		dumpConfig = flag.Bool("dump-config", false, "print the effective preset as TOML and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	smudge.SetLogger(logger)

	if err := run(logger, *configPath, *input, *output, *width, *height, *maxSize, *path, *dumpConfig); err != nil {
		logger.Error("smudge failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, input, output string, width, height, maxSize int, path string, dump bool) error {
	cfg := smudge.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = smudge.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if dump {
		return cfg.Encode(os.Stdout)
	}

	points, err := parsePath(path)
	if err != nil {
		return err
	}

	img, err := loadCanvas(input, width, height, maxSize)
	if err != nil {
		return err
	}
	surface := device.FromImage(img, cfg.Space())

	stroke, err := smudge.NewStroke(cfg, surface)
	if err != nil {
		return err
	}
	if len(points) == 1 {
		err = stroke.PaintAt(points[0])
	}
	for i := 1; i < len(points) && err == nil; i++ {
		err = stroke.PaintLine(points[i-1], points[i])
	}
	if endErr := stroke.End(); err == nil {
		err = endErr
	}
	if err != nil {
		return err
	}

	if err := imaging.Save(surface.Image(), output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	logger.Info("stroke painted", "mode", cfg.Mode, "dabs", stroke.Dabs(), "out", output)
	return nil
}

// loadCanvas opens input, or generates a striped canvas when input is empty.
func loadCanvas(input string, width, height, maxSize int) (image.Image, error) {
	if input == "" {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
		}
		return stripes(width, height), nil
	}

	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}
	if maxSize > 0 {
		b := img.Bounds()
		if b.Dx() > maxSize || b.Dy() > maxSize {
			img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
		}
	}
	return img, nil
}

var stripeColors = []string{"#e63946", "#f1faee", "#a8dadc", "#457b9d", "#1d3557"}

// stripes returns a canvas of vertical color bands.
func stripes(width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, stdcolor.NRGBA{A: 255})
	band := max(width/len(stripeColors), 1)
	for i, hex := range stripeColors {
		c, err := color.FromHex(color.SRGB, hex)
		if err != nil {
			continue
		}
		canvas = imaging.Paste(canvas, imaging.New(band, height, c.NRGBA()), image.Pt(i*band, 0))
	}
	return canvas
}

// parsePath parses "x1,y1;x2,y2;..." into points.
func parsePath(s string) ([]f64.Vec2, error) {
	var points []f64.Vec2
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q", pair)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", pair, err)
		}
		points = append(points, f64.Vec2{x, y})
	}
	if len(points) == 0 {
		return nil, errors.New("empty path")
	}
	return points, nil
}
