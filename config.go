package smudge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/smudge/internal/blend"
	"github.com/gogpu/smudge/internal/color"
)

// Config is a brush preset. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	Mode          Mode         `toml:"mode"`
	Coloring      ColoringKind `toml:"coloring"`
	SmearAlpha    bool         `toml:"smear_alpha"`
	SmudgeScaling bool         `toml:"smudge_scaling"`
	Scaling       float64      `toml:"scaling"`

	ColorRate     float64 `toml:"color_rate"`
	ColorRateOp   string  `toml:"color_rate_op"`
	SmudgeRate    float64 `toml:"smudge_rate"`
	MaxSmudgeRate float64 `toml:"max_smudge_rate"`
	SmudgeRadius  float64 `toml:"smudge_radius"`
	Opacity       float64 `toml:"opacity"`
	PaintColor    string  `toml:"paint_color"`

	Diameter float64 `toml:"diameter"`
	Hardness float64 `toml:"hardness"`
	Spacing  float64 `toml:"spacing"`

	ColorSpace       string        `toml:"color_space"`
	MirrorHorizontal bool          `toml:"mirror_horizontal"`
	MirrorVertical   bool          `toml:"mirror_vertical"`
	LevelOfDetail    LevelOfDetail `toml:"level_of_detail"`
}

// DefaultConfig returns a medium smearing brush.
func DefaultConfig() Config {
	return Config{
		Mode:          Smearing,
		Coloring:      ColoringMask,
		SmearAlpha:    true,
		Scaling:       1,
		ColorRate:     0.3,
		ColorRateOp:   blend.IDOver,
		SmudgeRate:    0.5,
		MaxSmudgeRate: 1,
		SmudgeRadius:  1,
		Opacity:       1,
		PaintColor:    "#000000",
		Diameter:      30,
		Hardness:      0.5,
		Spacing:       0.1,
		ColorSpace:    color.SRGB.ID(),
	}
}

// LoadConfig reads a TOML preset. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads a TOML preset from r and validates it. Unknown keys
// are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports every out-of-range or unknown setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}
	unit := func(v float64) bool { return v >= 0 && v <= 1 }

	check(c.Mode <= Blurring, "mode %d", c.Mode)
	check(c.Coloring <= ColoringStamp, "coloring %d", c.Coloring)
	check(c.Scaling >= 1 && c.Scaling <= 2, "scaling %v not in [1, 2]", c.Scaling)
	check(unit(c.ColorRate), "color_rate %v not in [0, 1]", c.ColorRate)
	check(unit(c.Opacity), "opacity %v not in [0, 1]", c.Opacity)
	check(c.MaxSmudgeRate > 0, "max_smudge_rate %v must be positive", c.MaxSmudgeRate)
	check(c.SmudgeRate >= 0 && c.SmudgeRate <= c.MaxSmudgeRate,
		"smudge_rate %v not in [0, %v]", c.SmudgeRate, c.MaxSmudgeRate)
	check(c.SmudgeRadius >= 0, "smudge_radius %v is negative", c.SmudgeRadius)
	check(c.Mode != Dulling || c.SmudgeRadius > 0, "smudge_radius must be positive in dulling mode")
	check(c.Diameter > 0, "diameter %v must be positive", c.Diameter)
	check(unit(c.Hardness), "hardness %v not in [0, 1]", c.Hardness)
	check(c.Spacing > 0, "spacing %v must be positive", c.Spacing)
	check(c.LevelOfDetail >= 0 && c.LevelOfDetail <= MaxLevelOfDetail,
		"level_of_detail %d not in [0, %d]", c.LevelOfDetail, MaxLevelOfDetail)

	space, ok := color.Lookup(c.ColorSpace)
	check(ok, "unknown color_space %q", c.ColorSpace)
	if ok {
		_, opOK := blend.Lookup(space, c.ColorRateOp)
		check(opOK, "unknown color_rate_op %q", c.ColorRateOp)
	}
	if _, err := color.FromHex(color.SRGB, c.PaintColor); err != nil {
		errs = append(errs, fmt.Errorf("%w: paint_color: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// Space returns the configured color space, or the default space when the
// name is unknown.
func (c Config) Space() *color.Space {
	if s, ok := color.Lookup(c.ColorSpace); ok {
		return s
	}
	return color.Default()
}

// Paint returns the paint color in space.
func (c Config) Paint(space *color.Space) (color.Color, error) {
	return color.FromHex(space, c.PaintColor)
}

// DabParams returns the per-dab values of the preset.
func (c Config) DabParams() DabParams {
	return DabParams{
		Opacity:       c.Opacity,
		SmudgeRate:    c.SmudgeRate,
		MaxSmudgeRate: c.MaxSmudgeRate,
		Scaling:       c.Scaling,
		ColorRate:     c.ColorRate,
		SmudgeRadius:  c.SmudgeRadius,
	}
}
