// Package coupling turns per-frame state into the uniform values the point
// shader consumes.
package coupling

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
)

// ErrInvalidColor is returned for strings that are not #rgb or #rrggbb.
var ErrInvalidColor = errors.New("invalid colour")

// Params shape the gesture-driven displacement.
type Params struct {
	DiffusionScale float32 // Outward displacement at full diffusion
	SizeScale      float32 // Extra point size at full diffusion
	NoiseAmplitude float32
	NoiseSpeed     float32 // Radians per second
	NoiseFrequency float32 // Radians per unit of x
}

// DefaultParams matches the stock look.
var DefaultParams = Params{
	DiffusionScale: 2.5,
	SizeScale:      2.0,
	NoiseAmplitude: 0.1,
	NoiseSpeed:     2.0,
	NoiseFrequency: 5.0,
}

// ParamsFromConfig reads the render section.
func ParamsFromConfig(cfg config.RenderConfig) Params {
	return Params{
		DiffusionScale: float32(cfg.DiffusionScale),
		SizeScale:      float32(cfg.SizeScale),
		NoiseAmplitude: float32(cfg.NoiseAmplitude),
		NoiseSpeed:     float32(cfg.NoiseSpeed),
		NoiseFrequency: float32(cfg.NoiseFrequency),
	}
}

// FrameContext is everything the coupling step reads for one frame.
type FrameContext struct {
	Elapsed float64 // Seconds since the animation started
	Gesture gesture.Reading
	Color   string // Selected hex colour
}

// Uniforms are the per-frame shader inputs.
type Uniforms struct {
	Time       float32    `inspect:"label,fmt:%.1f"`
	Diffusion  float32    `inspect:"bar"`
	Color      [3]float32 `inspect:"bar,labels:r|g|b"` // Linear RGB
	NoisePhase float32    `inspect:"angle"`            // Time * NoiseSpeed wrapped to [0, 2π)
	Params     Params     `inspect:"skip"`
}

// Coupler produces Uniforms each frame. Time never runs backwards and an
// invalid colour keeps the last valid one.
type Coupler struct {
	params   Params
	time     float64
	hex      string
	color    [3]float32
	rejected string
}

// New creates a coupler starting from the given colour.
func New(params Params, initialColor string) (*Coupler, error) {
	c := &Coupler{params: params}
	if err := c.SetColor(initialColor); err != nil {
		return nil, err
	}
	return c, nil
}

// SetColor replaces the base colour. On error the previous colour is kept.
func (c *Coupler) SetColor(hex string) error {
	rgb, err := ParseHex(hex)
	if err != nil {
		return err
	}
	c.hex = hex
	c.color = rgb
	c.rejected = ""
	return nil
}

// Color returns the hex string of the active colour.
func (c *Coupler) Color() string {
	return c.hex
}

// Params returns the displacement parameters.
func (c *Coupler) Params() Params {
	return c.params
}

// Couple computes this frame's uniforms.
func (c *Coupler) Couple(fc FrameContext) Uniforms {
	if fc.Elapsed > c.time {
		c.time = fc.Elapsed
	}
	if fc.Color != "" && fc.Color != c.hex && fc.Color != c.rejected {
		if err := c.SetColor(fc.Color); err != nil {
			slog.Warn("keeping previous colour", "color", fc.Color, "error", err)
			c.rejected = fc.Color
		}
	}

	return Uniforms{
		Time:       float32(c.time),
		Diffusion:  clamp01(fc.Gesture.Diffusion),
		Color:      c.color,
		NoisePhase: float32(math.Mod(c.time*float64(c.params.NoiseSpeed), 2*math.Pi)),
		Params:     c.params,
	}
}

// ParseHex converts "#rrggbb" or "#rgb" (leading # optional) into linear RGB.
func ParseHex(s string) ([3]float32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 3 && len(h) != 6 {
		return [3]float32{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range h {
		if !isHexDigit(r) {
			return [3]float32{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}

	col, err := colorful.Hex("#" + strings.ToLower(h))
	if err != nil {
		return [3]float32{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := col.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
