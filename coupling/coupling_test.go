package coupling

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/shapes"
)

func newCoupler(t *testing.T) *Coupler {
	t.Helper()
	c, err := New(DefaultParams, "#6366f1")
	if err != nil {
		t.Fatalf("creating coupler: %v", err)
	}
	return c
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float32
		wantErr bool
	}{
		{"#000000", [3]float32{0, 0, 0}, false},
		{"#ffffff", [3]float32{1, 1, 1}, false},
		{"FFFFFF", [3]float32{1, 1, 1}, false},
		{"#fff", [3]float32{1, 1, 1}, false},
		{"#ff0000", [3]float32{1, 0, 0}, false},
		{"", [3]float32{}, true},
		{"#12345", [3]float32{}, true},
		{"#12345g", [3]float32{}, true},
		{"indigo", [3]float32{}, true},
	}
	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("%q: expected ErrInvalidColor, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		for i := range got {
			if math.Abs(float64(got[i]-tc.want[i])) > 1e-4 {
				t.Errorf("%q: expected %v, got %v", tc.in, tc.want, got)
				break
			}
		}
	}
}

func TestParseHexIsLinear(t *testing.T) {
	// sRGB mid grey decodes to roughly 0.216 in linear light.
	got, err := ParseHex("#808080")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] < 0.2 || got[0] > 0.23 {
		t.Errorf("expected linear value near 0.216, got %v", got[0])
	}
}

func TestCoupleTimeMonotonic(t *testing.T) {
	c := newCoupler(t)
	var last float32
	for _, elapsed := range []float64{0, 0.5, 1.0, 0.7, 2.0, math.NaN(), 1.5} {
		u := c.Couple(FrameContext{Elapsed: elapsed})
		if u.Time < last {
			t.Fatalf("time went backwards: %v after %v", u.Time, last)
		}
		last = u.Time
	}
	if last != 2 {
		t.Errorf("expected time to hold at 2, got %v", last)
	}
}

func TestCoupleNoisePhaseWraps(t *testing.T) {
	c := newCoupler(t)
	for _, elapsed := range []float64{0, 1, 3.14, 10, 1000} {
		u := c.Couple(FrameContext{Elapsed: elapsed})
		if u.NoisePhase < 0 || u.NoisePhase >= 2*math.Pi {
			t.Errorf("elapsed %v: phase %v outside [0, 2π)", elapsed, u.NoisePhase)
		}
		want := math.Mod(elapsed*2, 2*math.Pi)
		if math.Abs(float64(u.NoisePhase)-want) > 1e-4 {
			t.Errorf("elapsed %v: expected phase %v, got %v", elapsed, want, u.NoisePhase)
		}
	}
}

func TestCoupleDiffusionPassThrough(t *testing.T) {
	c := newCoupler(t)
	for _, d := range []float32{0, 0.25, 1} {
		u := c.Couple(FrameContext{Gesture: gesture.Reading{Diffusion: d, Active: true}})
		if u.Diffusion != d {
			t.Errorf("expected diffusion %v, got %v", d, u.Diffusion)
		}
	}
	if u := c.Couple(FrameContext{Gesture: gesture.Reading{Diffusion: 3}}); u.Diffusion != 1 {
		t.Errorf("expected out-of-range diffusion clamped to 1, got %v", u.Diffusion)
	}
}

func TestCoupleKeepsLastValidColor(t *testing.T) {
	c := newCoupler(t)
	white := c.Couple(FrameContext{Color: "#ffffff"})
	for _, v := range white.Color {
		if v < 0.999 {
			t.Fatalf("expected white, got %v", white.Color)
		}
	}

	u := c.Couple(FrameContext{Color: "#nothex"})
	if u.Color != white.Color {
		t.Errorf("expected invalid colour to keep white, got %v", u.Color)
	}
	if c.Color() != "#ffffff" {
		t.Errorf("expected active colour #ffffff, got %q", c.Color())
	}

	if err := c.SetColor("#zz"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor from SetColor, got %v", err)
	}
}

func TestNewRejectsInvalidColor(t *testing.T) {
	if _, err := New(DefaultParams, "blue"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestDisplaceAtRest(t *testing.T) {
	u := Uniforms{Params: DefaultParams, NoisePhase: 1.3}
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := Displace(p, u); got != p {
		t.Errorf("expected no displacement at zero diffusion, got %v", got)
	}
	if s := PointScale(u); s != 1 {
		t.Errorf("expected unit point scale, got %v", s)
	}
}

func TestDisplaceFullDiffusion(t *testing.T) {
	u := Uniforms{Diffusion: 1, Params: DefaultParams}
	p := r3.Vec{X: 0, Y: 2, Z: 0}

	got := Displace(p, u)
	// Outward by 2.5 along +y, noise sin(0) = 0 at x = 0 and phase 0.
	want := r3.Vec{X: 0, Y: 4.5, Z: 0}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
	if s := PointScale(u); s != 3 {
		t.Errorf("expected point scale 3, got %v", s)
	}
}

func TestDisplaceNoiseTerm(t *testing.T) {
	u := Uniforms{Diffusion: 0.5, NoisePhase: 0.4, Params: DefaultParams}
	p := r3.Vec{X: 0.2, Y: 0, Z: 0}

	got := Displace(p, u)
	noise := math.Sin(0.4+0.2*5) * 0.1 * 0.5
	want := r3.Vec{X: 0.2 + 0.5*2.5 + noise, Y: noise, Z: noise}
	if r3.Norm(r3.Sub(got, want)) > 1e-6 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDisplaceOrigin(t *testing.T) {
	u := Uniforms{Diffusion: 1, Params: DefaultParams}
	got := Displace(r3.Vec{}, u)
	if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
		t.Errorf("expected finite displacement at the origin, got %v", got)
	}
}

func TestDisplacedRadiusDoesNotMutate(t *testing.T) {
	buf := shapes.NewPointBuffer(2)
	buf.Set(0, 1, 0, 0)
	buf.Set(1, 0, 0, 3)
	before := append(shapes.PointBuffer(nil), buf...)

	r := DisplacedRadius(buf, Uniforms{Diffusion: 1, Params: Params{DiffusionScale: 2.5}})
	if math.Abs(r-5.5) > 1e-6 {
		t.Errorf("expected radius 5.5, got %v", r)
	}
	for i := range buf {
		if buf[i] != before[i] {
			t.Fatal("expected buffer untouched")
		}
	}
}
