package gesture

import (
	"math"
	"testing"

	"github.com/pthm-cable/nebula/config"
)

// pinchHand returns a valid hand with thumb and index tips d apart.
func pinchHand(d float32) Hand {
	return SyntheticHand(0.5, 0.5, d)
}

// handAt returns a valid hand with its middle-finger base at (x, y).
func handAt(x, y float32) Hand {
	return SyntheticHand(x, y, 0.1)
}

func TestExtractNoHands(t *testing.T) {
	e := NewExtractor()
	for _, hands := range [][]Hand{nil, {}} {
		r := e.Extract(hands)
		if r.Diffusion != 0 || r.Active {
			t.Errorf("expected zero and inactive, got %+v", r)
		}
	}
}

func TestExtractOneHandPinch(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		d    float32
		want float32
	}{
		{"closed", 0.0, 0},
		{"at lower bound", 0.05, 0},
		{"midway", 0.2, 0.5},
		{"at upper bound", 0.35, 1},
		{"wide", 0.9, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := e.Extract([]Hand{pinchHand(tc.d)})
			if !r.Active || r.Hands != 1 {
				t.Errorf("expected active single-hand reading, got %+v", r)
			}
			if diff := r.Diffusion - tc.want; diff > 1e-5 || diff < -1e-5 {
				t.Errorf("pinch %v: expected %v, got %v", tc.d, tc.want, r.Diffusion)
			}
		})
	}
}

func TestExtractTwoHandSpread(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name   string
		spread float32
		want   float32
	}{
		{"touching", 0.05, 0},
		{"at lower bound", 0.1, 0},
		{"midway", 0.4, 0.5},
		{"at upper bound", 0.7, 1},
		{"far apart", 0.95, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hands := []Hand{handAt(0.0, 0.5), handAt(tc.spread, 0.5)}
			r := e.Extract(hands)
			if !r.Active || r.Hands != 2 {
				t.Errorf("expected active two-hand reading, got %+v", r)
			}
			if diff := r.Diffusion - tc.want; diff > 1e-5 || diff < -1e-5 {
				t.Errorf("spread %v: expected %v, got %v", tc.spread, tc.want, r.Diffusion)
			}
		})
	}
}

func TestExtractIgnoresDepth(t *testing.T) {
	e := NewExtractor()
	h := pinchHand(0.2)
	h[ThumbTip].Z = 5
	h[IndexTip].Z = -5
	if r := e.Extract([]Hand{h}); r.Diffusion < 0.49 || r.Diffusion > 0.51 {
		t.Errorf("expected depth to be ignored, got %v", r.Diffusion)
	}
}

func TestExtractMoreThanTwoHandsUsesFirstTwo(t *testing.T) {
	e := NewExtractor()
	first := []Hand{handAt(0.1, 0.5), handAt(0.5, 0.5)}
	want := e.Extract(first)

	hands := append(first, handAt(0.95, 0.95), handAt(0.0, 0.0))
	got := e.Extract(hands)
	if got != want {
		t.Errorf("expected first two hands to decide: want %+v, got %+v", want, got)
	}
}

func TestExtractMalformedFrame(t *testing.T) {
	e := NewExtractor()
	short := pinchHand(0.3)[:20]

	for _, hands := range [][]Hand{
		{short},
		{pinchHand(0.3), short},
		{append(pinchHand(0.3), Landmark{})},
	} {
		r := e.Extract(hands)
		if r.Active || r.Diffusion != 0 {
			t.Errorf("expected malformed frame to read as no hands, got %+v", r)
		}
	}
}

func TestExtractNonFiniteLandmarks(t *testing.T) {
	e := NewExtractor()
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	for _, bad := range []func(h Hand){
		func(h Hand) { h[ThumbTip].X = nan },
		func(h Hand) { h[IndexTip].Y = inf },
		func(h Hand) { h[0].Z = nan },
	} {
		h := pinchHand(0.2)
		bad(h)
		for _, hands := range [][]Hand{{h}, {handAt(0.2, 0.5), h}} {
			r := e.Extract(hands)
			if r.Active || r.Diffusion != 0 {
				t.Errorf("expected non-finite hand to read as no hands, got %+v", r)
			}
		}
	}
}

func TestThresholdNormalizeNaN(t *testing.T) {
	if v := DefaultPinch.Normalize(math.NaN()); v != 0 {
		t.Errorf("expected NaN distance to normalize to 0, got %v", v)
	}
	if v := DefaultPinch.Normalize(math.Inf(1)); v != 1 {
		t.Errorf("expected +Inf distance to normalize to 1, got %v", v)
	}
}

func TestExtractAlwaysClamped(t *testing.T) {
	e := NewExtractor()
	for d := float32(0); d <= 1.5; d += 0.01 {
		for _, r := range []Reading{
			e.Extract([]Hand{pinchHand(d)}),
			e.Extract([]Hand{handAt(0, 0), handAt(d, 0)}),
		} {
			if r.Diffusion < 0 || r.Diffusion > 1 {
				t.Fatalf("distance %v produced %v outside [0,1]", d, r.Diffusion)
			}
		}
	}
}

func TestNewExtractorFromConfig(t *testing.T) {
	e := NewExtractorFromConfig(config.GestureConfig{
		Pinch:  config.ThresholdConfig{Offset: 0.1, Range: 0.1},
		Spread: config.ThresholdConfig{Offset: 0.2, Range: 0.2},
	})
	if r := e.Extract([]Hand{pinchHand(0.15)}); r.Diffusion < 0.49 || r.Diffusion > 0.51 {
		t.Errorf("expected configured pinch threshold, got %v", r.Diffusion)
	}
}

func TestMeasure(t *testing.T) {
	if _, _, ok := Measure(nil); ok {
		t.Error("expected no measurement without hands")
	}
	d, used, ok := Measure([]Hand{pinchHand(0.2)})
	if !ok || used != 1 || d < 0.199 || d > 0.201 {
		t.Errorf("expected pinch 0.2 from one hand, got %v (%d, %v)", d, used, ok)
	}
	d, used, ok = Measure([]Hand{handAt(0.2, 0.5), handAt(0.6, 0.5), handAt(0.9, 0.9)})
	if !ok || used != 2 || d < 0.399 || d > 0.401 {
		t.Errorf("expected spread 0.4 from two hands, got %v (%d, %v)", d, used, ok)
	}
}
