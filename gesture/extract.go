package gesture

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/nebula/config"
)

// Threshold maps a raw distance onto [0,1] as clamp((d - Offset) / Range).
type Threshold struct {
	Offset float64
	Range  float64
}

// Normalize applies the threshold and clamps the result. NaN maps to 0.
func (t Threshold) Normalize(d float64) float32 {
	if math.IsNaN(d) || d <= t.Offset {
		return 0
	}
	if d >= t.Offset+t.Range {
		return 1
	}
	v := float32((d - t.Offset) / t.Range)
	if v > 1 {
		return 1
	}
	return v
}

// Default thresholds for the pinch and two-hand spread gestures.
var (
	DefaultPinch  = Threshold{Offset: 0.05, Range: 0.3}
	DefaultSpread = Threshold{Offset: 0.1, Range: 0.6}
)

// Reading is the per-frame output of the extractor.
type Reading struct {
	Diffusion float32 `inspect:"bar"` // Always within [0,1]
	Active    bool    // At least one hand detected
	Hands     int     // Hands used for the reading
}

// LogValue implements slog.LogValuer.
func (r Reading) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("diffusion", float64(r.Diffusion)),
		slog.Bool("active", r.Active),
		slog.Int("hands", r.Hands),
	)
}

// Extractor converts landmark sets into a diffusion reading.
type Extractor struct {
	Pinch  Threshold // One hand: thumb tip to index tip
	Spread Threshold // Two hands: middle-finger base to middle-finger base
}

// NewExtractor creates an extractor with the default thresholds.
func NewExtractor() *Extractor {
	return &Extractor{Pinch: DefaultPinch, Spread: DefaultSpread}
}

// NewExtractorFromConfig creates an extractor from the gesture config section.
func NewExtractorFromConfig(cfg config.GestureConfig) *Extractor {
	return &Extractor{
		Pinch:  Threshold{Offset: cfg.Pinch.Offset, Range: cfg.Pinch.Range},
		Spread: Threshold{Offset: cfg.Spread.Offset, Range: cfg.Spread.Range},
	}
}

// Extract computes the reading for one frame of hands.
//
// No hands gives zero and inactive. One hand measures the pinch between
// thumb and index tips. Two or more hands measure the spread between the
// first two hands' middle-finger bases, in detection order. A frame holding
// any malformed hand counts as no hands.
func (e *Extractor) Extract(hands []Hand) Reading {
	d, used, ok := Measure(hands)
	if !ok {
		return Reading{}
	}
	if used == 1 {
		return Reading{Diffusion: e.Pinch.Normalize(d), Active: true, Hands: 1}
	}
	return Reading{Diffusion: e.Spread.Normalize(d), Active: true, Hands: 2}
}

// Measure returns the raw distance Extract thresholds and the number of
// hands it came from. ok is false when the frame reads as no hands.
func Measure(hands []Hand) (d float64, used int, ok bool) {
	for _, h := range hands {
		if !h.Valid() {
			return 0, 0, false
		}
	}

	switch len(hands) {
	case 0:
		return 0, 0, false
	case 1:
		h := hands[0]
		return distance2D(h[ThumbTip], h[IndexTip]), 1, true
	default:
		return distance2D(hands[0][MiddleFingerMCP], hands[1][MiddleFingerMCP]), 2, true
	}
}
