package main

import (
	"math"
	"sort"

	"github.com/pthm-cable/nebula/gesture"
)

// Bounds for the normalized search space.
const (
	minOffset = 0.0
	maxOffset = 0.5
	minRange  = 0.01
	maxRange  = 1.0
)

// Samples holds the raw gesture distances found in a session.
type Samples struct {
	Pinch  []float64 // One-hand frames
	Spread []float64 // Two-hand frames
}

// CollectSamples measures every frame of a session.
func CollectSamples(s gesture.Session) Samples {
	var out Samples
	for _, hands := range s {
		d, used, ok := gesture.Measure(hands)
		if !ok {
			continue
		}
		if used == 1 {
			out.Pinch = append(out.Pinch, d)
		} else {
			out.Spread = append(out.Spread, d)
		}
	}
	sort.Float64s(out.Pinch)
	sort.Float64s(out.Spread)
	return out
}

// Denormalize maps an optimizer vector onto a threshold. Values outside
// [0,1] are clamped.
func Denormalize(x []float64) gesture.Threshold {
	return gesture.Threshold{
		Offset: minOffset + clamp01(x[0])*(maxOffset-minOffset),
		Range:  minRange + clamp01(x[1])*(maxRange-minRange),
	}
}

// Normalize is the inverse of Denormalize.
func Normalize(t gesture.Threshold) []float64 {
	return []float64{
		clamp01((t.Offset - minOffset) / (maxOffset - minOffset)),
		clamp01((t.Range - minRange) / (maxRange - minRange)),
	}
}

// Fitness scores how evenly a threshold spreads sorted distances over
// [0,1]: the mean squared gap between each reading and its uniform
// quantile. Lower is better; 0 means the gesture sweeps the full range at
// an even rate.
func Fitness(sorted []float64, t gesture.Threshold) float64 {
	n := len(sorted)
	if n == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i, d := range sorted {
		want := (float64(i) + 0.5) / float64(n)
		diff := float64(t.Normalize(d)) - want
		sum += diff * diff
	}
	return sum / float64(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
