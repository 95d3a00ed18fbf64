// Package gesture turns hand landmark frames into a diffusion intensity.
package gesture

import "math"

// Landmark indices used by the extractor.
const (
	ThumbTip        = 4
	IndexTip        = 8
	MiddleFingerMCP = 9

	// LandmarksPerHand is the size of one well-formed hand.
	LandmarksPerHand = 21
)

// Landmark is one tracked skeletal point. X and Y are normalized to [0,1]
// in camera space; Z is relative depth.
type Landmark struct {
	X, Y, Z float32
}

// Hand is the ordered landmark set of one detected hand.
type Hand []Landmark

// Valid reports whether the hand has the expected number of landmarks,
// all with finite coordinates.
func (h Hand) Valid() bool {
	if len(h) != LandmarksPerHand {
		return false
	}
	for _, lm := range h {
		if !finite(lm.X) || !finite(lm.Y) || !finite(lm.Z) {
			return false
		}
	}
	return true
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Frame is one result of the landmark oracle: zero or more hands in
// detection order.
type Frame struct {
	Seq   uint64
	Hands []Hand
}

// distance2D is the planar distance between two landmarks, ignoring depth.
func distance2D(a, b Landmark) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
