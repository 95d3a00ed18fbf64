package gesture

import (
	"context"
	"math"
	"time"
)

// Sweep ranges cover the full output of the default thresholds, with a
// little slack on either side so both clamps are exercised.
const (
	sweepPinchMin  = 0.02
	sweepPinchMax  = 0.40
	sweepSpreadMin = 0.05
	sweepSpreadMax = 0.80
)

// SweepOracle synthesizes one or two hands whose gesture opens and closes
// on a cosine cycle. It stands in for a camera in demos and headless runs.
type SweepOracle struct {
	*loop
	hands int
	cycle time.Duration // Length of one open/close cycle
}

var _ SteppedOracle = (*SweepOracle)(nil)

// NewSweepOracle creates a synthetic oracle. hands is clamped to 1 or 2.
func NewSweepOracle(hands int, cycle, framePeriod time.Duration) *SweepOracle {
	if hands < 1 {
		hands = 1
	}
	if hands > 2 {
		hands = 2
	}
	if cycle <= 0 {
		cycle = 6 * time.Second
	}
	return &SweepOracle{
		loop:  newLoop("sweep", framePeriod),
		hands: hands,
		cycle: cycle,
	}
}

// Start begins generating frames on the wall clock.
func (o *SweepOracle) Start(ctx context.Context) error {
	return o.run(ctx, o.produce, o.resetBox)
}

// StartStepped arms the oracle for Advance.
func (o *SweepOracle) StartStepped() error {
	return o.runStepped(o.produce, o.resetBox)
}

func (o *SweepOracle) produce(t time.Duration) ([]Hand, bool) {
	return o.FrameAt(t), true
}

// FrameAt returns the synthetic hands at time t into the cycle.
func (o *SweepOracle) FrameAt(t time.Duration) []Hand {
	phase := 2 * math.Pi * float64(t) / float64(o.cycle)
	open := float32(0.5 - 0.5*math.Cos(phase))

	if o.hands == 1 {
		pinch := sweepPinchMin + open*(sweepPinchMax-sweepPinchMin)
		return []Hand{SyntheticHand(0.5, 0.5, pinch)}
	}

	spread := sweepSpreadMin + open*(sweepSpreadMax-sweepSpreadMin)
	return []Hand{
		SyntheticHand(0.5-spread/2, 0.5, sweepPinchMin),
		SyntheticHand(0.5+spread/2, 0.5, sweepPinchMin),
	}
}

// SyntheticHand builds a well-formed hand whose middle-finger base sits at
// (cx, cy) and whose thumb and index tips are pinch apart horizontally.
// Other landmarks fan out above the palm.
func SyntheticHand(cx, cy, pinch float32) Hand {
	h := make(Hand, LandmarksPerHand)
	h[0] = Landmark{X: cx, Y: cy + 0.15} // wrist
	for i := 1; i < LandmarksPerHand; i++ {
		finger := (i - 1) / 4 // 0 = thumb .. 4 = pinky
		joint := (i - 1) % 4
		h[i] = Landmark{
			X: cx + float32(finger-2)*0.03,
			Y: cy - float32(joint)*0.03,
			Z: -0.01 * float32(joint),
		}
	}
	h[MiddleFingerMCP] = Landmark{X: cx, Y: cy}
	h[ThumbTip] = Landmark{X: cx - pinch/2, Y: cy - 0.1}
	h[IndexTip] = Landmark{X: cx + pinch/2, Y: cy - 0.1}
	return h
}
