package telemetry

import (
	"math"

	"github.com/pthm-cable/nebula/gesture"
)

// Snapshot is the animation state sampled when a window is flushed.
type Snapshot struct {
	Shape           string
	Count           int
	Residual        float32
	DisplacedRadius float64
}

// Collector accumulates per-tick samples within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32
	stableEpsilon       float32

	// Current window tracking
	windowStartTick int32

	// Samples for the current window
	diffusion    []float64
	presentTicks int
	twoHandTicks int
	shapeChanges int
	countChanges int
}

// NewCollector creates a new stats collector.
// windowDurationSec is the window length in seconds, dt the seconds per
// tick, and stableEpsilon the residual below which the cloud counts as settled.
func NewCollector(windowDurationSec float64, dt float32, stableEpsilon float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		stableEpsilon:       stableEpsilon,
		diffusion:           make([]float64, 0, ticksPerWindow),
	}
}

// RecordReading records one tick's gesture reading.
func (c *Collector) RecordReading(r gesture.Reading) {
	c.diffusion = append(c.diffusion, float64(r.Diffusion))
	if r.Active {
		c.presentTicks++
	}
	if r.Hands >= 2 {
		c.twoHandTicks++
	}
}

// RecordShapeChange records a new shape selection.
func (c *Collector) RecordShapeChange() {
	c.shapeChanges++
}

// RecordCountChange records a new particle count.
func (c *Collector) RecordCountChange() {
	c.countChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	mean, std, p10, p50, p90 := ComputeDiffusionStats(c.diffusion)

	var presence, twoHands float64
	if n := len(c.diffusion); n > 0 {
		presence = float64(c.presentTicks) / float64(n)
		twoHands = float64(c.twoHandTicks) / float64(n)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		ElapsedSec:      float64(currentTick) * float64(c.dt),

		Shape: snap.Shape,
		Count: snap.Count,

		ShapeChanges: c.shapeChanges,
		CountChanges: c.countChanges,

		Presence: presence,
		TwoHands: twoHands,

		DiffusionMean: mean,
		DiffusionStd:  std,
		DiffusionP10:  p10,
		DiffusionP50:  p50,
		DiffusionP90:  p90,

		Residual:        float64(snap.Residual),
		Settled:         snap.Residual < c.stableEpsilon,
		DisplacedRadius: snap.DisplacedRadius,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.diffusion = c.diffusion[:0]
	c.presentTicks = 0
	c.twoHandTicks = 0
	c.shapeChanges = 0
	c.countChanges = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
