package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/nebula/gesture"
)

func TestComputeDiffusionStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := ComputeDiffusionStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Sample standard deviation of 0.1..1.0
	if math.Abs(std-0.3028) > 0.001 {
		t.Errorf("std = %v, want ~0.3028", std)
	}
	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("expected ordered percentiles, got %v %v %v", p10, p50, p90)
	}
	if math.Abs(p50-0.5) > 0.11 || math.Abs(p90-0.9) > 0.11 {
		t.Errorf("unexpected percentiles p50=%v p90=%v", p50, p90)
	}
}

func TestComputeDiffusionStatsEdgeCases(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDiffusionStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p10, p50, p90 = ComputeDiffusionStats([]float64{0.4})
	if mean != 0.4 || std != 0 || p10 != 0.4 || p50 != 0.4 || p90 != 0.4 {
		t.Errorf("single value: got %v %v %v %v %v", mean, std, p10, p50, p90)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.25, 0.001) // 4 ticks per window

	if c.WindowDurationTicks() != 4 {
		t.Fatalf("expected 4 ticks per window, got %d", c.WindowDurationTicks())
	}

	c.RecordReading(gesture.Reading{})
	c.RecordReading(gesture.Reading{Diffusion: 0.5, Active: true, Hands: 1})
	c.RecordReading(gesture.Reading{Diffusion: 1, Active: true, Hands: 2})
	c.RecordReading(gesture.Reading{Diffusion: 1, Active: true, Hands: 2})
	c.RecordShapeChange()

	if c.ShouldFlush(3) {
		t.Error("expected no flush before the window ends")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("expected flush at window end")
	}

	stats := c.Flush(4, Snapshot{Shape: "heart", Count: 5000, Residual: 0.5})
	if stats.Presence != 0.75 || stats.TwoHands != 0.5 {
		t.Errorf("expected presence 0.75 and two-hands 0.5, got %v and %v", stats.Presence, stats.TwoHands)
	}
	if math.Abs(stats.DiffusionMean-0.625) > 1e-9 {
		t.Errorf("expected mean diffusion 0.625, got %v", stats.DiffusionMean)
	}
	if stats.ShapeChanges != 1 || stats.Settled {
		t.Errorf("unexpected changes/settled: %+v", stats)
	}
	if stats.ElapsedSec != 1 {
		t.Errorf("expected elapsed 1s, got %v", stats.ElapsedSec)
	}

	// Counters reset for the next window
	next := c.Flush(8, Snapshot{Residual: 0})
	if next.Presence != 0 || next.ShapeChanges != 0 || next.WindowStartTick != 4 {
		t.Errorf("expected reset window, got %+v", next)
	}
	if !next.Settled {
		t.Error("expected zero residual to count as settled")
	}
}
