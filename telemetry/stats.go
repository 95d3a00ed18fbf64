// Package telemetry tracks gesture, animation and frame timing statistics
// over rolling windows and writes them as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed"`

	// Selection at window end
	Shape string `csv:"shape"`
	Count int    `csv:"count"`

	// Selection changes during the window
	ShapeChanges int `csv:"shape_changes"`
	CountChanges int `csv:"count_changes"`

	// Fraction of ticks with at least one hand, and with two
	Presence float64 `csv:"presence"`
	TwoHands float64 `csv:"two_hands"`

	// Diffusion distribution over the window's ticks
	DiffusionMean float64 `csv:"diffusion_mean"`
	DiffusionStd  float64 `csv:"diffusion_std"`
	DiffusionP10  float64 `csv:"diffusion_p10"`
	DiffusionP50  float64 `csv:"diffusion_p50"`
	DiffusionP90  float64 `csv:"diffusion_p90"`

	// Animation state at window end
	Residual        float64 `csv:"residual"` // Max |target - current|
	Settled         bool    `csv:"settled"`
	DisplacedRadius float64 `csv:"displaced_radius"` // Farthest rendered point from the origin
}

// ComputeDiffusionStats returns mean, standard deviation and the 10th, 50th
// and 90th percentiles of values. Empty input gives zeros.
func ComputeDiffusionStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.String("shape", s.Shape),
		slog.Int("count", s.Count),
		slog.Int("shape_changes", s.ShapeChanges),
		slog.Int("count_changes", s.CountChanges),
		slog.Float64("presence", s.Presence),
		slog.Float64("two_hands", s.TwoHands),
		slog.Float64("diffusion_mean", s.DiffusionMean),
		slog.Float64("diffusion_std", s.DiffusionStd),
		slog.Float64("diffusion_p10", s.DiffusionP10),
		slog.Float64("diffusion_p50", s.DiffusionP50),
		slog.Float64("diffusion_p90", s.DiffusionP90),
		slog.Float64("residual", s.Residual),
		slog.Bool("settled", s.Settled),
		slog.Float64("displaced_radius", s.DisplacedRadius),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
