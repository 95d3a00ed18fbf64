// Package game wires the sampler, animator, gesture tracker and coupler
// into a fixed per-frame order. It holds no window state; the viewer
// package draws it and headless runs step it directly.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/coupling"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/particles"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/telemetry"
)

// DT is the fixed step used by headless runs.
const DT = 1.0 / 60.0

// Options configures game behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool

	// TrackerSource overrides tracker.source when set.
	TrackerSource string
	// ReplayPath overrides tracker.path and implies the replay source.
	ReplayPath string
}

// Game holds the complete per-session state. It is driven from a single
// goroutine; only a wall-clock oracle runs on its own.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	animator *particles.Animator
	tracker  *gesture.Tracker
	oracle   gesture.Oracle
	stepped  gesture.SteppedOracle // Oracle on the step clock (headless)
	coupler  *coupling.Coupler
	camera   *camera.Camera
	cancel   context.CancelFunc

	selection Selection
	reading   gesture.Reading
	uniforms  coupling.Uniforms

	// State
	tick     int32
	clock    float64 // Seconds stepped, including while paused
	elapsed  float64 // Animation seconds, frozen while paused
	paused   bool
	headless bool

	// Telemetry
	logStats         bool
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	sel, err := InitialSelection(cfg.Particles)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		camera:   camera.NewFromConfig(cfg.Camera),
		headless: opts.Headless,
		logStats: opts.LogStats,
	}

	g.animator = particles.New(cfg.Derived.Smoothing32, g.rng)
	if err := g.animator.Select(sel.Shape, sel.Count); err != nil {
		return nil, err
	}
	g.coupler, err = coupling.New(coupling.ParamsFromConfig(cfg.Render), sel.Color)
	if err != nil {
		return nil, err
	}
	g.selection = sel

	// Telemetry
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, DT, float32(cfg.Telemetry.StableEpsilon))
	g.bookmarkDetector = telemetry.NewBookmarkDetector()
	var budget time.Duration
	if cfg.Screen.TargetFPS > 0 {
		budget = time.Second / time.Duration(cfg.Screen.TargetFPS)
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, budget)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	// Hand tracking
	trackerCfg := cfg.Tracker
	if opts.TrackerSource != "" {
		trackerCfg.Source = opts.TrackerSource
	}
	if opts.ReplayPath != "" {
		trackerCfg.Source = SourceReplay
		trackerCfg.Path = opts.ReplayPath
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.oracle = startTracking(ctx, trackerCfg, cfg.Derived.TrackerPeriod, opts.Headless)
	if so, ok := g.oracle.(gesture.SteppedOracle); ok && opts.Headless {
		g.stepped = so
	}
	g.tracker = gesture.NewTracker(gesture.NewExtractorFromConfig(cfg.Gesture), g.oracle, cfg.Derived.HoldTimeout)

	slog.Info("game initialized",
		"shape", sel.Shape.String(),
		"color", sel.Color,
		"count", sel.Count,
		"tracking", g.oracle != nil,
		"headless", opts.Headless,
	)

	return g, nil
}

// Step runs the first three stages of a frame: read the latest gesture,
// advance the animation and compute uniforms. dt is the frame time in
// seconds. Draw (when windowed) and FinishTick complete the frame.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	if dt > 0 {
		g.clock += dt
		if !g.paused {
			g.elapsed += dt
			g.camera.Update(float32(dt))
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseGesture)
	now := time.Duration(g.clock * float64(time.Second))
	if g.stepped != nil {
		g.stepped.Advance(now)
	}
	g.reading = g.tracker.Update(now)

	g.perfCollector.StartPhase(telemetry.PhaseAnimate)
	if !g.paused {
		g.animator.Advance()
	}

	g.perfCollector.StartPhase(telemetry.PhaseUniforms)
	g.uniforms = g.coupler.Couple(coupling.FrameContext{
		Elapsed: g.elapsed,
		Gesture: g.reading,
		Color:   g.selection.Color,
	})
}

// FinishTick records the frame's telemetry and closes the perf sample.
func (g *Game) FinishTick() {
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordReading(g.reading)
	g.tick++
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// UpdateHeadless runs one fixed-step frame without drawing.
func (g *Game) UpdateHeadless() {
	g.Step(DT)
	g.FinishTick()
}

// Apply validates and applies a new selection. Shape or count changes
// resample the target; a count change also reseeds the current buffer.
func (g *Game) Apply(sel Selection) error {
	if err := sel.Validate(g.cfg.Particles); err != nil {
		return err
	}

	prev := g.selection
	if sel.Shape != prev.Shape || sel.Count != prev.Count {
		if err := g.animator.Select(sel.Shape, sel.Count); err != nil {
			return err
		}
	}
	if sel.Color != prev.Color {
		if err := g.coupler.SetColor(sel.Color); err != nil {
			return err
		}
	}

	if sel.Shape != prev.Shape {
		g.collector.RecordShapeChange()
	}
	if sel.Count != prev.Count {
		g.collector.RecordCountChange()
	}
	g.selection = sel

	slog.Debug("selection changed",
		"shape", sel.Shape.String(),
		"color", sel.Color,
		"count", sel.Count,
	)
	return nil
}

// SetShape switches the target shape.
func (g *Game) SetShape(k shapes.Kind) error {
	sel := g.selection
	sel.Shape = k
	return g.Apply(sel)
}

// SetColor switches the base colour.
func (g *Game) SetColor(hex string) error {
	sel := g.selection
	sel.Color = hex
	return g.Apply(sel)
}

// SetCount switches the particle count. The count must be within bounds.
func (g *Game) SetCount(n int) error {
	sel := g.selection
	sel.Count = n
	return g.Apply(sel)
}

// StepCount moves the particle count by steps slider increments, clamped
// to the configured bounds.
func (g *Game) StepCount(steps int) error {
	n := g.cfg.ClampCount(g.selection.Count + steps*g.cfg.Particles.CountStep)
	if n == g.selection.Count {
		return nil
	}
	return g.SetCount(n)
}

// SetStatsCallback registers a function called on every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// TogglePause freezes or resumes the animation. Gesture reading continues.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Unload stops the oracle and closes output files. Safe to call twice.
func (g *Game) Unload() {
	if g.cancel != nil {
		g.cancel()
	}
	g.tracker.Detach()
	if g.oracle != nil {
		if err := g.oracle.Stop(); err != nil {
			slog.Warn("stopping oracle", "error", err)
		}
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
	g.outputManager = nil
}

// Config returns the active configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Tick returns the number of finished frames.
func (g *Game) Tick() int32 { return g.tick }

// Elapsed returns animation time in seconds.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Paused reports whether the animation is frozen.
func (g *Game) Paused() bool { return g.paused }

// Selection returns the active selection.
func (g *Game) Selection() Selection { return g.selection }

// Positions returns a view of the buffer to draw this frame. It is only
// valid until the next Step or selection change.
func (g *Game) Positions() shapes.PointBuffer { return g.animator.View() }

// Uniforms returns this frame's shader inputs.
func (g *Game) Uniforms() coupling.Uniforms { return g.uniforms }

// Reading returns this frame's gesture reading.
func (g *Game) Reading() gesture.Reading { return g.reading }

// Camera returns the orbit camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }

// Tracking reports whether a landmark oracle is attached.
func (g *Game) Tracking() bool { return g.tracker.Connected() }

// Settled reports whether the cloud has converged on its target.
func (g *Game) Settled() bool {
	return g.animator.State(float32(g.cfg.Telemetry.StableEpsilon)) == particles.Stable
}
