package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a render tick.
type Phase uint8

// Phases of one render tick, in execution order.
const (
	PhaseGesture Phase = iota
	PhaseAnimate
	PhaseUniforms
	PhaseDraw
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{
	PhaseGesture:   "gesture",
	PhaseAnimate:   "animate",
	PhaseUniforms:  "uniforms",
	PhaseDraw:      "draw",
	PhaseTelemetry: "telemetry",
}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists every phase in tick order.
var Phases = [numPhases]Phase{PhaseGesture, PhaseAnimate, PhaseUniforms, PhaseDraw, PhaseTelemetry}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

// perfSample is the timing of one tick.
type perfSample struct {
	tick   time.Duration
	phases PhaseTimes
}

// PerfCollector times tick phases over a rolling window of ticks. Ticks
// longer than the frame budget are counted as over budget.
type PerfCollector struct {
	budget  time.Duration
	samples []perfSample // Ring buffer
	next    int
	filled  int

	current    PhaseTimes
	tickStart  time.Time
	phaseStart time.Time
	active     Phase
	inPhase    bool

	// Frame timing (graphics mode)
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// budget is the target frame time; zero disables budget tracking.
func NewPerfCollector(windowSize int, budget time.Duration) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		budget:  budget,
		samples: make([]perfSample, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PhaseTimes{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
// A phase may be entered more than once per tick; its times add up.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.active = phase
	p.inPhase = phase < numPhases
}

// EndTick closes the running phase and records the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)

	p.samples[p.next] = perfSample{tick: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current[p.active] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Per-phase average duration and share of the average tick
	PhaseAvg PhaseTimes
	PhasePct [numPhases]float64

	// Throughput
	TicksPerSecond float64

	// Fraction of ticks that exceeded the frame budget
	OverBudget float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var total time.Duration
	var phaseSum PhaseTimes
	over := 0
	for i, sample := range p.samples[:p.filled] {
		ticks[i] = float64(sample.tick)
		total += sample.tick
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
		if p.budget > 0 && sample.tick > p.budget {
			over++
		}
	}
	sort.Float64s(ticks)

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	s.OverBudget = float64(over) / float64(p.filled)

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("over_budget", s.OverBudget),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	OverBudget   float64 `csv:"over_budget"`
	FPS          float64 `csv:"fps"`
	GesturePct   float64 `csv:"gesture_pct"`
	AnimatePct   float64 `csv:"animate_pct"`
	UniformsPct  float64 `csv:"uniforms_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into one CSV row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		OverBudget:   s.OverBudget,
		FPS:          s.FPS,
		GesturePct:   s.PhasePct[PhaseGesture],
		AnimatePct:   s.PhasePct[PhaseAnimate],
		UniformsPct:  s.PhasePct[PhaseUniforms],
		DrawPct:      s.PhasePct[PhaseDraw],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
