package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorTracksPhases(t *testing.T) {
	pc := NewPerfCollector(10, 0)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAnimate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseAnimate] <= 0 || stats.PhaseAvg[PhaseDraw] <= 0 {
		t.Errorf("expected animate and draw to be timed, got %v", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseGesture] != 0 {
		t.Errorf("expected untouched phase to stay zero, got %v", stats.PhaseAvg[PhaseGesture])
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= p95 <= max, got %v %v %v",
			stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5, 0)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAnimate)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorPhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10, 0)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGesture)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseDraw] <= stats.PhasePct[PhaseGesture] {
		t.Errorf("expected draw (%v%%) > gesture (%v%%)", stats.PhasePct[PhaseDraw], stats.PhasePct[PhaseGesture])
	}
}

func TestPerfCollectorRepeatedPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(1, 0)

	pc.StartTick()
	pc.StartPhase(PhaseDraw)
	time.Sleep(200 * time.Microsecond)
	pc.StartPhase(PhaseTelemetry)
	pc.StartPhase(PhaseDraw)
	time.Sleep(200 * time.Microsecond)
	pc.EndTick()

	if got := pc.Stats().PhaseAvg[PhaseDraw]; got < 400*time.Microsecond {
		t.Errorf("expected both draw spans to add up, got %v", got)
	}
}

func TestPerfCollectorOverBudget(t *testing.T) {
	pc := NewPerfCollector(4, time.Millisecond)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		if i%2 == 0 {
			time.Sleep(2 * time.Millisecond)
		}
		pc.EndTick()
	}

	if got := pc.Stats().OverBudget; got != 0.5 {
		t.Errorf("expected half the ticks over budget, got %v", got)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10, 0).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10, 0)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	// Sleep overshoot only lowers FPS
	if stats.FPS <= 0 || stats.FPS > 67 {
		t.Errorf("expected FPS in (0, 67] with a 16ms frame, got %v", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseUniforms.String() != "uniforms" {
		t.Errorf("unexpected name %q", PhaseUniforms.String())
	}
	if Phase(200).String() != "unknown" {
		t.Error("expected unknown for out-of-range phase")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 2 * time.Millisecond
	s.P95TickDuration = 3 * time.Millisecond
	s.PhasePct[PhaseGesture] = 5
	s.PhasePct[PhaseDraw] = 80

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 2000 || row.P95TickUS != 3000 {
		t.Errorf("unexpected timing fields: %+v", row)
	}
	if row.GesturePct != 5 || row.DrawPct != 80 || row.AnimatePct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
