package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Shape        string
	Count        int
	Diffusion    float32
	HandsActive  bool
	Hands        int
	Tracking     bool // An oracle is attached
	Settled      bool
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    230,
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := r.Theme.Padding
	y := r.Theme.Padding

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 28

	state := "morphing"
	if data.Settled {
		state = "settled"
	}
	y = r.DrawLabelValue(x, y, "Shape", fmt.Sprintf("%s (%s)", data.Shape, state))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Count))
	y = r.DrawPercentBar(x, y, "Diffusion", data.Diffusion, h.width)

	switch {
	case !data.Tracking:
		r.DrawIndicator(x, y, "No Tracker", false)
	case data.HandsActive:
		r.DrawIndicator(x, y, fmt.Sprintf("Hand Detected (%d)", data.Hands), true)
	default:
		r.DrawIndicator(x, y, "Show Your Hands", false)
	}

	rl.DrawText(fmt.Sprintf("%d FPS", data.FPS), data.ScreenWidth-70, data.ScreenHeight-25, 14, rl.Gray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	tickColor := rl.Yellow
	if stats.OverBudget > 0.1 {
		tickColor = rl.Red
	}
	rl.DrawText(fmt.Sprintf("Tick: %s  p95 %s", stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond)), x, y, 14, tickColor)
	y += 16
	rl.DrawText(fmt.Sprintf("Over budget: %.0f%%", stats.OverBudget*100), x, y, 12, rl.LightGray)
	y += 14

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
