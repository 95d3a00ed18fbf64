// Package viewer puts a game in a raylib window: it reads input, draws the
// cloud and overlays, and feeds overlay edits back to the game.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/game"
	"github.com/pthm-cable/nebula/inspector"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/ui"
)

const controlsLegend = "[1-5] Shape  [+/-] Particles  [Drag] Orbit  [Wheel] Zoom  [H] UI  [I] Inspect  [P] Perf  [Space] Pause"

// Viewer owns the window-bound resources for one game.
type Viewer struct {
	g *game.Game

	cloud     *renderer.PointCloud
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	inspector *inspector.Inspector

	background   rl.Color
	screenWidth  int32
	screenHeight int32
	showUI       bool
	showPerf     bool

	// Overlay edits from the last Draw, applied on the next Update.
	pending ui.Changes
}

// New creates a viewer. Must be called after the raylib window is created.
func New(g *game.Game) *Viewer {
	cfg := g.Config()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	v := &Viewer{
		g:            g,
		cloud:        renderer.NewPointCloud(float32(cfg.Render.PointSize), cfg.Render.BatchSize),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(w-230, 10),
		inspector:    inspector.NewInspector("Frame State", 10, 150),
		background:   ui.HexColor(cfg.Render.Background),
		screenWidth:  w,
		screenHeight: h,
		showUI:       cfg.UI.Visible,
	}
	v.controls = ui.NewControlsPanel(w-230, 10, 220, cfg.UI.Palette, cfg.Particles.MinCount, cfg.Particles.MaxCount)
	v.controls.SetVisible(cfg.UI.Visible)
	v.cloud.Init()

	return v
}

// Update applies pending overlay edits, handles input and steps the game.
func (v *Viewer) Update() {
	v.applyChanges()
	v.handleInput()
	v.g.Step(float64(rl.GetFrameTime()))
}

// Draw renders the frame and closes the game tick.
func (v *Viewer) Draw() {
	perf := v.g.Perf()
	perf.RecordFrame()
	perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(v.background)

	cfg := v.g.Config()
	t := float32(v.g.Elapsed())
	aspect := float32(v.screenWidth) / float32(max(v.screenHeight, 1))
	v.cloud.Draw(
		v.g.Positions(),
		v.g.Uniforms(),
		renderer.ModelMatrix(t, float32(cfg.Render.RotationY), float32(cfg.Render.RotationZ)),
		renderer.Camera3D(v.g.Camera()),
		aspect,
	)

	if v.showUI {
		v.drawOverlays()
	}

	// EndDrawing blocks for the frame limiter; keep that out of the tick.
	v.g.FinishTick()
	rl.EndDrawing()
}

// Unload frees GPU resources.
func (v *Viewer) Unload() {
	v.cloud.Unload()
}

func (v *Viewer) drawOverlays() {
	sel := v.g.Selection()
	reading := v.g.Reading()

	v.hud.Draw(ui.HUDData{
		Title:        v.g.Config().Screen.Title,
		Shape:        sel.Shape.Label(),
		Count:        sel.Count,
		Diffusion:    reading.Diffusion,
		HandsActive:  reading.Active,
		Hands:        reading.Hands,
		Tracking:     v.g.Tracking(),
		Settled:      v.g.Settled(),
		FPS:          rl.GetFPS(),
		ScreenWidth:  v.screenWidth,
		ScreenHeight: v.screenHeight,
	})
	if v.g.Paused() {
		rl.DrawText("PAUSED", v.screenWidth/2-40, 10, 20, rl.Yellow)
	}
	v.hud.DrawControls(v.screenHeight, controlsLegend)

	changes := v.controls.Draw(ui.Selection{Shape: sel.Shape, Color: sel.Color, Count: sel.Count})
	if changes.Any() {
		v.pending = changes
	}

	if v.showPerf {
		v.perfPanel.Draw(v.g.Perf().Stats())
	}

	v.inspector.Draw(
		inspector.Section{Title: "Gesture", Value: reading},
		inspector.Section{Title: "Uniforms", Value: v.g.Uniforms()},
		inspector.Section{Title: "Camera", Value: v.g.Camera()},
	)
}

// applyChanges hands the last overlay edits to the game. Rejected edits
// are logged and the previous selection stays.
func (v *Viewer) applyChanges() {
	ch := v.pending
	v.pending = ui.Changes{}
	if !ch.Any() {
		return
	}

	if ch.ShapeChanged {
		if err := v.g.SetShape(ch.Shape); err != nil {
			slog.Warn("shape rejected", "shape", ch.Shape.String(), "error", err)
		}
	}
	if ch.ColorChanged {
		if err := v.g.SetColor(ch.Color); err != nil {
			slog.Warn("colour rejected", "color", ch.Color, "error", err)
		}
	}
	if ch.CountChanged {
		n := v.g.Config().ClampCount(ch.Count)
		if n != v.g.Selection().Count {
			if err := v.g.SetCount(n); err != nil {
				slog.Warn("count rejected", "count", n, "error", err)
			}
		}
	}
}
