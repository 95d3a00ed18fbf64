package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/shapes"
)

// orbitSpeed is radians of camera orbit per pixel of mouse drag.
const orbitSpeed = 0.005

var shapeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.showUI = !v.showUI
		v.controls.SetVisible(v.showUI)
	}
	if rl.IsKeyPressed(rl.KeyI) {
		v.inspector.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
		v.controls.SetVisible(v.showUI && !v.showPerf)
	}

	// Shape hotkeys follow the catalog order
	kinds := shapes.Kinds()
	for i, key := range shapeKeys {
		if i < len(kinds) && rl.IsKeyPressed(key) {
			if err := v.g.SetShape(kinds[i]); err != nil {
				slog.Warn("shape rejected", "shape", kinds[i].String(), "error", err)
			}
		}
	}

	// Density
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.stepCount(1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.stepCount(-1)
	}

	v.handleCameraInput()
}

func (v *Viewer) stepCount(steps int) {
	if err := v.g.StepCount(steps); err != nil {
		slog.Warn("count rejected", "error", err)
	}
}

// handleResize checks for window resize and repositions overlays.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	v.screenWidth = int32(rl.GetScreenWidth())
	v.screenHeight = int32(rl.GetScreenHeight())
	v.perfPanel.SetPosition(v.screenWidth-230, 10)
	v.controls.SetPosition(v.screenWidth-230, 10)
}

// handleCameraInput processes orbit and zoom controls.
func (v *Viewer) handleCameraInput() {
	cam := v.g.Camera()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Orbit(-d.X*orbitSpeed, d.Y*orbitSpeed)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
