// Gesture preview tool - interactive view of how hand poses map to diffusion.
//
// Usage: go run ./cmd/gesturepreview
package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	curveHeight  = 120
)

// previewParams holds the slider-controlled threshold and pose values.
type previewParams struct {
	Hands        int
	Distance     float32 // Pinch (one hand) or spread (two hands), normalized image units
	PinchOffset  float32
	PinchRange   float32
	SpreadOffset float32
	SpreadRange  float32
}

func defaultParams() previewParams {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return previewParams{
		Hands:        1,
		Distance:     0.2,
		PinchOffset:  float32(cfg.Gesture.Pinch.Offset),
		PinchRange:   float32(cfg.Gesture.Pinch.Range),
		SpreadOffset: float32(cfg.Gesture.Spread.Offset),
		SpreadRange:  float32(cfg.Gesture.Spread.Range),
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Gesture Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	for !rl.WindowShouldClose() {
		extractor := gesture.NewExtractorFromConfig(config.GestureConfig{
			Pinch:  config.ThresholdConfig{Offset: float64(params.PinchOffset), Range: float64(params.PinchRange)},
			Spread: config.ThresholdConfig{Offset: float64(params.SpreadOffset), Range: float64(params.SpreadRange)},
		})
		hands := pose(params)
		reading := extractor.Extract(hands)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 30, 35, 255))

		// Hand preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		for _, h := range hands {
			drawHand(h)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Gesture Parameters", int32(panelX), int32(panelY), 20, rl.White)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Hands == 1, "One Hand", "Two Hands")) {
			params.Hands = 3 - params.Hands
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
		}
		panelY += 45

		params.Distance = slider(panelX, &panelY, "Distance", params.Distance, 0, 1, "%.3f")
		params.PinchOffset = slider(panelX, &panelY, "Pinch Offset", params.PinchOffset, 0, 0.3, "%.3f")
		params.PinchRange = slider(panelX, &panelY, "Pinch Range", params.PinchRange, 0.01, 0.6, "%.3f")
		params.SpreadOffset = slider(panelX, &panelY, "Spread Offset", params.SpreadOffset, 0, 0.5, "%.3f")
		params.SpreadRange = slider(panelX, &panelY, "Spread Range", params.SpreadRange, 0.01, 1, "%.3f")

		// Threshold curve for the active mode
		offset, rng := params.PinchOffset, params.PinchRange
		if params.Hands == 2 {
			offset, rng = params.SpreadOffset, params.SpreadRange
		}
		panelY += 10
		drawCurve(panelX, panelY, float32(panelWidth-20), offset, rng, params.Distance)
		panelY += curveHeight + 20

		// Result
		rl.DrawText(fmt.Sprintf("Diffusion: %.3f", reading.Diffusion), int32(panelX), int32(panelY), 20, rl.White)
		panelY += 28
		barW := float32(panelWidth - 20)
		rl.DrawRectangle(int32(panelX), int32(panelY), int32(barW), 14, rl.DarkGray)
		rl.DrawRectangle(int32(panelX), int32(panelY), int32(barW*reading.Diffusion), 14, rl.SkyBlue)

		rl.EndDrawing()
	}
}

// pose builds the synthetic hands for the current parameters.
func pose(p previewParams) []gesture.Hand {
	if p.Hands == 1 {
		return []gesture.Hand{gesture.SyntheticHand(0.5, 0.5, p.Distance)}
	}
	return []gesture.Hand{
		gesture.SyntheticHand(0.5-p.Distance/2, 0.5, 0.02),
		gesture.SyntheticHand(0.5+p.Distance/2, 0.5, 0.02),
	}
}

func drawHand(h gesture.Hand) {
	for i, lm := range h {
		c := rl.LightGray
		switch i {
		case gesture.ThumbTip, gesture.IndexTip:
			c = rl.Orange
		case gesture.MiddleFingerMCP:
			c = rl.SkyBlue
		}
		rl.DrawCircleV(toScreen(lm), 4, c)
	}
	rl.DrawLineV(toScreen(h[gesture.ThumbTip]), toScreen(h[gesture.IndexTip]), rl.Orange)
}

func toScreen(lm gesture.Landmark) rl.Vector2 {
	return rl.Vector2{X: 10 + lm.X*previewSize, Y: 10 + lm.Y*previewSize}
}

// drawCurve plots clamp((d - offset) / range) over d in [0,1] and marks d.
func drawCurve(x, y, w, offset, rng, d float32) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), curveHeight, rl.Black)
	th := gesture.Threshold{Offset: float64(offset), Range: float64(rng)}

	prev := rl.Vector2{X: x, Y: y + curveHeight}
	const steps = 100
	for i := 0; i <= steps; i++ {
		t := float32(i) / steps
		pt := rl.Vector2{X: x + t*w, Y: y + curveHeight*(1-th.Normalize(float64(t)))}
		if i > 0 {
			rl.DrawLineV(prev, pt, rl.Green)
		}
		prev = pt
	}

	v := th.Normalize(float64(d))
	rl.DrawCircleV(rl.Vector2{X: x + d*w, Y: y + curveHeight*(1-v)}, 5, rl.Yellow)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), curveHeight, rl.Gray)
}

func slider(x float32, y *float32, label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 16, rl.LightGray)
	*y += 20
	v := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: *y, Width: float32(panelWidth - 100), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth)-50), int32(*y+2), 14, rl.White)
	*y += 32
	return v
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
