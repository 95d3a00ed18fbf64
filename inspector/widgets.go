package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarLow      = rl.Color{R: 56, G: 189, B: 248, A: 255}
	ColorBarHigh     = rl.Color{R: 217, G: 70, B: 239, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Widget geometry. fieldHeight and the draw functions share these.
const (
	textSize     = 14
	rowHeight    = 18
	barWidth     = 120
	groupBarW    = 20
	groupBarH    = 30
	groupGap     = 2
	groupLabelH  = 10
	dialSize     = 40
	swatchSize   = 30
	indicatorDim = 14
)

// fieldHeight returns the height DrawField will use for f.
func fieldHeight(f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if values, ok := GetFloatSlice(f.Value); ok {
			h := int32(groupBarH + 4)
			if parseLabels(f.Options, len(values)) != nil {
				h += groupLabelH
			}
			return h
		}
	case WidgetAngle:
		if _, ok := GetFloatValue(f.Value); ok {
			return dialSize + 4
		}
	}
	return rowHeight
}

// DrawField renders a field using its widget type and returns its height.
func DrawField(x, y int32, f Field) int32 {
	rl.DrawText(f.Name, x, y+nameOffset(f), textSize, ColorTextDim)
	vx := x + labelWidth

	switch f.Widget {
	case WidgetBar:
		if values, ok := GetFloatSlice(f.Value); ok {
			drawBarGroup(vx, y, values, f.Options)
			return fieldHeight(f)
		}
		if v, ok := GetFloatValue(f.Value); ok {
			drawBar(vx, y, v, GetMax(f.Options))
			return fieldHeight(f)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(f.Value); ok {
			drawDial(vx, y, v)
			return fieldHeight(f)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			drawIndicator(vx, y, v)
			return fieldHeight(f)
		}
	}
	rl.DrawText(FormatValue(f.Value, f.Options["fmt"]), vx, y, textSize, ColorText)
	return fieldHeight(f)
}

// nameOffset centres the field name on tall widgets.
func nameOffset(f Field) int32 {
	if h := fieldHeight(f); h > rowHeight {
		return (h-4)/2 - textSize/2
	}
	return 0
}

func drawBar(x, y int32, value, maxVal float32) {
	ratio := clampRatio(value / maxVal)
	rl.DrawRectangle(x, y, barWidth, indicatorDim, ColorBarBg)
	rl.DrawRectangle(x, y, int32(barWidth*ratio), indicatorDim, rampColor(ratio))
	rl.DrawText(fmt.Sprintf("%.3f", value), x+barWidth+5, y, textSize, ColorTextDim)
}

// drawBarGroup draws one vertical bar per element. A group labelled r|g|b
// is treated as a colour and also gets a swatch.
func drawBarGroup(x, y int32, values []float32, options map[string]string) {
	maxVal := GetMax(options)
	labels := parseLabels(options, len(values))

	for i, v := range values {
		bx := x + int32(i)*(groupBarW+groupGap)
		ratio := clampRatio(v / maxVal)
		fill := int32(groupBarH * ratio)
		rl.DrawRectangle(bx, y, groupBarW, groupBarH, ColorBarBg)
		rl.DrawRectangle(bx, y+groupBarH-fill, groupBarW, fill, rampColor(ratio))

		if i < len(labels) && labels[i] != "" {
			w := rl.MeasureText(labels[i], 8)
			rl.DrawText(labels[i], bx+groupBarW/2-w/2, y+groupBarH+2, 8, ColorTextDim)
		}
	}

	if isRGB(labels) && len(values) == 3 {
		sx := x + int32(len(values))*(groupBarW+groupGap) + 8
		c := colorful.Color{
			R: float64(clampRatio(values[0] / maxVal)),
			G: float64(clampRatio(values[1] / maxVal)),
			B: float64(clampRatio(values[2] / maxVal)),
		}
		r, g, b := c.RGB255()
		rl.DrawRectangle(sx, y, swatchSize, swatchSize, rl.Color{R: r, G: g, B: b, A: 255})
		rl.DrawRectangleLines(sx, y, swatchSize, swatchSize, ColorTextDim)
		rl.DrawText(c.Hex(), sx+swatchSize+5, y+swatchSize/2-textSize/2, textSize, ColorText)
	}
}

// drawDial draws a needle at radians on a circular face.
func drawDial(x, y int32, radians float32) {
	r := float32(dialSize / 2)
	cx, cy := float32(x)+r, float32(y)+r
	rl.DrawCircle(int32(cx), int32(cy), r, ColorAngleBg)
	rl.DrawCircleLines(int32(cx), int32(cy), r, ColorTextDim)

	sin, cos := math.Sincos(float64(radians))
	tip := rl.Vector2{X: cx + (r-4)*float32(cos), Y: cy + (r-4)*float32(sin)}
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, tip, 2, ColorAngleNeedle)

	deg := math.Mod(float64(radians)*180/math.Pi, 360)
	rl.DrawText(fmt.Sprintf("%.0f deg", deg), x+dialSize+5, y+dialSize/2-textSize/2, textSize, ColorTextDim)
}

func drawIndicator(x, y int32, on bool) {
	color, text := ColorBoolOff, "OFF"
	if on {
		color, text = ColorBoolOn, "ON"
	}
	rl.DrawRectangle(x, y, indicatorDim, indicatorDim, color)
	rl.DrawText(text, x+indicatorDim+5, y, textSize, color)
}

func isRGB(labels []string) bool {
	return len(labels) == 3 && labels[0] == "r" && labels[1] == "g" && labels[2] == "b"
}

func clampRatio(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rampColor blends from low to high in Lab space so the midpoint stays
// saturated.
func rampColor(t float32) rl.Color {
	lo := colorful.Color{R: float64(ColorBarLow.R) / 255, G: float64(ColorBarLow.G) / 255, B: float64(ColorBarLow.B) / 255}
	hi := colorful.Color{R: float64(ColorBarHigh.R) / 255, G: float64(ColorBarHigh.G) / 255, B: float64(ColorBarHigh.B) / 255}
	r, g, b := lo.BlendLab(hi, float64(t)).Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}
