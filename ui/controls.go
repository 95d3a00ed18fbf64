package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/shapes"
)

// Selection is what the panel shows as currently chosen.
type Selection struct {
	Shape shapes.Kind
	Color string
	Count int
}

// Changes reports what the user picked this frame. Zero means nothing.
type Changes struct {
	ShapeChanged bool
	Shape        shapes.Kind
	ColorChanged bool
	Color        string
	CountChanged bool
	Count        int // Raw slider value; the caller snaps and validates it
}

// Any reports whether anything changed.
func (c Changes) Any() bool {
	return c.ShapeChanged || c.ColorChanged || c.CountChanged
}

// ControlsPanel renders the shape, colour and density controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	palette            []string
	minCount, maxCount int
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, palette []string, minCount, maxCount int) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		palette:  palette,
		minCount: minCount,
		maxCount: maxCount,
	}
}

// SetPosition moves the panel's top-left corner.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(sel Selection) Changes {
	var ch Changes
	if !c.visible {
		return ch
	}

	r := c.renderer
	padding := r.Theme.Padding
	inner := float32(c.width - padding*2)
	kinds := shapes.Kinds()

	const buttonH = 24
	swatch := float32(22)
	panelHeight := padding*2 + r.Theme.LineHeight*4 + int32(len(kinds))*(buttonH+4) + int32(swatch) + 40
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := c.y + padding

	// Shapes
	y = r.DrawSectionHeader(int32(x), y, "Shape")
	for _, k := range kinds {
		bounds := rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: buttonH}
		if gui.Button(bounds, k.Label()) && k != sel.Shape {
			ch.ShapeChanged = true
			ch.Shape = k
		}
		if k == sel.Shape {
			rl.DrawRectangleLinesEx(bounds, 2, r.Theme.Highlight)
		}
		y += buttonH + 4
	}

	// Colour swatches
	y += 4
	y = r.DrawSectionHeader(int32(x), y, "Color")
	for i, hex := range c.palette {
		bounds := rl.Rectangle{X: x + float32(i)*(swatch+6), Y: float32(y), Width: swatch, Height: swatch}
		if bounds.X+bounds.Width > x+inner {
			break
		}
		if gui.Button(bounds, "") && hex != sel.Color {
			ch.ColorChanged = true
			ch.Color = hex
		}
		rl.DrawRectangleRec(shrink(bounds, 3), HexColor(hex))
		if hex == sel.Color {
			rl.DrawRectangleLinesEx(bounds, 2, r.Theme.Highlight)
		}
	}
	y += int32(swatch) + 8

	// Density
	y = r.DrawSectionHeader(int32(x), y, fmt.Sprintf("Particles: %d", sel.Count))
	value := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(y), Width: inner - 70, Height: 16},
		fmt.Sprintf("%dk", c.minCount/1000), fmt.Sprintf("%dk", c.maxCount/1000),
		float32(sel.Count), float32(c.minCount), float32(c.maxCount),
	)
	if n := int(value); n != sel.Count {
		ch.CountChanged = true
		ch.Count = n
	}

	return ch
}

func shrink(r rl.Rectangle, by float32) rl.Rectangle {
	return rl.Rectangle{X: r.X + by, Y: r.Y + by, Width: r.Width - 2*by, Height: r.Height - 2*by}
}
