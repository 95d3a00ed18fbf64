// Package inspector draws live struct state as a debug panel. Fields are
// read by reflection and drawn according to their inspect tags.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth    = 320
	PanelPadding  = 10
	HeaderHeight  = 30
	SectionHeight = 22
	labelWidth    = 100
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is one titled struct in the panel.
type Section struct {
	Title string
	Value any // Struct or struct pointer
}

// Inspector renders sections of live state in a floating panel.
type Inspector struct {
	title   string
	panelX  int32
	panelY  int32
	visible bool
}

// NewInspector creates a hidden inspector at (x, y).
func NewInspector(title string, x, y int32) *Inspector {
	return &Inspector{title: title, panelX: x, panelY: y}
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() bool {
	ins.visible = !ins.visible
	return ins.visible
}

// IsVisible reports whether the panel is shown.
func (ins *Inspector) IsVisible() bool {
	return ins.visible
}

// SetPosition moves the panel's top-left corner.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// Draw renders the sections. Fields are re-read every call.
func (ins *Inspector) Draw(sections ...Section) {
	if !ins.visible {
		return
	}

	fields := make([][]Field, len(sections))
	for i, s := range sections {
		fields[i] = ExtractFields(s.Value)
	}

	panelHeight := PanelHeight(fields)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1, ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(ins.title, ins.panelX+PanelPadding, ins.panelY+8, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for i, s := range sections {
		rl.DrawRectangle(ins.panelX+4, y-2, PanelWidth-8, SectionHeight-4, ColorSection)
		rl.DrawText(s.Title, x, y, 14, ColorSectionText)
		y += SectionHeight

		for _, f := range fields[i] {
			y += DrawField(x, y, f)
		}
		y += 4
	}
}

// PanelHeight estimates the pixel height needed for the given fields.
func PanelHeight(sections [][]Field) int32 {
	h := int32(HeaderHeight + 2*PanelPadding)
	for _, fields := range sections {
		h += SectionHeight + 4
		for _, f := range fields {
			h += fieldHeight(f)
		}
	}
	return h
}
