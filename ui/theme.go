// Package ui draws the control panel and heads-up display over the cloud.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Highlight      rl.Color
	Present        rl.Color
	Absent         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 15, G: 15, B: 25, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 60, B: 90, A: 255},
		SectionHeader:  rl.Color{R: 165, G: 180, B: 252, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		BarBg:          rl.Color{R: 40, G: 40, B: 55, A: 255},
		BarFill:        rl.Color{R: 99, G: 102, B: 241, A: 255},
		Highlight:      rl.White,
		Present:        rl.Color{R: 100, G: 200, B: 100, A: 255},
		Absent:         rl.Color{R: 90, G: 90, B: 90, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
