package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/buji/engine"
)

// Named colors
var (
	Black   = engine.RGB{R: 0, G: 0, B: 0}
	White   = engine.RGB{R: 255, G: 255, B: 255}
	Red     = engine.RGB{R: 255, G: 0, B: 0}
	Green   = engine.RGB{R: 0, G: 255, B: 0}
	Blue    = engine.RGB{R: 0, G: 0, B: 255}
	Yellow  = engine.RGB{R: 255, G: 255, B: 0}
	Magenta = engine.RGB{R: 255, G: 0, B: 255}
	Cyan    = engine.RGB{R: 0, G: 255, B: 255}
	Silver  = engine.RGB{R: 192, G: 192, B: 192}
	Navy    = engine.RGB{R: 0, G: 255, B: 128}
	Purple  = engine.RGB{R: 128, G: 0, B: 128}
)

// lightnessThreshold splits backgrounds that take dark glyphs from those that take light ones
const lightnessThreshold = 0.6

// Color converts an engine color to a tcell truecolor value
func Color(c engine.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Contrast picks black or white, whichever reads better on bg
func Contrast(bg engine.RGB) engine.RGB {
	l, _, _ := colorful.Color{
		R: float64(bg.R) / 255,
		G: float64(bg.G) / 255,
		B: float64(bg.B) / 255,
	}.Lab()
	if l > lightnessThreshold {
		return Black
	}
	return White
}

// Style returns the base cell style for a background
func Style(bg engine.RGB) tcell.Style {
	return tcell.StyleDefault.Background(Color(bg)).Foreground(Color(Contrast(bg)))
}
