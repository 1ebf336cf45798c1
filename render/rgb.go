package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined colors for UI chrome
var (
	RgbBlack       = RGB{0, 0, 0}
	RgbStatusText  = RGB{0, 0, 0}
	RgbStatusBg    = RGB{40, 40, 40}
	RgbStatusFg    = RGB{200, 200, 200}
	RgbRunningBg   = RGB{0, 200, 80}
	RgbPausedBg    = RGB{230, 180, 0}
	RgbModeDynamic = RGB{0, 180, 220}
	RgbModeStatic  = RGB{220, 60, 60}
)

// FromArray converts a [r, g, b] config triple
func FromArray(c [3]uint8) RGB {
	return RGB{c[0], c[1], c[2]}
}

// Tcell returns the truecolor tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes a toward b in Lab space, t is clamped to [0,1]
func Blend(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	r, g, bl := a.colorful().BlendLab(b.colorful(), t).Clamped().RGB255()
	return RGB{r, g, bl}
}

// Palette is the full set of scene colors
type Palette struct {
	Background      RGB
	DynamicParticle RGB
	StaticParticle  RGB
	Spring          RGB
	SpringStretched RGB
	Selection       RGB
}
