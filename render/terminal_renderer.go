package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spring-sim/vmath"
)

// Default world pixels covered by one terminal cell, roughly matching a 1:2 cell
const (
	DefaultCellWidth  = 4
	DefaultCellHeight = 8
)

// Glyphs used for scene primitives
const (
	glyphFill = '█'
	glyphLine = '•'
)

// TerminalRenderer draws world-pixel primitives onto a tcell screen
// The last row is reserved for the status bar
type TerminalRenderer struct {
	screen     tcell.Screen
	cellWidth  float64
	cellHeight float64
	bg         RGB
}

// NewTerminalRenderer wraps an initialized screen
// Non-positive cell sizes fall back to the defaults
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight float64) *TerminalRenderer {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &TerminalRenderer{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// Screen returns the underlying tcell screen
func (r *TerminalRenderer) Screen() tcell.Screen { return r.screen }

// CellSize returns world pixels per cell
func (r *TerminalRenderer) CellSize() (w, h float64) { return r.cellWidth, r.cellHeight }

// SceneRows returns rows available to the scene (screen height minus status bar)
func (r *TerminalRenderer) SceneRows() int {
	_, h := r.screen.Size()
	if h <= 1 {
		return h
	}
	return h - 1
}

// WorldSize returns scene dimensions in world pixels
func (r *TerminalRenderer) WorldSize() vmath.Vec2 {
	w, _ := r.screen.Size()
	return vmath.V2(float64(w)*r.cellWidth, float64(r.SceneRows())*r.cellHeight)
}

// CellCenter returns the world pixel at the centre of cell (x, y)
func (r *TerminalRenderer) CellCenter(x, y int) vmath.Vec2 {
	return vmath.V2((float64(x)+0.5)*r.cellWidth, (float64(y)+0.5)*r.cellHeight)
}

// WorldToCell returns the cell containing world point p
func (r *TerminalRenderer) WorldToCell(p vmath.Vec2) (x, y int) {
	return int(math.Floor(p.X / r.cellWidth)), int(math.Floor(p.Y / r.cellHeight))
}

// Clear fills the whole screen with the background color
func (r *TerminalRenderer) Clear(c RGB) {
	r.bg = c
	r.screen.Fill(' ', tcell.StyleDefault.Background(c.Tcell()))
}

// DrawCircle fills every cell whose centre lies inside the circle
// The cell containing the centre is always drawn so small particles stay visible
func (r *TerminalRenderer) DrawCircle(center vmath.Vec2, radius float64, c RGB) {
	style := tcell.StyleDefault.Foreground(c.Tcell()).Background(r.bg.Tcell())

	cx, cy := r.WorldToCell(center)
	r.set(cx, cy, glyphFill, style)

	if radius <= 0 {
		return
	}
	minX, minY := r.WorldToCell(center.Sub(vmath.V2(radius, radius)))
	maxX, maxY := r.WorldToCell(center.Add(vmath.V2(radius, radius)))
	rSq := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if r.CellCenter(x, y).Sub(center).MagnitudeSq() <= rSq {
				r.set(x, y, glyphFill, style)
			}
		}
	}
}

// DrawLine rasterizes the segment over cells with Bresenham
func (r *TerminalRenderer) DrawLine(p1, p2 vmath.Vec2, c RGB) {
	style := tcell.StyleDefault.Foreground(c.Tcell()).Background(r.bg.Tcell())

	x0, y0 := r.WorldToCell(p1)
	x1, y1 := r.WorldToCell(p2)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	// Bound iterations so a runaway coordinate cannot stall the frame
	w, h := r.screen.Size()
	limit := 4 * (w + h + 1)
	for i := 0; i <= dx-dy && i < limit; i++ {
		r.set(x0, y0, glyphLine, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawText writes s starting at cell (x, y), clipped to the screen
// Returns the column after the last written rune
func (r *TerminalRenderer) DrawText(x, y int, s string, fg, bg RGB) int {
	style := tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, ch := range s {
		if x >= w {
			break
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

// FillRow paints an entire row with bg
func (r *TerminalRenderer) FillRow(y int, bg RGB) {
	style := tcell.StyleDefault.Background(bg.Tcell())
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Present flushes the frame to the terminal
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// set writes one scene cell, dropping anything outside the scene area
func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	w, _ := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= r.SceneRows() {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
