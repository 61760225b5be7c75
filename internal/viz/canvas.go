package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = 0x2800
	// marks the right half of a double-width glyph
	covered = "\x00"
)

// Canvas is a braille pixel grid with a foreground color per cell and an
// overlay layer for text glyphs.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
	glyphs        [][]string
	pen           string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
		glyphs: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
		c.glyphs[i] = make([]string, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in braille dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Pen sets the color used by later drawing calls. An empty pen leaves cell
// colors alone.
func (c *Canvas) Pen(hex string) { c.pen = hex }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.pen != "" {
		c.Colors[row][col] = c.pen
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets pixels, colors and glyphs.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
			c.glyphs[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Scanlines clears every gap-th row of dots, leaving text glyphs alone.
func (c *Canvas) Scanlines(gap int) {
	if gap <= 0 {
		return
	}
	for y := gap - 1; y < c.SubHeight(); y += gap {
		for x := 0; x < c.SubWidth(); x++ {
			c.Unset(x, y)
		}
	}
}

// FillRect fills [x0, x1) x [y0, y1).
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y)
		}
	}
}

// FillRotatedSquare fills a square of half-side half centered on (cx, cy),
// rotated by angle radians.
func (c *Canvas) FillRotatedSquare(cx, cy, half, angle float64) {
	if half <= 0 {
		return
	}
	sin, cos := math.Sincos(-angle)
	reach := half * math.Sqrt2
	for y := int(math.Floor(cy - reach)); y <= int(math.Ceil(cy+reach)); y++ {
		for x := int(math.Floor(cx - reach)); x <= int(math.Ceil(cx+reach)); x++ {
			px, py := float64(x)+0.5-cx, float64(y)+0.5-cy
			rx := px*cos - py*sin
			ry := px*sin + py*cos
			if math.Abs(rx) <= half && math.Abs(ry) <= half {
				c.Set(x, y)
			}
		}
	}
}

// Text places s on the overlay layer starting at cell (col, row). Double
// width runes take two cells. Text past the right edge is dropped.
func (c *Canvas) Text(col, row int, s, hex string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			prev := col - 1
			if prev > 0 && prev < c.Width && c.glyphs[row][prev] == covered {
				prev--
			}
			if prev >= 0 && prev < c.Width && c.glyphs[row][prev] != "" {
				c.glyphs[row][prev] += string(r)
			}
			continue
		}
		if col < 0 {
			col += w
			continue
		}
		if col+w > c.Width {
			return
		}
		for i := 0; i < w; i++ {
			c.vacate(row, col+i)
		}
		c.glyphs[row][col] = string(r)
		c.Colors[row][col] = hex
		if w == 2 {
			c.glyphs[row][col+1] = covered
		}
		col += w
	}
}

// vacate empties cell col along with the other half of any wide glyph it
// belongs to, so every row keeps its display width.
func (c *Canvas) vacate(row, col int) {
	g := c.glyphs[row]
	switch {
	case g[col] == covered:
		g[col-1] = ""
	case col+1 < c.Width && g[col+1] == covered:
		g[col+1] = ""
	}
	g[col] = ""
}

// TextCentered places s so its display width is centered on col.
func (c *Canvas) TextCentered(col, row int, s, hex string) {
	c.Text(col-runewidth.StringWidth(s)/2, row, s, hex)
}

// Glyph returns the text glyph drawn at a cell, or "" when there is none or
// the cell is the right half of a wide glyph.
func (c *Canvas) Glyph(col, row int) string {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return ""
	}
	if g := c.glyphs[row][col]; g != covered {
		return g
	}
	return ""
}

func (c *Canvas) cell(row, col int) string {
	switch g := c.glyphs[row][col]; g {
	case "":
		return string(c.Grid[row][col])
	case covered:
		return ""
	default:
		return g
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			b.WriteString(c.cell(row, col))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Paint controls how Render colors the canvas. Both funcs are optional.
type Paint struct {
	Background func(row int) string
	Tint       func(hex string) string
}

// Render draws the canvas with lipgloss, one style per run of equally
// colored cells.
func (c *Canvas) Render(p Paint) string {
	tint := p.Tint
	if tint == nil {
		tint = func(hex string) string { return hex }
	}

	var b strings.Builder
	for row := range c.Grid {
		base := lipgloss.NewStyle()
		if p.Background != nil {
			if bg := p.Background(row); bg != "" {
				base = base.Background(lipgloss.Color(tint(bg)))
			}
		}

		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if runColor != "" {
				style = style.Foreground(lipgloss.Color(tint(runColor)))
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for col := range c.Grid[row] {
			color := c.Colors[row][col]
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteString(c.cell(row, col))
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
