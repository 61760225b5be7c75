package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/chaoslanding/internal/viz"
)

const (
	defaultBackground = "#0a0a0a"
	defaultDot        = "#00ff00"
)

// CanvasToSVG converts a braille canvas to SVG. Each dot keeps its cell
// color, row backgrounds and tint come from p, and text glyphs are drawn on
// top.
func CanvasToSVG(canvas *viz.Canvas, scale float64, p viz.Paint) string {
	if canvas == nil {
		return ""
	}
	tint := p.Tint
	if tint == nil {
		tint = func(hex string) string { return hex }
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char
	rowHeight := scale * 4

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, defaultBackground))

	if p.Background != nil {
		for row := 0; row < canvas.Height; row++ {
			sb.WriteString(fmt.Sprintf(`<rect y="%.1f" width="100%%" height="%.1f" fill="%s"/>
`, float64(row)*rowHeight, rowHeight, tint(p.Background(row))))
		}
	}

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	sb.WriteString("<g>\n")
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 || canvas.Glyph(col, row) != "" {
				continue
			}
			pattern := int(r - 0x2800)
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = defaultDot
			}
			fill = tint(fill)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * rowHeight

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, rowHeight*0.9))
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			g := canvas.Glyph(col, row)
			if g == "" {
				continue
			}
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = "#ffffff"
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, (float64(col)+0.5)*scale*2, (float64(row)+0.8)*rowHeight, tint(fill), html.EscapeString(g)))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG draws one line per series over a shared frame axis. Colors
// are reused in order when there are more series than colors.
func SeriesToSVG(series [][]float64, width, height int, colors []string) string {
	n := 0
	for _, s := range series {
		n = max(n, len(s))
	}
	if n < 2 || len(colors) == 0 {
		return ""
	}

	// Find bounds
	minY, maxY := 0.0, 0.0
	first := true
	for _, s := range series {
		for _, v := range s {
			if first || v < minY {
				minY = v
			}
			if first || v > maxY {
				maxY = v
			}
			first = false
		}
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(n - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, defaultBackground))

	for i, s := range series {
		if len(s) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[i%len(colors)]))
		for j, v := range s {
			x := float64(j) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
