package export

import (
	"strings"
	"testing"

	"github.com/san-kum/chaoslanding/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Pen("#ff00ff")
	c.Set(0, 0)
	c.Set(1, 1)
	c.Text(3, 1, "<", "#00ffff")

	svg := CanvasToSVG(c, 2, viz.Paint{
		Background: func(int) string { return "#111111" },
		Tint:       strings.ToUpper,
	})

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `fill="#FF00FF"`) {
		t.Error("expected tinted dot color")
	}
	if got := strings.Count(svg, `fill="#111111"`); got != 2 {
		t.Errorf("expected 2 row backgrounds, got %d", got)
	}
	if !strings.Contains(svg, "&lt;</text>") {
		t.Error("expected escaped glyph text")
	}
	if CanvasToSVG(nil, 2, viz.Paint{}) != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([][]float64{{0, 1, 2, 3}, {3, 3, 1}}, 200, 100, []string{"#ff00ff"})
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if strings.Count(svg, `stroke="#ff00ff"`) != 2 {
		t.Error("expected colors to cycle")
	}
	if !strings.Contains(svg, "M0.0,") || !strings.Contains(svg, "L200.0,") {
		t.Error("expected the longest series to span the full width")
	}

	if SeriesToSVG([][]float64{{1}}, 10, 10, []string{"#fff"}) != "" {
		t.Error("expected empty output for a single point")
	}
}
