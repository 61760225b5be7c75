package physics

import "github.com/lucasb-eyer/go-colorful"

// Color is one of the neon palette entries.
type Color int

const (
	Magenta Color = iota
	Cyan
	Yellow
	Red
	Green
)

var palette = [...]string{
	Magenta: "#ff00ff",
	Cyan:    "#00ffff",
	Yellow:  "#ffff00",
	Red:     "#ff0044",
	Green:   "#44ff00",
}

// BodyColors and SparkColors are the palettes used for bodies and particles.
var (
	BodyColors  = []Color{Magenta, Cyan, Yellow, Red, Green}
	SparkColors = []Color{Magenta, Cyan, Yellow}
)

func (c Color) Hex() string {
	if c < 0 || int(c) >= len(palette) {
		return palette[Magenta]
	}
	return palette[c]
}

func (c Color) RGB() (r, g, b uint8) {
	col, err := colorful.Hex(c.Hex())
	if err != nil {
		return 255, 0, 255
	}
	return col.RGB255()
}
