package viz

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	dotPx     = 2
	maxFrames = 900
)

var errNoFrames = errors.New("no frames recorded")

// Recorder captures canvas frames for a GIF.
type Recorder struct {
	frames []*image.Paletted
}

func NewRecorder() *Recorder {
	return &Recorder{frames: make([]*image.Paletted, 0, 64)}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes the canvas with the same colors Render would use.
// Frames beyond the cap are dropped.
func (r *Recorder) Capture(c *Canvas, p Paint) {
	if len(r.frames) >= maxFrames {
		return
	}
	tint := p.Tint
	if tint == nil {
		tint = func(hex string) string { return hex }
	}

	charW, charH := 2*dotPx, 4*dotPx
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), palette.Plan9)

	for row := 0; row < c.Height; row++ {
		bg := color.Color(color.Black)
		if p.Background != nil {
			bg = hexColor(tint(p.Background(row)), color.Black)
		}
		bgIdx := uint8(img.Palette.Index(bg))
		for y := row * charH; y < (row+1)*charH; y++ {
			for x := 0; x < c.Width*charW; x++ {
				img.SetColorIndex(x, y, bgIdx)
			}
		}

		for col := 0; col < c.Width; col++ {
			fg := uint8(img.Palette.Index(hexColor(tint(c.Colors[row][col]), color.White)))
			baseX, baseY := col*charW, row*charH

			if g := c.glyphs[row][col]; g != "" && g != covered {
				fillPx(img, baseX, baseY+dotPx, charW, charH-2*dotPx, fg)
				continue
			}

			pattern := int(c.Grid[row][col] - blank)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						fillPx(img, baseX+dx*dotPx, baseY+dy*dotPx, dotPx, dotPx, fg)
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func fillPx(img *image.Paletted, x0, y0, w, h int, idx uint8) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetColorIndex(x, y, idx)
		}
	}
}

func hexColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Save writes the recording as a looping GIF.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
