package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/page"
	"github.com/san-kum/chaoslanding/internal/physics"
)

var itemColors = []physics.Color{physics.Yellow, physics.Magenta, physics.Cyan, physics.Green, physics.Red}

func (a *App) Draw() {
	rl.BeginDrawing()

	bg := a.Page.Background()
	rl.DrawRectangleGradientV(0, 0, int32(a.Width), int32(a.Height), a.color(bg.Top, 1), a.color(bg.Bottom, 1))

	a.RenderBodies()
	a.RenderItems()
	a.RenderPaddle()
	a.RenderParticles()
	if g := a.Page.Glitch(); g > 1 {
		a.DrawScanlines(uint8(g * 4))
	}
	a.DrawHUD()

	rl.EndDrawing()
}

// RenderBodies draws each body as a rotated square with a faint glow.
func (a *App) RenderBodies() {
	for _, b := range a.Field.Bodies {
		cx, cy := b.Center()
		size := float32(b.Size)
		hex := b.Color.Hex()

		glow := size * 1.4
		rl.DrawRectanglePro(
			rl.NewRectangle(float32(cx), float32(cy), glow, glow),
			rl.NewVector2(glow/2, glow/2),
			float32(b.Rotation),
			a.color(hex, 0.2),
		)
		rl.DrawRectanglePro(
			rl.NewRectangle(float32(cx), float32(cy), size, size),
			rl.NewVector2(size/2, size/2),
			float32(b.Rotation),
			a.color(hex, 0.8),
		)
		a.drawCentered(b.Icon.ASCII(), float32(cx), float32(cy), size/2, ColText)
	}
}

func (a *App) RenderItems() {
	for _, it := range a.Session.Items() {
		r := float32(it.Size / 2)
		cx, cy := float32(it.X)+r, float32(it.Y)+r
		c := itemColors[int(it.Symbol)%len(itemColors)]
		rl.DrawCircleV(rl.NewVector2(cx, cy), r, a.color(c.Hex(), 0.9))
		a.drawCentered(it.Symbol.ASCII(), cx, cy, r, rl.Black)
	}
}

func (a *App) RenderPaddle() {
	cfg := a.Session.Config()
	rl.DrawRectangleGradientH(
		int32(a.Session.PaddleX()), int32(a.Session.PaddleTop()),
		int32(cfg.PaddleWidth), int32(cfg.PaddleHeight),
		a.color(physics.Magenta.Hex(), 1), a.color(physics.Cyan.Hex(), 1),
	)
}

func (a *App) RenderParticles() {
	for _, p := range a.Session.Particles() {
		rl.DrawCircleV(rl.NewVector2(float32(p.X), float32(p.Y)), 3, a.color(p.Color.Hex(), float32(p.Life)))
	}
}

func (a *App) DrawHUD() {
	a.drawText(page.Title, 30, 24, 48, a.color(page.RotateHue(physics.Magenta.Hex(), a.Page.HueRotate()), 1))
	a.drawText(page.Subtitle, 190, 44, 20, ColTextDim)

	a.drawText(fmt.Sprintf("SCORE: %d", a.Session.Score()), 30, 90, 24, ColText)
	a.drawText(fmt.Sprintf("TARGET: %d", a.Page.Threshold()), 30, 120, 16, ColTextDim)
	if limit := a.Session.Config().MissLimit; limit > 0 {
		a.drawText(fmt.Sprintf("MISSES: %d / %d", a.Session.Misses(), limit), 30, 142, 16, ColTextDim)
	}

	switch {
	case a.Page.SuperChaos():
		if (a.frame/15)%2 == 0 {
			a.drawText(strings.ReplaceAll(page.Banner, "⚠️", "!!"), int32(a.Width)/2-220, 30, 32, a.color(physics.Red.Hex(), 1))
		}
	case a.Session.State() == game.GameOver:
		a.drawText("GAME OVER  [R] RESTART", int32(a.Width)/2-180, int32(a.Height)/2, 32, a.color(physics.Yellow.Hex(), 1))
	default:
		a.drawText(page.GameHint, int32(a.Width)/2-120, 30, 24, a.color(physics.Yellow.Hex(), 1))
	}

	if !a.Page.AudioStarted() {
		a.drawText("CLICK OR PRESS [A] TO START AUDIO", 30, int32(a.Height)-60, 16, a.color(physics.Cyan.Hex(), 1))
	} else if a.Meter != nil {
		lv := a.Meter.Levels()
		for i, v := range []float64{lv.Bass, lv.Mid, lv.High} {
			h := int32(v * 60)
			rl.DrawRectangle(30+int32(i)*14, int32(a.Height)-40-h, 10, h, a.color(physics.Green.Hex(), 0.8))
		}
	}

	a.DrawBlock()
	a.drawText("[WHEEL] SCROLL  [R] RESTART  [Q] QUIT", int32(a.Width)-420, int32(a.Height)-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Width)-90, 20, 14, ColTextDim)
}

// DrawBlock shows the content block the scroll position has reached.
func (a *App) DrawBlock() {
	if len(a.blocks) == 0 {
		return
	}
	b := a.blocks[int(a.Page.Progress()*float64(len(a.blocks)-1)+0.5)]
	x, y := int32(a.Width)-360, int32(a.Height)-170
	rl.DrawRectangleLines(x, y, 320, 110, a.color(b.Color, 1))
	a.drawText(b.Icon.ASCII()+" "+b.Title, x+14, y+14, 24, a.color(b.Color, 1))
	a.drawText(b.Content, x+14, y+56, 16, ColText)
}

func (a *App) DrawScanlines(alpha uint8) {
	for y := int32(0); y < int32(a.Height); y += 4 {
		rl.DrawRectangle(0, y, int32(a.Width), 2, rl.NewColor(0, 0, 0, alpha))
	}
}

func (a *App) drawText(text string, x, y int32, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}

func (a *App) drawCentered(text string, cx, cy, size float32, color rl.Color) {
	m := rl.MeasureTextEx(a.Font, text, size, 1)
	rl.DrawTextEx(a.Font, text, rl.NewVector2(cx-m.X/2, cy-m.Y/2), size, 1, color)
}
