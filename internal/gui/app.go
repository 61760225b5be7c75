package gui

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/chaoslanding/internal/audio"
	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/page"
	"github.com/san-kum/chaoslanding/internal/physics"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	scrollStep    = 0.05
	fontPath      = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

var (
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
)

// LevelMeter reports the audio output levels for the HUD.
type LevelMeter interface {
	Levels() audio.Levels
}

type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Bodies        int
	Restitution   float64
	Force         float64
	Game          game.Config

	Page   *page.Page
	Cues   game.Cues
	Meter  LevelMeter
	Logger *log.Logger
}

// App is the windowed landing page.
type App struct {
	Field   *physics.Field
	Session *game.Session
	Page    *page.Page
	Meter   LevelMeter
	Font    rl.Font

	Width, Height int
	log           *log.Logger
	last          time.Duration
	frame         int
	blocks        []page.Block
}

func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "CHAOS LANDING.exe")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when it is installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the page state. It makes no raylib calls.
func NewApp(opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Page == nil {
		opts.Page = page.New(nil, page.DefaultThreshold, opts.Logger)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	w, h := float64(opts.Width), float64(opts.Height)

	field := physics.NewField(opts.Bodies, w, h, rng)
	field.SetRestitution(opts.Restitution)
	field.Force = opts.Force

	session := game.NewSession(opts.Game, opts.Cues, rng)
	session.OnScore(opts.Page.HandleScore)
	session.Resize(w, h)
	session.Start(0)

	return &App{
		Field:   field,
		Session: session,
		Page:    opts.Page,
		Meter:   opts.Meter,
		Width:   opts.Width,
		Height:  opts.Height,
		log:     opts.Logger,
		blocks:  page.Blocks(),
	}
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(opts Options) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(opts)
	app.Font = loadFont()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update reads input and advances one frame. It reports false when the user
// asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	if rl.IsWindowResized() {
		a.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	a.Session.MovePointer(float64(rl.GetMouseX()))
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Page.Scroll(-float64(wheel) * scrollStep)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyPageDown) {
		a.Page.Scroll(scrollStep)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyPageUp) {
		a.Page.Scroll(-scrollStep)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsKeyPressed(rl.KeyA) {
		if !a.Page.AudioStarted() {
			if err := a.Page.StartAudio(); err != nil {
				a.log.Warn("audio start failed", "err", err)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Restart()
	}

	a.Step(time.Duration(rl.GetTime() * float64(time.Second)))
	return true
}

func (a *App) Resize(w, h int) {
	a.Width, a.Height = w, h
	a.Field.Resize(float64(w), float64(h))
	a.Session.Resize(float64(w), float64(h))
	a.log.Debug("window resized", "width", w, "height", h)
}

func (a *App) Restart() {
	a.Session.Reset()
	a.Session.Start(a.last)
}

// Step advances field, game and decoration to timestamp ts.
func (a *App) Step(ts time.Duration) {
	dt := (ts - a.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	a.last = ts
	a.frame++

	a.Field.Step()
	a.Session.Step(ts)
	a.Page.Advance(dt)
}

// color resolves hex through the page filter.
func (a *App) color(hex string, alpha float32) rl.Color {
	c, err := colorful.Hex(a.Page.Filter().Apply(hex))
	if err != nil {
		return rl.Fade(ColText, alpha)
	}
	r, g, b := c.RGB255()
	return rl.Fade(rl.NewColor(r, g, b, 255), alpha)
}
