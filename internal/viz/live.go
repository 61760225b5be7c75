package viz

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/chaoslanding/internal/audio"
	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/page"
	"github.com/san-kum/chaoslanding/internal/physics"
)

const (
	width  = 80
	height = 24

	// world pixels per braille dot
	scale = 4.0

	panelWidth   = 36
	canvasLeft   = 2
	canvasTop    = 1
	minCols      = 20
	minRows      = 8
	keyStep      = 40.0
	scrollStep   = 0.05
	historyLimit = 120
	historyEvery = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(panelWidth)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LevelMeter reports the audio output levels for the HUD.
type LevelMeter interface {
	Levels() audio.Levels
}

type Options struct {
	FPS         int
	Seed        int64
	Bodies      int
	Restitution float64
	Force       float64
	Game        game.Config

	Page   *page.Page
	Cues   game.Cues
	Meter  LevelMeter
	Logger *log.Logger

	// ASCII swaps emoji and icon glyphs for single-byte stand-ins.
	ASCII bool
}

// Model is the terminal landing page: the icon field and catch game drawn on
// a braille canvas next to a HUD panel.
type Model struct {
	opts    Options
	log     *log.Logger
	field   *physics.Field
	session *game.Session
	page    *page.Page
	canvas  *Canvas

	width, height int
	start         time.Time
	last          time.Duration
	frame         int
	frameTime     time.Duration

	scoreHistory []float64
	blocks       []page.Block
	showHelp     bool
	rec          *Recorder
	status       string
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Page == nil {
		opts.Page = page.New(nil, page.DefaultThreshold, opts.Logger)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	m := Model{
		opts:      opts,
		log:       opts.Logger,
		page:      opts.Page,
		width:     width,
		height:    height,
		start:     time.Now(),
		frameTime: time.Second / time.Duration(opts.FPS),
		blocks:    page.Blocks(),
	}

	cols, rows := m.canvasSize()
	w, h := worldSize(cols, rows)
	m.canvas = NewCanvas(cols, rows)
	m.field = physics.NewField(opts.Bodies, w, h, rng)
	m.field.SetRestitution(opts.Restitution)
	m.field.Force = opts.Force

	m.session = game.NewSession(opts.Game, opts.Cues, rng)
	m.session.OnScore(m.page.HandleScore)
	m.session.Resize(w, h)
	m.session.Start(0)
	return m
}

func worldSize(cols, rows int) (float64, float64) {
	return float64(cols*2) * scale, float64(rows*4) * scale
}

// canvasSize fits the canvas beside the HUD panel.
func (m *Model) canvasSize() (int, int) {
	cols := m.width - panelWidth - 2*canvasLeft - 2
	rows := m.height - 2*canvasTop
	return max(cols, minCols), max(rows, minRows)
}

func (m Model) Session() *game.Session { return m.session }
func (m Model) Field() *physics.Field  { return m.field }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameTime, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.rec != nil {
				m.stopRecording()
			}
			return m, tea.Quit
		case "a":
			m.startAudio()
		case "left", "h":
			m.nudgePaddle(-keyStep)
		case "right", "l":
			m.nudgePaddle(keyStep)
		case "up", "pgup", "k":
			m.page.Scroll(-scrollStep)
		case "down", "pgdown", "j":
			m.page.Scroll(scrollStep)
		case "home":
			m.page.SetScroll(0)
		case "end":
			m.page.SetScroll(1)
		case "r":
			m.restart()
		case "t":
			NextTheme()
		case "g":
			if m.rec != nil {
				m.stopRecording()
			} else {
				m.rec = NewRecorder()
				m.status = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.step(time.Time(msg).Sub(m.start))
		if m.rec != nil && m.frame%2 == 0 {
			m.rec.Capture(m.canvas, m.paint())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols, rows := m.canvasSize()
	ww, wh := worldSize(cols, rows)
	m.canvas = NewCanvas(cols, rows)
	m.field.Resize(ww, wh)
	m.session.Resize(ww, wh)
	m.log.Debug("resize", "cols", cols, "rows", rows, "world", fmt.Sprintf("%.0fx%.0f", ww, wh))
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.page.Scroll(-scrollStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.page.Scroll(scrollStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.startAudio()
		m.pointer(msg.X)
	case msg.Action == tea.MouseActionMotion:
		m.pointer(msg.X)
	}
}

// pointer maps a terminal column to the world x under it.
func (m *Model) pointer(col int) {
	cell := col - canvasLeft
	if cell < 0 || cell >= m.canvas.Width {
		return
	}
	m.session.MovePointer((float64(cell*2) + 1) * scale)
}

func (m *Model) nudgePaddle(dx float64) {
	center := m.session.PaddleX() + m.session.Config().PaddleWidth/2
	m.session.MovePointer(center + dx)
}

func (m *Model) startAudio() {
	if m.page.AudioStarted() {
		return
	}
	if err := m.page.StartAudio(); err != nil {
		m.status = "audio unavailable"
		return
	}
	m.status = "audio on"
}

func (m *Model) restart() {
	m.session.Reset()
	m.session.Start(m.last)
	m.scoreHistory = m.scoreHistory[:0]
}

// step advances one frame to timestamp ts.
func (m *Model) step(ts time.Duration) {
	dt := (ts - m.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	m.last = ts
	m.frame++

	m.field.Step()
	m.session.Step(ts)
	m.page.Advance(dt)

	if m.frame%historyEvery == 0 {
		m.scoreHistory = append(m.scoreHistory, float64(m.session.Score()))
		if len(m.scoreHistory) > historyLimit {
			m.scoreHistory = m.scoreHistory[1:]
		}
	}
	m.draw()
}

// Advance steps the page n frames at the configured rate without waiting
// for ticks.
func (m *Model) Advance(n int) {
	for i := 0; i < n; i++ {
		m.step(m.last + m.frameTime)
	}
}

// Snapshot returns the last drawn frame and the colors to paint it with.
func (m *Model) Snapshot() (*Canvas, Paint) {
	return m.canvas, m.paint()
}

func (m *Model) paint() Paint {
	p := Paint{Tint: m.page.Filter().Apply}
	if CurrentTheme.ScrollBackground {
		bg := m.page.Background()
		rows := max(m.canvas.Height-1, 1)
		p.Background = func(row int) string {
			return page.Blend(bg.Top, bg.Bottom, float64(row)/float64(rows))
		}
	} else {
		p.Background = func(int) string { return string(CurrentTheme.Background) }
	}
	return p
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()

	for _, b := range m.field.Bodies {
		cx, cy := b.Center()
		c.Pen(b.Color.Hex())
		c.FillRotatedSquare(cx/scale, cy/scale, b.Size/2/scale, b.Radians())
	}
	for _, b := range m.field.Bodies {
		cx, cy := b.Center()
		glyph := b.Icon.Glyph()
		if m.opts.ASCII {
			glyph = b.Icon.ASCII()
		}
		c.TextCentered(int(cx/scale/2), int(cy/scale/4), glyph, string(CurrentTheme.Text))
	}

	m.drawPaddle()

	for _, p := range m.session.Particles() {
		c.Pen(page.Blend(string(CurrentTheme.Background), p.Color.Hex(), p.Life))
		x, y := int(p.X/scale), int(p.Y/scale)
		if p.Life > 0.5 {
			c.DrawLine(x, y, x-int(p.VX), y-int(p.VY))
		} else {
			c.Set(x, y)
		}
	}

	for _, it := range m.session.Items() {
		glyph := it.Symbol.String()
		if m.opts.ASCII {
			glyph = it.Symbol.ASCII()
		}
		col := int((it.X + it.Size/2) / scale / 2)
		row := int((it.Y + it.Size/2) / scale / 4)
		c.TextCentered(col, row, glyph, string(CurrentTheme.Accent))
	}

	if m.page.Glitch() > 1 {
		c.Scanlines(4)
	}

	if m.session.State() == game.GameOver {
		c.TextCentered(c.Width/2, c.Height/2, "GAME OVER", string(CurrentTheme.Error))
		c.TextCentered(c.Width/2, c.Height/2+1, "press r to play again", string(CurrentTheme.Muted))
	}
	c.Pen("")
}

func (m *Model) drawPaddle() {
	cfg := m.session.Config()
	x0 := int(m.session.PaddleX() / scale)
	x1 := int((m.session.PaddleX() + cfg.PaddleWidth) / scale)
	y0 := int(m.session.PaddleTop() / scale)
	y1 := y0 + max(int(cfg.PaddleHeight/scale), 1)
	for x := x0; x < x1; x++ {
		t := float64(x-x0) / float64(max(x1-x0-1, 1))
		m.canvas.Pen(page.Blend(string(CurrentTheme.PaddleFrom), string(CurrentTheme.PaddleTo), t))
		m.canvas.FillRect(x, y0, x+1, y1)
	}
}

func (m *Model) stopRecording() {
	path := fmt.Sprintf("chaos_%d.gif", time.Now().Unix())
	if err := m.rec.Save(path); err != nil {
		m.log.Error("save recording", "path", path, "err", err)
		m.status = "recording failed"
	} else {
		m.log.Info("saved recording", "path", path, "frames", m.rec.Len())
		m.status = "saved " + path
	}
	m.rec = nil
}

// View renders the canvas and HUD panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.paint()))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.panel()))
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

func (m Model) panel() string {
	var s strings.Builder
	th := CurrentTheme
	filter := m.page.Filter()

	hue := m.page.HueRotate()
	shift := strings.Repeat(" ", int(m.page.Glitch()/5)*(m.frame%2))
	title := GradientText(page.Title,
		lipgloss.Color(filter.Apply(page.RotateHue(string(th.Primary), hue))),
		lipgloss.Color(filter.Apply(page.RotateHue(string(th.Secondary), hue))))
	s.WriteString(shift + title + " " + Subtle.Render(page.Subtitle) + " " + AnimatedSpinner(m.frame/4) + "\n")
	s.WriteString(Separator(panelWidth-2) + "\n")

	switch {
	case m.page.SuperChaos():
		s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Error).Render(page.Banner) + "\n")
	case m.session.State() == game.GameOver:
		s.WriteString(StatusOver.Render("GAME OVER") + "\n")
	default:
		s.WriteString(StatusRunning.Render(page.GameHint) + "\n")
	}
	if m.rec != nil {
		s.WriteString(StatusRecording.Render("● REC") + "\n")
	}

	s.WriteString(MetricLabel.Render("SCORE") + MetricValue.Render(fmt.Sprintf("%d", m.session.Score())) + "\n")
	s.WriteString(MetricLabel.Render("TARGET") + MetricValue.Render(fmt.Sprintf("%d", m.page.Threshold())) + "\n")
	misses := fmt.Sprintf("%d", m.session.Misses())
	if limit := m.session.Config().MissLimit; limit > 0 {
		misses += fmt.Sprintf(" / %d", limit)
	}
	s.WriteString(MetricLabel.Render("MISSES") + MetricValue.Render(misses) + "\n")
	s.WriteString(SparklineChart(m.scoreHistory, panelWidth-4) + "\n\n")

	if m.page.AudioStarted() && m.opts.Meter != nil {
		lv := m.opts.Meter.Levels()
		s.WriteString(MetricLabel.Render("BASS") + ProgressBar(lv.Bass, 20) + "\n")
		s.WriteString(MetricLabel.Render("MID") + ProgressBar(lv.Mid, 20) + "\n")
		s.WriteString(MetricLabel.Render("HIGH") + ProgressBar(lv.High, 20) + "\n")
	} else if !m.page.AudioStarted() {
		s.WriteString(KeyHint.Render("press A to START AUDIO") + "\n")
	}
	if m.status != "" {
		s.WriteString(Subtle.Render(m.status) + "\n")
	}

	s.WriteString("\n" + MetricLabel.Render("SCROLL") + ProgressBar(m.page.Progress(), 20) + "\n")
	s.WriteString(m.currentBlock() + "\n")

	s.WriteString(helpStyle.Render("←→:Paddle ↑↓:Scroll A:Audio\nR:Restart T:Theme G:Record ?:Help Q:Quit"))
	return s.String()
}

// currentBlock shows the data block the scroll position has reached.
func (m Model) currentBlock() string {
	if len(m.blocks) == 0 {
		return ""
	}
	i := int(m.page.Progress()*float64(len(m.blocks)-1) + 0.5)
	b := m.blocks[i]
	glyph := b.Icon.Glyph()
	if m.opts.ASCII {
		glyph = b.Icon.ASCII()
	}
	color := lipgloss.Color(m.page.Filter().Apply(b.Color))
	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(glyph + " " + b.Title)
	return GlassPanel.BorderForeground(color).Width(panelWidth - 4).Render(head + "\n" + b.Content)
}

var helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Move paddle              ║
║  ←/→ H/L  - Nudge paddle             ║
║  ↑/↓ Wheel- Scroll the page          ║
║  A        - Start audio              ║
║  R        - Restart the game         ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
