// Package page hosts the landing page state shared by every frontend: the
// score reported by the catch game, the one-way switch into super chaos mode,
// the audio start gesture and the scroll-driven decoration.
package page

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Audio is the part of the audio engine the page drives.
type Audio interface {
	Init() error
	PlayBackground() (stop func())
	PlaySuperChaos()
	Close() error
}

const (
	DefaultThreshold = 10

	glitchMax       = 20.0
	springStiffness = 100.0
	springDamping   = 30.0
	superContrast   = 1.2
)

type Page struct {
	audio     Audio
	log       *log.Logger
	threshold int

	score        int
	superChaos   bool
	audioStarted bool
	stopMusic    func()

	scroll float64
	glitch *Spring
}

// New creates the page host. audio may be nil for a silent page.
func New(audio Audio, threshold int, logger *log.Logger) *Page {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Page{
		audio:     audio,
		log:       logger,
		threshold: threshold,
		stopMusic: func() {},
		glitch:    NewSpring(springStiffness, springDamping),
	}
}

// HandleScore is the catch game's score callback. Reaching the threshold flips
// the page into super chaos mode exactly once; nothing flips it back.
func (p *Page) HandleScore(score int) {
	p.score = score
	if score >= p.threshold && !p.superChaos {
		p.superChaos = true
		p.log.Info("super chaos mode", "score", score)
		if p.audio != nil {
			p.audio.PlaySuperChaos()
		}
	}
}

func (p *Page) Score() int       { return p.score }
func (p *Page) Threshold() int   { return p.threshold }
func (p *Page) SuperChaos() bool { return p.superChaos }

// StartAudio is the start-audio gesture: it opens the audio engine and starts
// the background loop. Later calls do nothing. An unavailable engine leaves
// the page silent but still marks the gesture as made.
func (p *Page) StartAudio() error {
	if p.audioStarted {
		return nil
	}
	p.audioStarted = true
	if p.audio == nil {
		return nil
	}
	if err := p.audio.Init(); err != nil {
		p.log.Warn("audio unavailable, continuing silently", "err", err)
		return err
	}
	p.stopMusic = p.audio.PlayBackground()
	return nil
}

func (p *Page) AudioStarted() bool { return p.audioStarted }

// Scroll moves the scroll progress by delta, clamped to [0, 1].
func (p *Page) Scroll(delta float64) {
	p.SetScroll(p.scroll + delta)
}

func (p *Page) SetScroll(progress float64) {
	p.scroll = math.Max(0, math.Min(progress, 1))
	p.glitch.Target = glitchMax * p.scroll
}

func (p *Page) Progress() float64 { return p.scroll }

// Advance moves the glitch spring forward by dt seconds.
func (p *Page) Advance(dt float64) {
	p.glitch.Advance(dt)
}

// Close stops the background loop and releases the audio engine.
func (p *Page) Close() error {
	p.stopMusic()
	p.stopMusic = func() {}
	if p.audio == nil {
		return nil
	}
	return p.audio.Close()
}
