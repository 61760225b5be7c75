package audio

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	DefaultSampleRate = 44100

	NoteInterval = 250 * time.Millisecond
	NoteLength   = 200 * time.Millisecond
)

// BackgroundNotes is the looping background arpeggio (A major, up and back).
var BackgroundNotes = []float64{440, 554, 659, 554, 440, 554, 659, 880}

type Config struct {
	Backend    string
	SampleRate int
	Volume     float64 // linear; 1 leaves the cues untouched
}

func DefaultConfig() Config {
	return Config{
		Backend:    BackendSpeaker,
		SampleRate: DefaultSampleRate,
		Volume:     1,
	}
}

type Option func(*Engine)

// WithBackend bypasses name resolution and opens b on Init.
func WithBackend(b Backend) Option {
	return func(e *Engine) { e.backend = b }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithNoteInterval changes the background loop cadence.
func WithNoteInterval(d time.Duration) Option {
	return func(e *Engine) { e.noteInterval = d }
}

// Engine mixes cues and feeds them to a backend. It implements beep.Streamer;
// backends pull the mix from it.
type Engine struct {
	cfg          Config
	rate         beep.SampleRate
	log          *log.Logger
	resolve      Resolver
	noteInterval time.Duration
	analyzer     *Analyzer

	initMu sync.Mutex

	mu       sync.Mutex
	mixer    *beep.Mixer
	backend  Backend
	ready    bool
	opened   bool
	closed   bool
	loops    map[int]context.CancelFunc
	nextLoop int

	wg sync.WaitGroup
}

// New creates an engine. Nothing is opened until Init.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Volume < 0 {
		cfg.Volume = 0
	}
	e := &Engine{
		cfg:          cfg,
		rate:         beep.SampleRate(cfg.SampleRate),
		noteInterval: NoteInterval,
		analyzer:     NewAnalyzer(float64(cfg.SampleRate)),
		mixer:        &beep.Mixer{},
		loops:        make(map[int]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	if e.resolve == nil {
		e.resolve = NewBackend
	}
	return e
}

// Init opens the output device. It is safe to call repeatedly; once the
// engine is ready further calls return nil. A failure leaves the engine
// silent and may be retried.
func (e *Engine) Init() error {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.ready {
		e.mu.Unlock()
		return nil
	}
	b := e.backend
	e.mu.Unlock()

	if b == nil {
		var err error
		if b, err = e.resolve(e.cfg.Backend); err != nil {
			e.log.Warn("audio backend unavailable", "backend", e.cfg.Backend, "err", err)
			return err
		}
	}

	// The backend may start pulling from Stream right away, so the lock is
	// not held here.
	if err := b.Open(e, e.rate); err != nil {
		e.log.Warn("audio disabled", "backend", e.cfg.Backend, "err", err)
		return err
	}

	e.mu.Lock()
	e.backend = b
	e.ready = true
	e.opened = true
	e.mu.Unlock()

	e.log.Info("audio started", "backend", e.cfg.Backend, "rate", e.cfg.SampleRate)
	return nil
}

// Ready reports whether Init succeeded and Close has not been called.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Stream fills samples with the current mix. It never runs dry; gaps are
// silence.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	n, _ := e.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	e.mu.Unlock()

	e.analyzer.Write(samples)
	return len(samples), true
}

func (e *Engine) Err() error { return nil }

// Playing is the number of cues currently in the mix.
func (e *Engine) Playing() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

// Levels returns the output band levels for meters.
func (e *Engine) Levels() Levels {
	return e.analyzer.Levels()
}

func (e *Engine) withVolume(s beep.Streamer) beep.Streamer {
	v := e.cfg.Volume
	if v == 1 {
		return s
	}
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func (e *Engine) play(streams ...beep.Streamer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return
	}
	for _, s := range streams {
		e.mixer.Add(e.withVolume(s))
	}
}

// PlayTone plays a single decaying tone.
func (e *Engine) PlayTone(freq float64, d time.Duration, wave Wave) {
	e.play(NewTone(freq, d, wave, e.rate))
}

// PlayCatch is a two-tone ascending blip.
func (e *Engine) PlayCatch() {
	e.play(
		NewTone(880, 100*time.Millisecond, Square, e.rate),
		delayed(NewTone(1100, 150*time.Millisecond, Square, e.rate), 50*time.Millisecond, e.rate),
	)
}

// PlayMiss is a single low buzz.
func (e *Engine) PlayMiss() {
	e.PlayTone(220, 300*time.Millisecond, Sawtooth)
}

// PlaySuperChaos is the mode-switch sting.
func (e *Engine) PlaySuperChaos() {
	e.PlayTone(1200, 500*time.Millisecond, Square)
}

// Catch and Miss let the engine serve as game cues.
func (e *Engine) Catch() { e.PlayCatch() }
func (e *Engine) Miss()  { e.PlayMiss() }

// PlayBackground starts the looping note sequence and returns a func that
// stops it. Stopping is idempotent. When the engine is not ready nothing is
// started and the returned func does nothing.
func (e *Engine) PlayBackground() (stop func()) {
	e.mu.Lock()
	if !e.ready {
		e.mu.Unlock()
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	id := e.nextLoop
	e.nextLoop++
	e.loops[id] = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.noteInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.PlayTone(BackgroundNotes[i%len(BackgroundNotes)], NoteLength, Square)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.loops, id)
			e.mu.Unlock()
			cancel()
		})
	}
}

// Close stops every loop, silences the mix and releases the backend. The
// engine cannot be reopened.
func (e *Engine) Close() error {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.ready = false
	for id, cancel := range e.loops {
		cancel()
		delete(e.loops, id)
	}
	e.mixer.Clear()
	b, opened := e.backend, e.opened
	e.mu.Unlock()

	e.wg.Wait()

	if b == nil || !opened {
		return nil
	}
	return b.Close()
}
