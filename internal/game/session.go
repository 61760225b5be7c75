package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// State of a session.
type State int

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config holds the tunables of the catch game.
type Config struct {
	PaddleWidth   float64
	PaddleHeight  float64
	CatchBand     float64 // height of the catch zone above the bottom edge
	SpawnInterval time.Duration
	SpawnMargin   float64 // items spawn at x in [0, width-margin) and y = -margin
	BurstSize     int
	BaseSpeed     float64
	SpeedJitter   float64
	SpeedPerPoint float64
	MinItemSize   float64
	ItemJitter    float64
	MissLimit     int // 0 keeps the session running forever
}

func DefaultConfig() Config {
	return Config{
		PaddleWidth:   100,
		PaddleHeight:  10,
		CatchBand:     20,
		SpawnInterval: time.Second,
		SpawnMargin:   40,
		BurstSize:     8,
		BaseSpeed:     2,
		SpeedJitter:   3,
		SpeedPerPoint: 0.1,
		MinItemSize:   30,
		ItemJitter:    10,
	}
}

func (c Config) Validate() error {
	switch {
	case c.PaddleWidth <= 0:
		return fmt.Errorf("%w: paddle width must be positive, got %f", ErrInvalidConfig, c.PaddleWidth)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval must be positive, got %v", ErrInvalidConfig, c.SpawnInterval)
	case c.BurstSize < 0:
		return fmt.Errorf("%w: burst size must not be negative, got %d", ErrInvalidConfig, c.BurstSize)
	case c.MissLimit < 0:
		return fmt.Errorf("%w: miss limit must not be negative, got %d", ErrInvalidConfig, c.MissLimit)
	case c.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speed must be positive, got %f", ErrInvalidConfig, c.BaseSpeed)
	}
	return nil
}

// Events summarizes what happened during one Step.
type Events struct {
	Spawned int
	Caught  int
	Missed  int
}

// Session is one play-through of the catch game.
type Session struct {
	cfg     Config
	rng     *rand.Rand
	cues    Cues
	onScore []func(score int)

	width, height float64
	paddleX       float64

	score     int
	misses    int
	items     []*Item
	particles []*Particle
	lastSpawn time.Duration
	state     State
}

// NewSession creates an idle session. A nil cues plays nothing.
func NewSession(cfg Config, cues Cues, rng *rand.Rand) *Session {
	if cues == nil {
		cues = silentCues{}
	}
	return &Session{
		cfg:  cfg,
		rng:  rng,
		cues: cues,
	}
}

// OnScore registers a listener called with the new score after every change.
func (s *Session) OnScore(fn func(score int)) {
	s.onScore = append(s.onScore, fn)
}

// Resize sets the play field and recenters the paddle.
func (s *Session) Resize(width, height float64) {
	s.width = width
	s.height = height
	s.paddleX = s.clampPaddle(width/2 - s.cfg.PaddleWidth/2)
}

// Start moves an idle session to Running. ts is the current frame timestamp;
// the first item appears one spawn interval later.
func (s *Session) Start(ts time.Duration) {
	if s.state != Idle {
		return
	}
	s.lastSpawn = ts
	s.state = Running
}

// Reset returns a finished session to Idle with a clean board. Score
// listeners are kept.
func (s *Session) Reset() {
	s.score = 0
	s.misses = 0
	s.items = s.items[:0]
	s.particles = s.particles[:0]
	s.state = Idle
	s.notifyScore()
}

// MovePointer centers the paddle under pointer x, clamped to the field.
func (s *Session) MovePointer(x float64) {
	s.paddleX = s.clampPaddle(x - s.cfg.PaddleWidth/2)
}

func (s *Session) clampPaddle(x float64) float64 {
	return math.Max(0, math.Min(x, s.width-s.cfg.PaddleWidth))
}

// AddItem drops an item onto the board outside the spawn schedule.
func (s *Session) AddItem(it Item) {
	s.items = append(s.items, &it)
}

// AddParticle injects a particle onto the board.
func (s *Session) AddParticle(p Particle) {
	s.particles = append(s.particles, &p)
}

func (s *Session) spawn() {
	x := s.rng.Float64() * (s.width - s.cfg.SpawnMargin)
	if x < 0 {
		x = 0
	}
	s.items = append(s.items, &Item{
		X:      x,
		Y:      -s.cfg.SpawnMargin,
		Symbol: Symbol(s.rng.Intn(int(numSymbols))),
		Speed:  s.cfg.BaseSpeed + s.rng.Float64()*s.cfg.SpeedJitter + float64(s.score)*s.cfg.SpeedPerPoint,
		Size:   s.cfg.MinItemSize + s.rng.Float64()*s.cfg.ItemJitter,
	})
}

func (s *Session) burst(x, y float64) {
	for i := 0; i < s.cfg.BurstSize; i++ {
		s.particles = append(s.particles, newParticle(x, y, s.rng))
	}
}

// caught reports whether it overlaps the paddle's catch band.
func (s *Session) caught(it *Item) bool {
	return it.Y+it.Size > s.height-s.cfg.CatchBand &&
		it.Y < s.height &&
		it.X > s.paddleX &&
		it.X < s.paddleX+s.cfg.PaddleWidth
}

// Step advances the session to frame timestamp ts. Timestamps are expected to
// be monotonic; at most one item is spawned per call.
func (s *Session) Step(ts time.Duration) Events {
	var ev Events
	if s.state != Running {
		return ev
	}

	if ts-s.lastSpawn > s.cfg.SpawnInterval {
		s.spawn()
		s.lastSpawn = ts
		ev.Spawned++
	}

	// Existing sparks move first so a fresh burst is drawn where the catch
	// happened.
	s.particles = updateParticles(s.particles)

	kept := s.items[:0]
	for _, it := range s.items {
		it.fall()

		if s.caught(it) {
			s.score++
			ev.Caught++
			s.burst(it.X, it.Y)
			s.cues.Catch()
			s.notifyScore()
			continue
		}

		if it.Y > s.height {
			s.misses++
			ev.Missed++
			s.cues.Miss()
			continue
		}

		kept = append(kept, it)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept

	if s.cfg.MissLimit > 0 && s.misses >= s.cfg.MissLimit {
		s.state = GameOver
	}

	return ev
}

func (s *Session) notifyScore() {
	for _, fn := range s.onScore {
		fn(s.score)
	}
}

func (s *Session) Score() int             { return s.score }
func (s *Session) Misses() int            { return s.misses }
func (s *Session) State() State           { return s.state }
func (s *Session) PaddleX() float64       { return s.paddleX }
func (s *Session) Width() float64         { return s.width }
func (s *Session) Height() float64        { return s.height }
func (s *Session) Config() Config         { return s.cfg }
func (s *Session) Items() []*Item         { return s.items }
func (s *Session) Particles() []*Particle { return s.particles }

// PaddleTop is the y of the paddle's top edge.
func (s *Session) PaddleTop() float64 {
	return s.height - s.cfg.CatchBand
}
