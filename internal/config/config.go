package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaoslanding/internal/audio"
	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/physics"
)

const (
	DefaultFPS                 = 60
	DefaultTheme               = "chaos"
	DefaultSuperChaosThreshold = 10
	DefaultLogLevel            = "info"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Seed  int64       `yaml:"seed"`
	FPS   int         `yaml:"fps"`
	Theme string      `yaml:"theme"`
	Field FieldConfig `yaml:"field"`
	Game  GameConfig  `yaml:"game"`
	Page  PageConfig  `yaml:"page"`
	Audio AudioConfig `yaml:"audio"`
	Log   LogConfig   `yaml:"log"`
}

type FieldConfig struct {
	Bodies      int     `yaml:"bodies"`
	Restitution float64 `yaml:"restitution"`
	Force       float64 `yaml:"force"`
}

type GameConfig struct {
	PaddleWidth     float64 `yaml:"paddle_width"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	BurstSize       int     `yaml:"burst_size"`
	BaseSpeed       float64 `yaml:"base_speed"`
	SpeedJitter     float64 `yaml:"speed_jitter"`
	SpeedPerPoint   float64 `yaml:"speed_per_point"`
	MissLimit       int     `yaml:"miss_limit"`
}

type PageConfig struct {
	SuperChaosThreshold int `yaml:"super_chaos_threshold"`
}

type AudioConfig struct {
	Backend    string  `yaml:"backend"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	g := game.DefaultConfig()
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Field: FieldConfig{
			Bodies:      physics.DefaultBodies,
			Restitution: physics.DefaultRestitution,
			Force:       physics.DefaultForce,
		},
		Game: GameConfig{
			PaddleWidth:     g.PaddleWidth,
			SpawnIntervalMs: int(g.SpawnInterval / time.Millisecond),
			BurstSize:       g.BurstSize,
			BaseSpeed:       g.BaseSpeed,
			SpeedJitter:     g.SpeedJitter,
			SpeedPerPoint:   g.SpeedPerPoint,
			MissLimit:       g.MissLimit,
		},
		Page: PageConfig{
			SuperChaosThreshold: DefaultSuperChaosThreshold,
		},
		Audio: AudioConfig{
			Backend:    audio.BackendSpeaker,
			SampleRate: audio.DefaultSampleRate,
			Volume:     1,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads path on top of cfg. Keys missing from the file keep their
// current values.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Field.Bodies < 0:
		return fmt.Errorf("%w: bodies must not be negative, got %d", ErrInvalid, c.Field.Bodies)
	case c.Field.Restitution < 0 || c.Field.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0, 1], got %f", ErrInvalid, c.Field.Restitution)
	case c.Page.SuperChaosThreshold <= 0:
		return fmt.Errorf("%w: super chaos threshold must be positive, got %d", ErrInvalid, c.Page.SuperChaosThreshold)
	case c.Audio.Volume < 0:
		return fmt.Errorf("%w: volume must not be negative, got %f", ErrInvalid, c.Audio.Volume)
	}
	if err := audio.ValidBackend(c.Audio.Backend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.GameRules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// GameRules converts the game section into session tunables.
func (c *Config) GameRules() game.Config {
	g := game.DefaultConfig()
	g.PaddleWidth = c.Game.PaddleWidth
	g.SpawnInterval = time.Duration(c.Game.SpawnIntervalMs) * time.Millisecond
	g.BurstSize = c.Game.BurstSize
	g.BaseSpeed = c.Game.BaseSpeed
	g.SpeedJitter = c.Game.SpeedJitter
	g.SpeedPerPoint = c.Game.SpeedPerPoint
	g.MissLimit = c.Game.MissLimit
	return g
}

func (c *Config) AudioSettings() audio.Config {
	return audio.Config{
		Backend:    c.Audio.Backend,
		SampleRate: c.Audio.SampleRate,
		Volume:     c.Audio.Volume,
	}
}

// FrameTime is the duration of one frame at the configured rate.
func (c *Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
