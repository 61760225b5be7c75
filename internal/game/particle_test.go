package game

import (
	"math/rand"
	"testing"
)

func TestParticleLifeStrictlyDecreases(t *testing.T) {
	p := newParticle(0, 0, rand.New(rand.NewSource(1)))
	prev := p.Life
	steps := 0
	for p.Update() {
		if p.Life >= prev {
			t.Fatalf("life did not decrease: %f -> %f", prev, p.Life)
		}
		if d := prev - p.Life; d < LifeDecay-1e-9 || d > LifeDecay+1e-9 {
			t.Fatalf("expected decay %f, got %f", LifeDecay, d)
		}
		prev = p.Life
		steps++
	}
	if p.Life > 0 {
		t.Errorf("expected non-positive life on removal, got %f", p.Life)
	}
	if steps < 19 || steps > 20 {
		t.Errorf("expected roughly 20 live steps, got %d", steps)
	}
}

func TestUpdateParticlesFiltersInPlace(t *testing.T) {
	ps := []*Particle{
		{Life: 1},
		{Life: 0.01},
		{Life: 0.5},
	}
	alive := updateParticles(ps)
	if len(alive) != 2 {
		t.Fatalf("expected 2 particles to survive, got %d", len(alive))
	}
	if ps[2] != nil {
		t.Error("expected dropped slot to be cleared")
	}
}

func TestSymbolFallback(t *testing.T) {
	if Symbol(42).String() != Pizza.String() {
		t.Error("expected out-of-range symbol to fall back to pizza")
	}
	if Gem.String() != "💎" {
		t.Errorf("unexpected gem glyph %q", Gem.String())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero paddle", func(c *Config) { c.PaddleWidth = 0 }, false},
		{"zero interval", func(c *Config) { c.SpawnInterval = 0 }, false},
		{"negative burst", func(c *Config) { c.BurstSize = -1 }, false},
		{"negative miss limit", func(c *Config) { c.MissLimit = -3 }, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: unexpected error state: %v", tt.name, err)
		}
	}
}
