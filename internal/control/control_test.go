package control

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/sim"
)

func TestPID(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 0.0)
	if u := ctrl.Compute(1.0, 0.0); u >= 0 {
		t.Error("PID should output negative control for positive error")
	}

	u := ctrl.Compute(0.5, 1.0)
	// err -0.5, integral -0.5, derivative 0.5
	want := 10*-0.5 + 0.1*-0.5 + 5*0.5
	if u != want {
		t.Errorf("expected %v, got %v", want, u)
	}

	ctrl.Reset()
	if u := ctrl.Compute(0, 2.0); u != 0 {
		t.Errorf("expected zero output at target after reset, got %v", u)
	}
}

func TestPIDSetParam(t *testing.T) {
	ctrl := NewPID(1, 0, 0, 0)
	ctrl.SetParam("Kp", 3)
	ctrl.SetParam("Target", 2)
	p := ctrl.GetParams()
	if p["Kp"] != 3 || p["Target"] != 2 {
		t.Errorf("unexpected params %v", p)
	}
}

func newSession() *game.Session {
	s := game.NewSession(game.DefaultConfig(), nil, rand.New(rand.NewSource(1)))
	s.Resize(800, 600)
	s.Start(0)
	return s
}

func TestPIDPilotMovesTowardItem(t *testing.T) {
	s := newSession()
	s.AddItem(game.Item{X: 700, Y: 100, Speed: 2, Size: 30})

	pilot := NewPIDPilot(Gains{Kp: 0.5, MaxSpeed: 10})
	center := s.PaddleX() + s.Config().PaddleWidth/2
	x, ok := pilot.Steer(s)
	if !ok {
		t.Fatal("expected pilot to steer toward the item")
	}
	if x != center+10 {
		t.Errorf("expected capped step to %v, got %v", center+10, x)
	}

	if _, ok := NewPIDPilot(DefaultGains).Steer(newSession()); ok {
		t.Error("expected no steering on an empty board")
	}
}

func TestPIDPilotCatches(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Frames = 1800
	cfg.Seed = 5

	result, err := sim.New(NewPIDPilot(DefaultGains)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	idle, err := sim.New(sim.Idle).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Catches <= idle.Catches {
		t.Errorf("pid pilot caught %d, idle caught %d", result.Catches, idle.Catches)
	}
}

func TestNewPilot(t *testing.T) {
	for _, name := range PilotNames() {
		if _, err := NewPilot(PilotSpec{Name: name}); err != nil {
			t.Errorf("pilot %s: %v", name, err)
		}
	}
	if _, err := NewPilot(PilotSpec{Name: "autopilot"}); err == nil {
		t.Error("expected error for unknown pilot")
	}
}
