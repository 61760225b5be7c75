package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/chaoslanding/internal/sim"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(Linspace(3, 9, 1)) != 1 {
		t.Error("expected a single point")
	}
}

func TestGridSearchFindsFasterPilot(t *testing.T) {
	g := NewGridSearch([]string{"speed"}, [][]float64{{0.5, 0}})

	var trials int
	g.OnTrial(func(Trial) { trials++ })

	best, err := g.Search(context.Background(), func(p map[string]float64) (*sim.Simulator, sim.Config, error) {
		cfg := sim.DefaultConfig()
		cfg.Frames = 900
		return sim.New(sim.NewChaser(p["speed"])), cfg, nil
	}, CatchRate)
	if err != nil {
		t.Fatal(err)
	}
	if trials != 2 {
		t.Errorf("expected 2 trials, got %d", trials)
	}
	// zero speed follows instantly
	if best.Params["speed"] != 0 {
		t.Errorf("expected instant chaser to win, got %v", best.Params)
	}
}

func TestGridSearchCartesian(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2, 3}, {10, 20}})

	seen := map[[2]float64]bool{}
	g.OnTrial(func(tr Trial) { seen[[2]float64{tr.Params["a"], tr.Params["b"]}] = true })

	best, err := g.Search(context.Background(), func(p map[string]float64) (*sim.Simulator, sim.Config, error) {
		cfg := sim.DefaultConfig()
		cfg.Frames = 1
		cfg.Seed = int64(p["a"]*100 + p["b"])
		return sim.New(sim.Idle), cfg, nil
	}, func(r *sim.Result) float64 { return float64(r.Seed) })
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 grid points, got %d", len(seen))
	}
	if best.Params["a"] != 1 || best.Params["b"] != 10 {
		t.Errorf("expected smallest seed to win, got %v", best.Params)
	}
}

func TestGridSearchErrors(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil).Search(context.Background(), nil, CatchRate); err == nil {
		t.Error("expected mismatch error")
	}

	boom := errors.New("boom")
	_, err := NewGridSearch([]string{"a"}, [][]float64{{1}}).Search(context.Background(),
		func(map[string]float64) (*sim.Simulator, sim.Config, error) { return nil, sim.Config{}, boom }, CatchRate)
	if !errors.Is(err, boom) {
		t.Errorf("expected build error, got %v", err)
	}

	_, err = NewGridSearch(nil, nil).Search(context.Background(),
		func(map[string]float64) (*sim.Simulator, sim.Config, error) { return nil, sim.Config{}, boom }, CatchRate)
	if !errors.Is(err, boom) {
		t.Errorf("expected empty grid to evaluate the single point, got %v", err)
	}
}
