package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/chaoslanding/internal/sim"
)

var ErrNoCandidates = errors.New("grid search: no candidate ran")

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Score  float64
	Result *sim.Result
}

// Build turns a parameter assignment into a simulator and its run config.
type Build func(params map[string]float64) (*sim.Simulator, sim.Config, error)

// Objective scores a run. Lower is better.
type Objective func(*sim.Result) float64

// CatchRate prefers runs that miss less.
func CatchRate(r *sim.Result) float64 { return -r.CatchRate }

// Metric minimizes a named run metric.
func Metric(name string) Objective {
	return func(r *sim.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	onTrial    func(Trial)
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// OnTrial registers a callback run after every evaluated point.
func (g *GridSearch) OnTrial(fn func(Trial)) { g.onTrial = fn }

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Search runs every point of the grid and returns the best one.
func (g *GridSearch) Search(ctx context.Context, build Build, objective Objective) (Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, fmt.Errorf("grid search: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Trial{Score: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, objective, &best)
	if err != nil {
		return Trial{}, err
	}
	if best.Params == nil {
		return Trial{}, ErrNoCandidates
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Build,
	objective Objective,
	best *Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		s, cfg, err := build(current)
		if err != nil {
			return err
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return err
		}

		trial := Trial{Params: current, Score: objective(result), Result: result}
		if g.onTrial != nil {
			g.onTrial(trial)
		}
		if best.Params == nil || trial.Score < best.Score {
			*best = trial
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, objective, best); err != nil {
			return err
		}
	}
	return nil
}
