package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble repeats a run over consecutive seeds in parallel.
type Ensemble struct {
	numRuns   int
	seedStart int64
	workers   int
	newSim    func() *Simulator
}

// NewEnsemble builds each run's simulator from newSim so metrics never share
// state across goroutines.
func NewEnsemble(newSim func() *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.GOMAXPROCS(0),
		newSim:    newSim,
	}
}

func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", ErrInvalidConfig, e.numRuns)
	}
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			runCfg := cfg
			runCfg.Seed = e.seedStart + int64(i)

			res, err := e.newSim().Run(ctx, runCfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates an ensemble.
type Summary struct {
	Runs          int
	MeanScore     float64
	BestScore     int
	MeanCatchRate float64
	SuperChaos    int
	MeanMetrics   map[string]float64
}

func Summarize(results []*Result) Summary {
	s := Summary{Runs: len(results), MeanMetrics: make(map[string]float64)}
	if len(results) == 0 {
		return s
	}
	for _, r := range results {
		s.MeanScore += float64(r.FinalScore)
		s.MeanCatchRate += r.CatchRate
		if r.FinalScore > s.BestScore {
			s.BestScore = r.FinalScore
		}
		if r.SuperChaosFrame >= 0 {
			s.SuperChaos++
		}
		for k, v := range r.Metrics {
			s.MeanMetrics[k] += v
		}
	}
	n := float64(len(results))
	s.MeanScore /= n
	s.MeanCatchRate /= n
	for k := range s.MeanMetrics {
		s.MeanMetrics[k] /= n
	}
	return s
}
