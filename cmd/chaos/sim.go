package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslanding/internal/analysis"
	"github.com/san-kum/chaoslanding/internal/config"
	"github.com/san-kum/chaoslanding/internal/control"
	"github.com/san-kum/chaoslanding/internal/export"
	"github.com/san-kum/chaoslanding/internal/metrics"
	"github.com/san-kum/chaoslanding/internal/physics"
	"github.com/san-kum/chaoslanding/internal/sim"
	"github.com/san-kum/chaoslanding/internal/store"
)

func simConfig(cfg *config.Config, frames int) sim.Config {
	sc := sim.DefaultConfig()
	sc.Frames = frames
	sc.FrameTime = cfg.FrameTime()
	sc.Seed = cfg.Seed
	sc.Bodies = cfg.Field.Bodies
	sc.Restitution = cfg.Field.Restitution
	sc.Force = cfg.Field.Force
	sc.Game = cfg.GameRules()
	sc.Threshold = cfg.Page.SuperChaosThreshold
	return sc
}

func newPilot(spec control.PilotSpec) (sim.Pilot, error) {
	pilot, err := control.NewPilot(spec)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(control.PilotNames(), ", "))
	}
	return pilot, nil
}

func newSimulator(spec control.PilotSpec) (*sim.Simulator, error) {
	pilot, err := newPilot(spec)
	if err != nil {
		return nil, err
	}
	s := sim.New(pilot)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	return s, nil
}

func presetName() string {
	if preset == "" {
		return "custom"
	}
	return preset
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := newSimulator(pilotSpec(cmd))
	if err != nil {
		return err
	}
	s.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc := simConfig(cfg, frameCount(cmd))
	result, err := s.Run(ctx, sc)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printResult(result)

	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(result.Series(func(f sim.Frame) float64 { return float64(f.Score) }), plotWidth),
		asciigraph.Height(10), asciigraph.Caption("score"), asciigraph.SeriesColors(asciigraph.Magenta)))
	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(result.Series(func(f sim.Frame) float64 { return float64(f.Items) }), plotWidth),
		asciigraph.Height(8), asciigraph.Caption("items on screen"), asciigraph.SeriesColors(asciigraph.Cyan)))

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(presetName(), sc, result)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}

	if jsonOut != "" {
		if err := store.ExportJSON(jsonOut, presetName(), sc, result); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		fmt.Printf("exported: %s\n", jsonOut)
	}
	return nil
}

func printResult(r *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed\t%d\n", r.Seed)
	fmt.Fprintf(w, "frames\t%d\n", len(r.Frames))
	fmt.Fprintf(w, "score\t%d\n", r.FinalScore)
	fmt.Fprintf(w, "caught / spawned\t%d / %d\n", r.Catches, r.Spawned)
	fmt.Fprintf(w, "misses\t%d\n", r.Misses)
	fmt.Fprintf(w, "catch rate\t%.1f%%\n", r.CatchRate*100)
	fmt.Fprintf(w, "super chaos\t%s\n", frameOrNever(r.SuperChaosFrame))
	fmt.Fprintf(w, "game over\t%s\n", frameOrNever(r.GameOverFrame))

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, r.Metrics[name])
	}
	w.Flush()
}

func frameOrNever(frame int) string {
	if frame < 0 {
		return "never"
	}
	return fmt.Sprintf("frame %d", frame)
}

// downsample averages data into at most n buckets.
func downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(data) / n
		hi := (i + 1) * len(data) / n
		sum := 0.0
		for _, v := range data[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	spec := pilotSpec(cmd)
	if _, err := newPilot(spec); err != nil {
		return err
	}
	ensemble := sim.NewEnsemble(func() *sim.Simulator {
		s, _ := newSimulator(spec)
		return s
	}, runs, cfg.Seed)
	if workers > 0 {
		ensemble.SetWorkers(workers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc := simConfig(cfg, frameCount(cmd))
	logger.Info("running ensemble", "runs", runs, "frames", sc.Frames, "pilot", spec.Name)
	results, err := ensemble.Run(ctx, sc)
	if err != nil {
		return fmt.Errorf("ensemble failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSCORE\tMISSES\tCATCH RATE\tSUPER CHAOS\tGAME OVER")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1f%%\t%s\t%s\n",
			r.Seed, r.FinalScore, r.Misses, r.CatchRate*100, frameOrNever(r.SuperChaosFrame), frameOrNever(r.GameOverFrame))
	}
	w.Flush()

	sum := sim.Summarize(results)
	fmt.Printf("\n%d runs  mean score %.1f  best %d  catch rate %.1f%%  super chaos %d/%d\n",
		sum.Runs, sum.MeanScore, sum.BestScore, sum.MeanCatchRate*100, sum.SuperChaos, sum.Runs)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	stored, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSEED\tFRAMES\tSCORE\tCATCH RATE\tTIME")
	for _, r := range stored {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.1f%%\t%s\n",
			r.ID, r.Preset, r.Seed, r.Frames, r.FinalScore, r.CatchRate*100, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	series := func(fn func(sim.Frame) float64) []float64 {
		out := make([]float64, len(trace))
		for i, f := range trace {
			out[i] = fn(f)
		}
		return downsample(out, 80)
	}

	fmt.Printf("%s  preset %s  seed %d  score %d\n\n", meta.ID, meta.Preset, meta.Seed, meta.FinalScore)
	fmt.Println(asciigraph.PlotMany([][]float64{
		series(func(f sim.Frame) float64 { return float64(f.Score) }),
		series(func(f sim.Frame) float64 { return float64(f.Misses) }),
	}, asciigraph.Height(10), asciigraph.Caption("score / misses"),
		asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Red)))
	fmt.Println()
	fmt.Println(asciigraph.Plot(series(func(f sim.Frame) float64 { return f.Energy }),
		asciigraph.Height(8), asciigraph.Caption("field energy")))

	if svgOut, _ := cmd.Flags().GetString("svg"); svgOut != "" {
		full := func(fn func(sim.Frame) float64) []float64 {
			out := make([]float64, len(trace))
			for i, f := range trace {
				out[i] = fn(f)
			}
			return out
		}
		svg := export.SeriesToSVG([][]float64{
			full(func(f sim.Frame) float64 { return float64(f.Score) }),
			full(func(f sim.Frame) float64 { return float64(f.Misses) }),
			full(func(f sim.Frame) float64 { return float64(f.Items) }),
		}, 800, 300, []string{"#e94560", "#ff4444", "#00ffff"})
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return store.New(dataDir).Export(os.Stdout, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if meta.FrameTimeMs <= 0 || len(trace) < 2 {
		return fmt.Errorf("run %s is too short to analyze", args[0])
	}
	rate := 1000 / meta.FrameTimeMs

	items := make([]float64, len(trace))
	energy := make([]float64, len(trace))
	for i, f := range trace {
		items[i] = float64(f.Items)
		energy[i] = f.Energy
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tDOMINANT HZ\tPERIOD\tPOWER")
	for _, s := range []struct {
		name string
		data []float64
	}{{"items", items}, {"energy", energy}} {
		freq, power := analysis.DominantFrequency(s.data, rate)
		period := "-"
		if freq > 0 {
			period = fmt.Sprintf("%.2fs", 1/freq)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%.2f\n", s.name, freq, period, power)
	}
	w.Flush()

	spectrum := analysis.PowerSpectrum(analysis.RemoveMean(items))
	if len(spectrum) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(spectrum[1:], 80), asciigraph.Height(10), asciigraph.Caption("item count spectrum")))
	}
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}

	sc := sim.DefaultConfig()
	field := physics.NewField(cfg.Field.Bodies, sc.Width, sc.Height, rand.New(rand.NewSource(cfg.Seed)))
	field.SetRestitution(cfg.Field.Restitution)
	field.Force = cfg.Field.Force

	frames := frameCount(cmd)
	lambda := analysis.LyapunovExponent(field, frames, perturbation)
	verdict := "regular"
	if lambda > 0 {
		verdict = "chaotic"
	}
	fmt.Printf("bodies %d  seed %d  frames %d\n", len(field.Bodies), cfg.Seed, frames)
	fmt.Printf("largest lyapunov exponent: %.5f per frame (%s)\n", lambda, verdict)
	return nil
}
