package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslanding/internal/automation"
	"github.com/san-kum/chaoslanding/internal/export"
	"github.com/san-kum/chaoslanding/internal/metrics"
	"github.com/san-kum/chaoslanding/internal/optim"
	"github.com/san-kum/chaoslanding/internal/sim"
	"github.com/san-kum/chaoslanding/internal/store"
	"github.com/san-kum/chaoslanding/internal/viz"
)

// parseRange reads "name=lo:hi" or "name=v".
func parseRange(s string, steps int) (string, []float64, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("bad param %q, want name=lo:hi", s)
	}
	loStr, hiStr, isRange := strings.Cut(spec, ":")
	lo, err := strconv.ParseFloat(loStr, 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param %q: %w", s, err)
	}
	if !isRange {
		return name, []float64{lo}, nil
	}
	hi, err := strconv.ParseFloat(hiStr, 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param %q: %w", s, err)
	}
	return name, optim.Linspace(lo, hi, steps), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, p := range tuneParams {
		name, values, err := parseRange(p, tuneSteps)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	obj := optim.CatchRate
	if objective != "catch_rate" {
		obj = optim.Metric(objective)
	}

	base := simConfig(cfg, frameCount(cmd))
	baseSpec := pilotSpec(cmd)

	grid := optim.NewGridSearch(names, ranges)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSCORE\tCATCH RATE\tOBJECTIVE\n", strings.ToUpper(strings.Join(names, "\t")))
	grid.OnTrial(func(tr optim.Trial) {
		for _, n := range names {
			fmt.Fprintf(w, "%.3f\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%d\t%.1f%%\t%.4f\n", tr.Result.FinalScore, tr.Result.CatchRate*100, tr.Score)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("tuning", "params", names, "steps", tuneSteps, "objective", objective, "pilot", baseSpec.Name)
	best, err := grid.Search(ctx, func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		sc, spec := base, baseSpec
		if err := automation.ApplyParams(&sc, &spec, params); err != nil {
			return nil, sim.Config{}, err
		}
		s, err := newSimulator(spec)
		return s, sc, err
	}, obj)
	w.Flush()
	if err != nil {
		return fmt.Errorf("tuning failed: %w", err)
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.3f", k, best.Params[k])
	}
	fmt.Printf("\nbest: %s  (score %d, catch rate %.1f%%)\n",
		strings.Join(parts, " "), best.Result.FinalScore, best.Result.CatchRate*100)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("%s: %s\n\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(ctx, scenario, st, metrics.Standard, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tPILOT\tSEED\tSCORE\tCATCH RATE\tSUPER CHAOS\tRUN")
	for i, r := range results {
		pilot := r.Step.Pilot.Name
		if pilot == "" {
			pilot = "chaser"
		}
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.1f%%\t%s\t%s\n",
			i+1, r.Step.Preset, pilot, r.Result.Seed, r.Result.FinalScore, r.Result.CatchRate*100,
			frameOrNever(r.Result.SuperChaosFrame), runID)
	}
	w.Flush()
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	pilot, err := newPilot(pilotSpec(cmd))
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)

	model := viz.NewModel(viz.Options{
		FPS:         cfg.FPS,
		Seed:        cfg.Seed,
		Bodies:      cfg.Field.Bodies,
		Restitution: cfg.Field.Restitution,
		Force:       cfg.Field.Force,
		Game:        cfg.GameRules(),
		ASCII:       ascii,
	})
	next, _ := model.Update(tea.WindowSizeMsg{Width: cols, Height: rows})
	model = next.(viz.Model)

	for i := 0; i < frameCount(cmd); i++ {
		if x, ok := pilot.Steer(model.Session()); ok {
			model.Session().MovePointer(x)
		}
		model.Advance(1)
	}

	canvas, paint := model.Snapshot()
	out, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(out, []byte(export.CanvasToSVG(canvas, 4, paint)), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Printf("wrote %s (score %d)\n", out, model.Session().Score())
	return nil
}
