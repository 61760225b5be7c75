package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslanding/internal/audio"
	"github.com/san-kum/chaoslanding/internal/audio/output"
	"github.com/san-kum/chaoslanding/internal/automation"
	"github.com/san-kum/chaoslanding/internal/config"
	"github.com/san-kum/chaoslanding/internal/control"
	"github.com/san-kum/chaoslanding/internal/page"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	fps        int
	audioOut   string
	theme      string
	missLimit  int
	logFile    string
	ascii      bool

	// bench
	runs    int
	workers int

	// sim
	saveRun   bool
	jsonOut   string
	plotWidth int

	perturbation float64

	// tune
	tuneParams []string
	tuneSteps  int
	objective  string

	// snapshot
	cols, rows int

	force bool
)

// Flags shared by several subcommands are read back with cmd.Flags() so
// each command keeps its own default.

func addPilotFlags(cmd *cobra.Command, pilot string) {
	f := cmd.Flags()
	f.String("pilot", pilot, "paddle pilot: "+strings.Join(control.PilotNames(), "|"))
	f.Float64("pilot-speed", 0, "chaser speed in px per frame (0 follows instantly)")
	f.Float64("kp", control.DefaultGains.Kp, "pid kp")
	f.Float64("ki", control.DefaultGains.Ki, "pid ki")
	f.Float64("kd", control.DefaultGains.Kd, "pid kd")
	f.Float64("max-speed", control.DefaultGains.MaxSpeed, "pid paddle speed cap in px per frame")
}

func pilotSpec(cmd *cobra.Command) control.PilotSpec {
	f := cmd.Flags()
	var spec control.PilotSpec
	spec.Name, _ = f.GetString("pilot")
	spec.Speed, _ = f.GetFloat64("pilot-speed")
	spec.Gains.Kp, _ = f.GetFloat64("kp")
	spec.Gains.Ki, _ = f.GetFloat64("ki")
	spec.Gains.Kd, _ = f.GetFloat64("kd")
	spec.Gains.MaxSpeed, _ = f.GetFloat64("max-speed")
	return spec
}

func frameCount(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("frames")
	return n
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "chaos",
		Short:        "a landing page that refuses to sit still",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".chaos", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.StringVar(&audioOut, "audio", audio.BackendSpeaker, "audio backend: "+strings.Join(audio.BackendNames(), "|"))
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.IntVar(&missLimit, "miss-limit", 0, "end the game after this many misses (0 never ends)")
	pf.StringVar(&logFile, "log", "", "write logs to this file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "open the landing page in the terminal",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&ascii, "ascii", false, "draw icons and emoji as plain ascii")
	rootCmd.Flags().BoolVar(&ascii, "ascii", false, "draw icons and emoji as plain ascii")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the landing page in a window",
		RunE:  runGUI,
	}

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "play the page headless and report how it went",
		RunE:  runSim,
	}
	simCmd.Flags().Int("frames", 3600, "frames to simulate")
	addPilotFlags(simCmd, "chaser")
	simCmd.Flags().BoolVar(&saveRun, "save", false, "store the run under the data directory")
	simCmd.Flags().StringVar(&jsonOut, "json", "", "export the run to a json file")
	simCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of headless sessions",
		RunE:  runBench,
	}
	benchCmd.Flags().Int("frames", 3600, "frames per run")
	benchCmd.Flags().IntVar(&runs, "runs", 16, "number of runs")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses every cpu)")
	addPilotFlags(benchCmd, "chaser")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search run settings for the best score",
		Long: "Sweeps each --param name=lo:hi over --steps values and runs every combination.\n" +
			"Known params: " + strings.Join(automation.ParamNames, ", "),
		RunE: runTune,
	}
	tuneCmd.Flags().Int("frames", 1800, "frames per run")
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", []string{"kp=0.1:0.8", "kd=0:0.4"}, "parameter range name=lo:hi (repeatable)")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 4, "values per parameter")
	tuneCmd.Flags().StringVar(&objective, "objective", "catch_rate", "catch_rate or a metric name to minimize")
	addPilotFlags(tuneCmd, "pid")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of headless sessions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the page headless and save a frame as svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Int("frames", 600, "frames to play before the snapshot")
	snapshotCmd.Flags().StringP("out", "o", "chaos.svg", "output file")
	snapshotCmd.Flags().IntVar(&cols, "cols", 120, "terminal columns to lay out for")
	snapshotCmd.Flags().IntVar(&rows, "rows", 36, "terminal rows to lay out for")
	addPilotFlags(snapshotCmd, "chaser")

	runsPlotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	runsPlotCmd.Flags().String("svg", "", "also write score, misses and items to an svg file")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "inspect stored runs",
	}
	runsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "list stored runs",
			RunE:  listRuns,
		},
		runsPlotCmd,
		&cobra.Command{
			Use:   "export [run_id]",
			Short: "print a stored run as json",
			Args:  cobra.ExactArgs(1),
			RunE:  exportRun,
		},
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate how chaotic the icon field is",
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().Int("frames", 2000, "frames to follow")
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial separation in px")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	tonesCmd := &cobra.Command{
		Use:   "tones",
		Short: "play every sound cue once",
		RunE:  playTones,
	}

	rootCmd.AddCommand(playCmd, guiCmd, simCmd, benchCmd, tuneCmd, scenarioCmd, snapshotCmd,
		runsCmd, analyzeCmd, lyapunovCmd, presetsCmd, configCmd, tonesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves settings in order: defaults or the named preset, then
// the config file, then any flag set on the command line.
func loadConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("audio") {
		cfg.Audio.Backend = audioOut
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("miss-limit") {
		cfg.Game.MissLimit = missLimit
	}
	if flags.Changed("log") {
		cfg.Log.File = logFile
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. In the terminal UI stderr belongs to
// the screen, so logs are dropped unless a file is configured.
func newLogger(cfg *config.Config, tui bool) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f.Close
	case tui:
		w = io.Discard
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("bad log level %q: %w", cfg.Log.Level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "chaos",
		Level:           level,
	})
	return logger, closer, nil
}

// newEngine builds an audio engine that can open real output devices.
func newEngine(cfg *config.Config, logger *log.Logger) *audio.Engine {
	return audio.New(cfg.AudioSettings(),
		audio.WithResolver(output.New),
		audio.WithLogger(logger.WithPrefix("audio")))
}

// newHost wires an audio engine to a fresh page host.
func newHost(cfg *config.Config, logger *log.Logger) (*page.Page, *audio.Engine) {
	engine := newEngine(cfg, logger)
	return page.New(engine, cfg.Page.SuperChaosThreshold, logger), engine
}

// presetInfo is the one-line description shown in listings.
func presetInfo(name string) string {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return ""
	}
	limit := "endless"
	if cfg.Game.MissLimit > 0 {
		limit = fmt.Sprintf("%d misses", cfg.Game.MissLimit)
	}
	return fmt.Sprintf("%d icons, spawn %dms, %s, chaos at %d, theme %s",
		cfg.Field.Bodies, cfg.Game.SpawnIntervalMs, limit, cfg.Page.SuperChaosThreshold, cfg.Theme)
}
