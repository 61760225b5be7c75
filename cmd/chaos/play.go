package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslanding/internal/audio"
	"github.com/san-kum/chaoslanding/internal/config"
	"github.com/san-kum/chaoslanding/internal/gui"
	"github.com/san-kum/chaoslanding/internal/page"
	"github.com/san-kum/chaoslanding/internal/viz"
)

func runPlay(cmd *cobra.Command, args []string) error {
	// resolved once for the logger; the picker resolves again per preset
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	var host *page.Page
	build := func(name string) (viz.Model, error) {
		cfg, err := loadConfig(cmd, name)
		if err != nil {
			return viz.Model{}, err
		}
		viz.SetTheme(cfg.Theme)

		var engine *audio.Engine
		host, engine = newHost(cfg, logger)
		logger.Info("starting page", "preset", name, "seed", cfg.Seed, "fps", cfg.FPS)
		return viz.NewModel(viz.Options{
			FPS:         cfg.FPS,
			Seed:        cfg.Seed,
			Bodies:      cfg.Field.Bodies,
			Restitution: cfg.Field.Restitution,
			Force:       cfg.Field.Force,
			Game:        cfg.GameRules(),
			Page:        host,
			Cues:        engine,
			Meter:       engine,
			Logger:      logger,
			ASCII:       ascii,
		}), nil
	}

	var model tea.Model
	if preset == "" && configFile == "" {
		entries := make([]viz.PresetEntry, 0, len(config.Presets))
		for _, name := range config.ListPresets() {
			entries = append(entries, viz.PresetEntry{Name: name, Info: presetInfo(name)})
		}
		model = viz.NewPicker(entries, build)
	} else {
		live, err := build(preset)
		if err != nil {
			return err
		}
		model = live
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	if host != nil {
		if cerr := host.Close(); cerr != nil {
			logger.Warn("audio shutdown", "err", cerr)
		}
	}
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	host, engine := newHost(cfg, logger)
	defer host.Close()

	logger.Info("opening window", "preset", preset, "seed", cfg.Seed, "fps", cfg.FPS)
	gui.Run(gui.Options{
		FPS:         cfg.FPS,
		Seed:        cfg.Seed,
		Bodies:      cfg.Field.Bodies,
		Restitution: cfg.Field.Restitution,
		Force:       cfg.Field.Force,
		Game:        cfg.GameRules(),
		Page:        host,
		Cues:        engine,
		Meter:       engine,
		Logger:      logger,
	})
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, presetInfo(name))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "chaos.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func playTones(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := newEngine(cfg, logger)
	if err := engine.Init(); err != nil {
		return fmt.Errorf("audio unavailable: %w", err)
	}
	defer engine.Close()

	cues := []struct {
		name string
		play func()
		wait time.Duration
	}{
		{"catch", engine.PlayCatch, 400 * time.Millisecond},
		{"miss", engine.PlayMiss, 500 * time.Millisecond},
		{"super chaos", engine.PlaySuperChaos, time.Second},
	}
	for _, c := range cues {
		fmt.Println("▸", c.name)
		c.play()
		time.Sleep(c.wait)
	}

	fmt.Println("▸ background loop")
	stop := engine.PlayBackground()
	time.Sleep(2 * time.Second)
	stop()
	return nil
}
