package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoslanding/internal/config"
)

func TestParseRange(t *testing.T) {
	name, values, err := parseRange("kp=0:1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if name != "kp" || len(values) != 3 || values[1] != 0.5 {
		t.Errorf("unexpected %s %v", name, values)
	}

	if _, values, _ := parseRange("bodies=20", 5); len(values) != 1 || values[0] != 20 {
		t.Errorf("expected a single value, got %v", values)
	}
	for _, bad := range []string{"kp", "=1", "kp=x", "kp=0:y"} {
		if _, _, err := parseRange(bad, 3); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDownsample(t *testing.T) {
	got := downsample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Errorf("unexpected %v", got)
	}
	if len(downsample([]float64{1, 2}, 10)) != 2 {
		t.Error("expected short data to pass through")
	}
}

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "")
	f.Int64Var(&seed, "seed", 0, "")
	f.IntVar(&fps, "fps", config.DefaultFPS, "")
	f.StringVar(&audioOut, "audio", "speaker", "")
	f.StringVar(&theme, "theme", config.DefaultTheme, "")
	f.IntVar(&missLimit, "miss-limit", 0, "")
	f.StringVar(&logFile, "log", "", "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaos.yaml")
	if err := os.WriteFile(path, []byte("fps: 30\ntheme: void\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := testCommand(t, "--config", path, "--theme", "terminal", "--seed", "9")
	cfg, err := loadConfig(cmd, "arcade")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.MissLimit != 5 {
		t.Errorf("expected preset miss limit, got %d", cfg.Game.MissLimit)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps from file, got %d", cfg.FPS)
	}
	if cfg.Theme != "terminal" || cfg.Seed != 9 {
		t.Errorf("expected flags to win, got theme %s seed %d", cfg.Theme, cfg.Seed)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(testCommand(t), "warp"); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := loadConfig(testCommand(t, "--audio", "cassette"), ""); err == nil {
		t.Error("expected invalid backend error")
	}

	cfg, err := loadConfig(testCommand(t), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed == 0 {
		t.Error("expected a clock seed when none is given")
	}
}
