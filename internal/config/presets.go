package config

import "sort"

// Presets are named overlays on DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"calm": func(c *Config) {
		c.Field.Bodies = 6
		c.Field.Restitution = 0.7
		c.Game.SpawnIntervalMs = 1600
		c.Game.BaseSpeed = 1.2
		c.Game.SpeedJitter = 1.5
		c.Game.SpeedPerPoint = 0.05
		c.Game.PaddleWidth = 140
		c.Audio.Volume = 0.5
	},
	"frenzy": func(c *Config) {
		c.Field.Bodies = 40
		c.Field.Force = 3
		c.Game.SpawnIntervalMs = 450
		c.Game.BaseSpeed = 3
		c.Game.SpeedJitter = 4
		c.Game.SpeedPerPoint = 0.2
		c.Game.PaddleWidth = 80
		c.Page.SuperChaosThreshold = 25
	},
	"arcade": func(c *Config) {
		c.Game.MissLimit = 5
		c.Theme = "vhs"
	},
	"endless": func(c *Config) {
		c.Game.MissLimit = 0
		c.Game.SpeedPerPoint = 0
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
