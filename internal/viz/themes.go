package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	// Paddle is drawn as a gradient between these.
	PaddleFrom lipgloss.Color
	PaddleTo   lipgloss.Color
	// Use the page's scroll gradient behind the canvas.
	ScrollBackground bool
}

var (
	ThemeChaos = Theme{
		Name:             "chaos",
		Primary:          lipgloss.Color("#d946ef"),
		Secondary:        lipgloss.Color("#06b6d4"),
		Accent:           lipgloss.Color("#eab308"),
		Background:       lipgloss.Color("#0f0f0f"),
		Text:             lipgloss.Color("#ffffff"),
		Muted:            lipgloss.Color("#666666"),
		Success:          lipgloss.Color("#22c55e"),
		Warning:          lipgloss.Color("#eab308"),
		Error:            lipgloss.Color("#ef4444"),
		PaddleFrom:       lipgloss.Color("#d946ef"),
		PaddleTo:         lipgloss.Color("#06b6d4"),
		ScrollBackground: true,
	}

	ThemeVHS = Theme{
		Name:       "vhs",
		Primary:    lipgloss.Color("#ff2a6d"),
		Secondary:  lipgloss.Color("#05d9e8"),
		Accent:     lipgloss.Color("#f9c80e"),
		Background: lipgloss.Color("#01012b"),
		Text:       lipgloss.Color("#d1f7ff"),
		Muted:      lipgloss.Color("#5a5a8a"),
		Success:    lipgloss.Color("#05d9e8"),
		Warning:    lipgloss.Color("#f9c80e"),
		Error:      lipgloss.Color("#ff2a6d"),
		PaddleFrom: lipgloss.Color("#ff2a6d"),
		PaddleTo:   lipgloss.Color("#f9c80e"),
	}

	ThemeVoid = Theme{
		Name:       "void",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
		PaddleFrom: lipgloss.Color("#ffffff"),
		PaddleTo:   lipgloss.Color("#888888"),
	}

	ThemeTerminal = Theme{
		Name:       "terminal",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		PaddleFrom: lipgloss.Color("#00ff00"),
		PaddleTo:   lipgloss.Color("#88ff88"),
	}

	// Default theme
	CurrentTheme = ThemeChaos

	Themes = []Theme{
		ThemeChaos,
		ThemeVHS,
		ThemeVoid,
		ThemeTerminal,
	}
)

// GetTheme returns a theme by name, falling back to chaos.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeChaos
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeChaos
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
