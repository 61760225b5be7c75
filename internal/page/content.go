package page

import (
	"strconv"

	"github.com/san-kum/chaoslanding/internal/icons"
)

// Block is one of the random data blocks on the page.
type Block struct {
	Title   string
	Content string
	Color   string
	Icon    icons.ID
}

type Command struct {
	Keys   string
	Effect string
}

const (
	Title    = "CHAOS"
	Subtitle = "LANDING.exe"
	Warning  = "Warning: This website contains uncontrolled levels of randomness, flying icons, and temporal distortions."
	Tagline  = "The only rule is that there are no rules."
	Footer   = "END OF LINE"
	Credits  = "CHAOS INC. | NO RIGHTS RESERVED"
	GameHint = "CATCH THE EMOJI!"
	Banner   = "⚠️ SUPER CHAOS MODE ⚠️"
)

var blockSpecs = []struct {
	title, content, color, icon string
}{
	{"VOID ZONE", "☠️ ENTER AT OWN RISK ☠️", "#ef4444", "skull"},
	{"GLITCH CORE", "REALITY IS BROKEN HERE", "#06b6d4", "cpu"},
	{"RANDOM DATA", "01001000 01001001", "#22c55e", "binary"},
	{"ERROR 404", "SANITY NOT FOUND", "#eab308", "alert-triangle"},
	{"NEON DREAMS", "FUTURE IS LOADING...", "#d946ef", "sparkles"},
	{"CYBER ZONE", "UPLOAD COMPLETE ✓", "#3b82f6", "wifi"},
}

// Blocks returns the data blocks with their icons resolved.
func Blocks() []Block {
	out := make([]Block, len(blockSpecs))
	for i, b := range blockSpecs {
		out[i] = Block{
			Title:   b.title,
			Content: b.content,
			Color:   b.color,
			Icon:    icons.Lookup(b.icon),
		}
	}
	return out
}

func Commands(threshold int) []Command {
	return []Command{
		{"Ctrl+Shift+U", "Unknown consequences"},
		{"Catch " + strconv.Itoa(threshold) + " emojis", "Super Chaos Mode"},
		{"Keep scrolling", "Reality distortion"},
	}
}
