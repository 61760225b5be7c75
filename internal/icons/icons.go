// Package icons maps the closed set of icon identifiers used on the page to
// renderable glyphs.
//
// Identifiers are parsed from their kebab-case names ("gamepad-2",
// "alert-triangle"). Anything outside the enumeration resolves to
// [HelpCircle], the placeholder glyph.
package icons

import (
	"math/rand"
	"strings"
)

type ID int

const (
	HelpCircle ID = iota
	Star
	Zap
	Flame
	Sparkles
	Rocket
	Ghost
	Gamepad2
	Skull
	Trophy
	Bomb
	Cpu
	Binary
	AlertTriangle
	Wifi

	numIcons
)

type entry struct {
	name  string
	glyph string
	ascii string
}

var registry = [numIcons]entry{
	HelpCircle:    {"help-circle", "?", "?"},
	Star:          {"star", "★", "*"},
	Zap:           {"zap", "ϟ", "z"},
	Flame:         {"flame", "♨", "f"},
	Sparkles:      {"sparkles", "✦", "+"},
	Rocket:        {"rocket", "➶", "^"},
	Ghost:         {"ghost", "ᗣ", "g"},
	Gamepad2:      {"gamepad-2", "⌘", "#"},
	Skull:         {"skull", "☠", "x"},
	Trophy:        {"trophy", "♛", "T"},
	Bomb:          {"bomb", "●", "o"},
	Cpu:           {"cpu", "▣", "%"},
	Binary:        {"binary", "⊞", "b"},
	AlertTriangle: {"alert-triangle", "⚠", "!"},
	Wifi:          {"wifi", "≋", "~"},
}

var byName = func() map[string]ID {
	m := make(map[string]ID, numIcons)
	for id := ID(0); id < numIcons; id++ {
		m[registry[id].name] = id
	}
	return m
}()

// Floating is the pool the icon field draws from.
var Floating = []ID{Star, Zap, Flame, Sparkles, Rocket, Ghost, Gamepad2, Skull, Trophy, Bomb}

// Parse resolves a kebab-case icon name. Unknown names yield HelpCircle and false.
func Parse(name string) (ID, bool) {
	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return HelpCircle, false
	}
	return id, true
}

// Lookup is Parse without the found flag. Unknown names give HelpCircle.
func Lookup(name string) ID {
	id, _ := Parse(name)
	return id
}

// Random picks a floating icon.
func Random(rng *rand.Rand) ID {
	return Floating[rng.Intn(len(Floating))]
}

func (id ID) Valid() bool { return id >= 0 && id < numIcons }

func (id ID) resolve() entry {
	if !id.Valid() {
		return registry[HelpCircle]
	}
	return registry[id]
}

func (id ID) Name() string  { return id.resolve().name }
func (id ID) Glyph() string { return id.resolve().glyph }

// ASCII is a single-byte stand-in for renderers without unicode fonts.
func (id ID) ASCII() string { return id.resolve().ascii }

// Title is the PascalCase component-style name, e.g. "Gamepad2".
func (id ID) Title() string {
	parts := strings.Split(id.Name(), "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func (id ID) String() string { return id.Name() }
