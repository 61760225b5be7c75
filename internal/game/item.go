package game

// Symbol is one of the falling glyphs.
type Symbol int

const (
	Pizza Symbol = iota
	Unicorn
	SpaceInvader
	Rainbow
	Lightning
	Gem
	Gamepad
	Alien
	Mushroom
	Dice

	numSymbols
)

var symbolGlyphs = [numSymbols]string{"🍕", "🦄", "👾", "🌈", "⚡", "💎", "🎮", "👽", "🍄", "🎲"}

// ASCII stand-ins for renderers without emoji fonts.
var symbolASCII = [numSymbols]string{"P", "U", "I", "R", "Z", "D", "G", "A", "M", "6"}

func (s Symbol) String() string {
	if s < 0 || s >= numSymbols {
		return symbolGlyphs[Pizza]
	}
	return symbolGlyphs[s]
}

func (s Symbol) ASCII() string {
	if s < 0 || s >= numSymbols {
		return symbolASCII[Pizza]
	}
	return symbolASCII[s]
}

// Item is a falling emoji. X is its horizontal anchor, Y its top edge.
type Item struct {
	X, Y   float64
	Speed  float64
	Size   float64
	Symbol Symbol
}

func (it *Item) fall() {
	it.Y += it.Speed
}
