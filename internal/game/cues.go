package game

// Cues receives the audible side effects of the game.
type Cues interface {
	Catch()
	Miss()
}

type silentCues struct{}

func (silentCues) Catch() {}
func (silentCues) Miss()  {}

// CueFuncs adapts plain functions to Cues. Nil fields are skipped.
type CueFuncs struct {
	OnCatch func()
	OnMiss  func()
}

func (c CueFuncs) Catch() {
	if c.OnCatch != nil {
		c.OnCatch()
	}
}

func (c CueFuncs) Miss() {
	if c.OnMiss != nil {
		c.OnMiss()
	}
}
