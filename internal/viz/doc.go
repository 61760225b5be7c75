// Package viz renders the landing page in a terminal.
//
// The page runs as a Bubble Tea program:
//
//   - [Model]: the icon field and catch game on a braille [Canvas], with a
//     HUD panel for score, audio levels and the scrolled content block
//   - [NewPicker]: a preset menu that launches a [Model]
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Mouse / ←→  - Move the paddle
//	Wheel / ↑↓  - Scroll the page
//	A           - Start audio
//	R           - Restart the game
//	T           - Cycle color themes
//	G           - Toggle GIF recording
//	?           - Show help overlay
package viz
