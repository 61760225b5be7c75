// Package game implements the emoji catch mini-game: items fall from the top
// of the play field, a paddle near the bottom edge catches them, and every
// catch bumps the score and throws a burst of particles.
//
// A [Session] is driven by frame timestamps through [Session.Step] and by
// pointer input through [Session.MovePointer]. It does not render anything and
// does not own audio; catch and miss cues go through the [Cues] interface and
// score changes through listeners registered with [Session.OnScore].
//
// # Lifecycle
//
//	Idle --Start--> Running --(MissLimit reached)--> GameOver --Reset--> Idle
//
// With MissLimit left at zero a session never leaves Running.
package game
