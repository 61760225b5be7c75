// Package audio synthesizes the page's retro cues: short square and sawtooth
// blips whose amplitude decays exponentially to near silence, plus a looping
// eight-note background sequence.
//
// An [Engine] is an owned resource. It is created up front, opened lazily by
// [Engine.Init] on the first user gesture and released by [Engine.Close].
// Every Play call made before a successful Init is a silent no-op, so callers
// never need to check whether sound is available.
package audio
