// Package control steers the catch game's paddle with a PID loop and builds
// named pilots for headless runs.
//
// The loop runs once per frame. The error is the horizontal distance from
// the paddle center to the item the paddle is chasing, and the output is the
// paddle velocity in pixels per frame:
//
//	pilot := control.NewPIDPilot(control.DefaultGains)
//	s := sim.New(pilot)
package control
