// Package physics provides the floating icon field: a fixed pool of
// bodies that drift across the viewport, bounce off its edges and push each
// other apart.
//
//   - [Body]: a single glowing square with position, velocity and spin
//   - [Field]: the pool plus the viewport bounds it lives in
//
// Collisions between bodies are a soft repulsion, not an elastic collision:
// overlapping pairs receive an equal and opposite impulse of fixed magnitude
// along the line joining them. The scan is pairwise on every frame, which is
// fine for the default pool of 15.
//
// # Example
//
//	f := physics.NewField(physics.DefaultBodies, 1280, 720, rand.New(rand.NewSource(1)))
//	for frame := 0; frame < 60; frame++ {
//	    f.Step()
//	}
package physics
