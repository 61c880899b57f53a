package physics

import "math"

// DefaultGravitationalConstant is tuned for pixel distances and small masses;
// it has nothing to do with the real G.
const DefaultGravitationalConstant = 1e2

// ApplyGravity pulls a toward b and b toward a.
//
// The increment is added straight to the velocities without scaling by the
// frame time, so the pull per simulated second depends on how often this is
// called. It reports false and does nothing for coincident bodies.
func ApplyGravity(a, b *Body, g float64) bool {
	delta := b.Pos.Sub(a.Pos)
	r := delta.Len()
	if r == 0 {
		return false
	}

	f := g * (a.mass * b.mass) / (r * r) // magnitude of force
	sin, cos := math.Sincos(heading(delta))

	// a = F/m
	accelA := f / a.mass
	accelB := f / b.mass

	a.Vel[0] += cos * accelA
	a.Vel[1] += sin * accelA
	b.Vel[0] -= cos * accelB
	b.Vel[1] -= sin * accelB
	return true
}
