package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// World owns the bodies of one simulation run. Bodies are held by pointer
// and mutated in place.
type World struct {
	Bodies []*Body
	G      float64 // gravitational constant
}

// NewWorld creates a world with gravitational constant g.
func NewWorld(g float64, bodies ...*Body) *World {
	return &World{
		Bodies: bodies,
		G:      g,
	}
}

// Add appends b. Index order decides interaction order.
func (w *World) Add(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Len is the number of bodies.
func (w *World) Len() int {
	return len(w.Bodies)
}

// Interact resolves a collision between a and b, then applies their mutual
// gravity.
func (w *World) Interact(a, b *Body, now float64) {
	ResolveCollision(a, b, now)
	ApplyGravity(a, b, w.G)
}

// Step advances the world by one frame of dt seconds at simulation time now
// inside a width x height area.
//
// Bodies are visited in index order. Each body is updated and then
// interacts with every later body, so later pairs see the state left by
// earlier ones. Each unordered pair is visited exactly once.
func (w *World) Step(dt, width, height, now float64) {
	for i := 0; i < len(w.Bodies); i++ {
		w.Bodies[i].Update(dt, width, height)

		for j := i + 1; j < len(w.Bodies); j++ {
			w.Interact(w.Bodies[i], w.Bodies[j], now)
		}
	}
}

// Stats summarizes the state of a world.
type Stats struct {
	Mass     float64    // total
	Center   mgl64.Vec2 // mass weighted
	Momentum mgl64.Vec2
	Kinetic  float64 // ½mv²
}

// Stats calculates totals over all bodies.
func (w *World) Stats() (s Stats) {
	for _, b := range w.Bodies {
		s.Mass += b.mass
		s.Center = s.Center.Add(b.Pos.Mul(b.mass))
		s.Momentum = s.Momentum.Add(b.Vel.Mul(b.mass))
		s.Kinetic += 0.5 * b.mass * b.Vel.Dot(b.Vel)
	}
	if s.Mass > 0 {
		s.Center = s.Center.Mul(1 / s.Mass)
	}
	return
}

func (s Stats) String() string {
	return fmt.Sprintf("p: [%.2f, %.2f] ke: %.1f",
		s.Momentum.X(), s.Momentum.Y(), s.Kinetic)
}
