// Package physics implements the planet engine: per-body integration with
// boundary wrap, and pairwise gravity and elastic collision.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultCollisionInterval is the minimum time in seconds between two
	// resolved collisions of the same body.
	DefaultCollisionInterval = 0.2

	// TraceLength is the number of past positions kept per body. It is
	// measured in updates (frames), not time.
	TraceLength = 30

	// WrapDamping scales a velocity component each time the body wraps
	// around the bounds on that axis.
	WrapDamping = 0.88

	// wrapMargin is the fraction of the radius a body may leave the bounds
	// by before it wraps.
	wrapMargin = 0.5
)

// ErrInvalidParameter is returned when a body is constructed with a
// non-positive or non-finite radius or mass.
var ErrInvalidParameter = errors.New("invalid parameter")

// Body is a disc with a position in pixels and a velocity in pixels/second.
type Body struct {
	Pos mgl64.Vec2 // px
	Vel mgl64.Vec2 // px/s

	radius float64 // px
	mass   float64 // kg

	lastCollision     float64 // s since simulation start
	collisionInterval float64 // s

	traces []mgl64.Vec2 // oldest first
}

// NewBody creates a body. radius and mass must be positive and finite.
func NewBody(radius, mass float64, pos, vel mgl64.Vec2) (*Body, error) {
	if !positive(radius) {
		return nil, fmt.Errorf("radius %v: %w", radius, ErrInvalidParameter)
	}
	if !positive(mass) {
		return nil, fmt.Errorf("mass %v: %w", mass, ErrInvalidParameter)
	}
	return &Body{
		Pos:               pos,
		Vel:               vel,
		radius:            radius,
		mass:              mass,
		collisionInterval: DefaultCollisionInterval,
		traces:            make([]mgl64.Vec2, 0, TraceLength+1),
	}, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Radius in pixels.
func (b *Body) Radius() float64 { return b.radius }

// Mass in kilograms.
func (b *Body) Mass() float64 { return b.mass }

// LastCollision is the simulation time of the last collision resolved with
// this body as the first participant.
func (b *Body) LastCollision() float64 { return b.lastCollision }

// Traces returns a copy of the recorded past positions, newest last.
func (b *Body) Traces() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(b.traces))
	copy(out, b.traces)
	return out
}

// Update advances the body by dt seconds inside a width x height area.
// The trace records the position from before the move.
func (b *Body) Update(dt, width, height float64) {
	b.updateTraces()
	b.updatePosition(dt)
	b.updateOutOfBounds(width, height)
}

func (b *Body) updateTraces() {
	b.traces = append(b.traces, b.Pos)
	if n := len(b.traces); n > TraceLength {
		// shift in place so the backing array never grows
		copy(b.traces, b.traces[n-TraceLength:])
		b.traces = b.traces[:TraceLength]
	}
}

// dp = v*dt
func (b *Body) updatePosition(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

// wraps each axis independently to the opposite edge, damping that axis'
// velocity.
func (b *Body) updateOutOfBounds(width, height float64) {
	margin := b.radius * wrapMargin
	bounds := mgl64.Vec2{width, height}

	for axis := 0; axis < 2; axis++ {
		if b.Pos[axis] < -margin {
			b.Pos[axis] = bounds[axis] + margin
			b.Vel[axis] *= WrapDamping
		}
		if b.Pos[axis] > bounds[axis]+margin {
			b.Pos[axis] = -margin
			b.Vel[axis] *= WrapDamping
		}
	}
}

func (b *Body) String() string {
	return fmt.Sprintf("r: %.2f m: %.4f\np: [%.2f, %.2f]\nv: [%.2f, %.2f]\n",
		b.radius, b.mass, b.Pos.X(), b.Pos.Y(), b.Vel.X(), b.Vel.Y())
}
