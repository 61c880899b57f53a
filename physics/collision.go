package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ResolveCollision bounces a and b off each other if they overlap and a has
// not collided within its collision interval. Only a's clock gates the
// collision and only a's clock is reset. It reports whether anything changed.
//
// The bodies are pushed apart evenly along the line between their centers,
// then b is placed back at its original offset from a, so both end up
// shifted by a's half of the correction and may still overlap. Velocities
// are rotated so the center line is the x axis, exchanged with a 1D
// elastic collision along x, and rotated back.
func ResolveCollision(a, b *Body, now float64) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	minDist := a.radius + b.radius

	if !(dist < minDist && now-a.lastCollision > a.collisionInterval) {
		return false
	}
	a.lastCollision = now

	correction := direction(delta, dist).Mul((minDist - dist) / 2)
	b.Pos = b.Pos.Add(correction)
	a.Pos = a.Pos.Sub(correction)

	// a sits at the origin of the rotated frame, so only b's offset needs
	// rotating there and back. The offset is the center line from before
	// the correction.
	sin, cos := math.Sincos(heading(delta))
	offset := rotate(delta, sin, cos)

	va := rotate(a.Vel, sin, cos)
	vb := rotate(b.Vel, sin, cos)
	va[0], vb[0] = elastic1D(a.mass, va[0], b.mass, vb[0])

	b.Pos = a.Pos.Add(unrotate(offset, sin, cos))
	a.Vel = unrotate(va, sin, cos)
	b.Vel = unrotate(vb, sin, cos)
	return true
}

// calculates the final velocities of a and b in a 1D perfectly elastic
// collision.
func elastic1D(ma, va, mb, vb float64) (fa, fb float64) {
	fa = ((ma-mb)*va + 2*mb*vb) / (ma + mb)
	fb = ((mb-ma)*vb + 2*ma*va) / (ma + mb)
	return
}

// unit vector along v, or +x if v has no length.
func direction(v mgl64.Vec2, length float64) mgl64.Vec2 {
	if length == 0 {
		return mgl64.Vec2{1, 0}
	}
	return v.Mul(1 / length)
}

// angle of v from the +x axis.
func heading(v mgl64.Vec2) float64 {
	return math.Atan2(v.Y(), v.X())
}

// rotates v by -theta.
func rotate(v mgl64.Vec2, sin, cos float64) mgl64.Vec2 {
	return mgl64.Vec2{
		cos*v.X() + sin*v.Y(),
		cos*v.Y() - sin*v.X(),
	}
}

// rotates v by +theta.
func unrotate(v mgl64.Vec2, sin, cos float64) mgl64.Vec2 {
	return mgl64.Vec2{
		cos*v.X() - sin*v.Y(),
		cos*v.Y() + sin*v.X(),
	}
}
