package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// the three planets the simulator starts with by default.
func threePlanets(t testing.TB) []*Body {
	return []*Body{
		mustBody(t, 20, 20, mgl64.Vec2{300, 150}, mgl64.Vec2{0, 30}),
		mustBody(t, 20, 20, mgl64.Vec2{150, 450}, mgl64.Vec2{5, -15}),
		mustBody(t, 20, 20, mgl64.Vec2{450, 450}, mgl64.Vec2{-5, -15}),
	}
}

func TestWorldAdd(t *testing.T) {
	w := NewWorld(DefaultGravitationalConstant)
	if w.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", w.Len())
	}
	b := mustBody(t, 1, 1, mgl64.Vec2{}, mgl64.Vec2{})
	w.Add(b)
	if w.Len() != 1 || w.Bodies[0] != b {
		t.Errorf("Bodies = %v, want [%p]", w.Bodies, b)
	}
}

func TestWorldStepGravity(t *testing.T) {
	a := mustBody(t, 20, 20, mgl64.Vec2{100, 300}, mgl64.Vec2{})
	b := mustBody(t, 20, 20, mgl64.Vec2{400, 300}, mgl64.Vec2{})
	w := NewWorld(100, a, b)

	w.Step(1.0/60, 600, 600, 1)

	// one increment per pair per frame, whatever dt is
	dv := 100 * 20 / (300.0 * 300.0)
	if want := (mgl64.Vec2{dv, 0}); !nearVec(a.Vel, want, 1e-12) {
		t.Errorf("a.Vel = %v, want %v", a.Vel, want)
	}
	if want := (mgl64.Vec2{-dv, 0}); !nearVec(b.Vel, want, 1e-12) {
		t.Errorf("b.Vel = %v, want %v", b.Vel, want)
	}

	// a moved before the pull, b after
	if a.Pos != (mgl64.Vec2{100, 300}) {
		t.Errorf("a.Pos = %v, want [100 300]", a.Pos)
	}
	if want := (mgl64.Vec2{400 - dv/60, 300}); !nearVec(b.Pos, want, 1e-12) {
		t.Errorf("b.Pos = %v, want %v", b.Pos, want)
	}
}

func TestWorldStepOrder(t *testing.T) {
	const (
		dt   = 0.25
		size = 600
		now  = 2
	)

	stepped := threePlanets(t)
	// push two planets into each other so collisions take part too
	stepped[1].Pos = mgl64.Vec2{290, 170}
	NewWorld(100, stepped...).Step(dt, size, size, now)

	manual := threePlanets(t)
	manual[1].Pos = mgl64.Vec2{290, 170}
	w := NewWorld(100)
	manual[0].Update(dt, size, size)
	w.Interact(manual[0], manual[1], now)
	w.Interact(manual[0], manual[2], now)
	manual[1].Update(dt, size, size)
	w.Interact(manual[1], manual[2], now)
	manual[2].Update(dt, size, size)

	for i := range stepped {
		if stateOf(stepped[i]) != stateOf(manual[i]) {
			t.Errorf("body %d: Step() = %+v, want %+v", i, stateOf(stepped[i]), stateOf(manual[i]))
		}
	}
	if stepped[0].LastCollision() != now {
		t.Errorf("LastCollision() = %v, want %v", stepped[0].LastCollision(), now)
	}
}

func TestWorldStepConservesMomentum(t *testing.T) {
	w := NewWorld(DefaultGravitationalConstant, threePlanets(t)...)
	p := w.Stats().Momentum

	// bounds large enough that nothing wraps
	for frame := 1; frame <= 600; frame++ {
		w.Step(1.0/60, 1e6, 1e6, float64(frame)/60)
	}

	if got := w.Stats().Momentum; !nearVec(got, p, 1e-6) {
		t.Errorf("momentum = %v, want %v", got, p)
	}
	for i, b := range w.Bodies {
		if n := len(b.Traces()); n != TraceLength {
			t.Errorf("body %d: len(Traces()) = %d, want %d", i, n, TraceLength)
		}
	}
}

func TestWorldStats(t *testing.T) {
	w := NewWorld(1,
		mustBody(t, 1, 1, mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}),
		mustBody(t, 1, 3, mgl64.Vec2{4, 8}, mgl64.Vec2{0, -1}),
	)

	s := w.Stats()

	if s.Mass != 4 {
		t.Errorf("Mass = %v, want 4", s.Mass)
	}
	if want := (mgl64.Vec2{3, 6}); !nearVec(s.Center, want, eps) {
		t.Errorf("Center = %v, want %v", s.Center, want)
	}
	if want := (mgl64.Vec2{2, -3}); !nearVec(s.Momentum, want, eps) {
		t.Errorf("Momentum = %v, want %v", s.Momentum, want)
	}
	if !nearly(s.Kinetic, 3.5, eps) {
		t.Errorf("Kinetic = %v, want 3.5", s.Kinetic)
	}

	if empty := NewWorld(1).Stats(); empty != (Stats{}) {
		t.Errorf("empty Stats() = %+v, want zero", empty)
	}
}

func BenchmarkWorldStep(b *testing.B) {
	w := NewWorld(DefaultGravitationalConstant)
	for i := 0; i < 50; i++ {
		x, y := float64(i%10)*60, float64(i/10)*120
		w.Add(mustBody(b, 10, 20, mgl64.Vec2{x, y}, mgl64.Vec2{float64(i % 7), float64(i % 5)}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(1.0/60, 600, 600, float64(i)/60)
	}
}
