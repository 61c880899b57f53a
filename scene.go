package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/quillaja/planets/physics"
)

/*

initial conditions

*/

// hsba is a colour as hue [0,360], saturation, brightness and alpha [0,100].
type hsba [4]float64

type planetConfig struct {
	Radius float64    `json:"radius"` // px
	Mass   float64    `json:"mass"`   // kg
	Color  hsba       `json:"color"`
	Pos    [2]float64 `json:"pos"` // px
	Vel    [2]float64 `json:"vel"` // px/s
}

type scene struct {
	Name    string         `json:"name"`
	Width   float64        `json:"width"`   // px
	Height  float64        `json:"height"`  // px
	Gravity float64        `json:"gravity"` // gravitational constant
	Planets []planetConfig `json:"planets"`
}

// three planets on a 600x600 canvas, equal size and mass.
func defaultScene() *scene {
	return &scene{
		Name:    "three planets",
		Width:   600,
		Height:  600,
		Gravity: physics.DefaultGravitationalConstant,
		Planets: []planetConfig{
			{Radius: 20, Mass: 20, Color: hsba{330, 50, 88, 100}, Pos: [2]float64{300, 150}, Vel: [2]float64{0, 30}},
			{Radius: 20, Mass: 20, Color: hsba{90, 50, 88, 100}, Pos: [2]float64{150, 450}, Vel: [2]float64{5, -15}},
			{Radius: 20, Mass: 20, Color: hsba{210, 50, 88, 100}, Pos: [2]float64{450, 450}, Vel: [2]float64{-5, -15}},
		},
	}
}

// reads a scene from a json file. fields left out take the default
// scene's canvas and gravity; planets are never merged.
func loadScene(filename string) (*scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loading scene %q: %w", filename, err)
	}

	def := defaultScene()
	s := &scene{
		Name:    filename,
		Width:   def.Width,
		Height:  def.Height,
		Gravity: def.Gravity,
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("loading scene %q: %w", filename, err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("loading scene %q: canvas %vx%v: %w",
			filename, s.Width, s.Height, physics.ErrInvalidParameter)
	}

	for i := range s.Planets {
		if s.Planets[i].Color == (hsba{}) {
			s.Planets[i].Color = hsba{float64(i) * 120, 50, 88, 100}
		}
	}
	return s, nil
}

// adds n planets placed uniformly in the disk inscribed in the canvas, with
// small random velocities and hues.
func (s *scene) addRandom(n int, rng *rand.Rand) {
	const (
		meanMass   = 20
		meanRadius = 12
		maxSpeed   = 20
	)
	cx, cy := s.Width/2, s.Height/2
	disk := math.Min(cx, cy) * 0.9

	for i := 0; i < n; i++ {
		x, y := uniformSampleDisk(rng, disk)
		m := math.Abs(rng.NormFloat64()*5 + meanMass)
		vx, vy := uniformSampleDisk(rng, maxSpeed)

		s.Planets = append(s.Planets, planetConfig{
			Radius: meanRadius * math.Sqrt(m/meanMass),
			Mass:   m,
			Color:  hsba{rng.Float64() * 360, 50, 88, 100},
			Pos:    [2]float64{cx + x, cy + y},
			Vel:    [2]float64{vx, vy},
		})
	}
}

// uniformly (no bias towards center) sample a disk with the given radius.
func uniformSampleDisk(rng *rand.Rand, radius float64) (x, y float64) {
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	sin, cos := math.Sincos(theta)
	return r * cos, r * sin
}

// builds the physics world. planet i of the scene is body i of the world.
func (s *scene) world() (*physics.World, error) {
	w := physics.NewWorld(s.Gravity)
	for i, p := range s.Planets {
		b, err := physics.NewBody(p.Radius, p.Mass,
			mgl64.Vec2{p.Pos[0], p.Pos[1]},
			mgl64.Vec2{p.Vel[0], p.Vel[1]})
		if err != nil {
			return nil, fmt.Errorf("planet %d: %w", i, err)
		}
		w.Add(b)
	}
	return w, nil
}
