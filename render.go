package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

/*

image output section

*/

// copy of one planet's drawable state, safe to hand to another goroutine.
type planetSnapshot struct {
	ID     int
	Radius float64
	Mass   float64
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Color  hsba
	Traces []mgl64.Vec2 // oldest first
}

type frameJob struct {
	Frame   int
	Time    float64 // s
	Planets []planetSnapshot
}

var background = hsba{255, 50, 12, 100}

const (
	traceOpacity  = 0.25 // of the newest trace
	strokeWidth   = 2    // px
	strokeDimming = 0.75 // saturation and brightness of the outline
)

// writes each frame to dir as a png, width x height world pixels scaled by
// scale.
func frameToImages(dir string, width, height, scale float64, wg *sync.WaitGroup, ch chan *frameJob) {
	for job := range ch {
		film := renderFrame(job, width, height, scale)

		file, err := os.Create(filepath.Join(dir, fmt.Sprintf("%010d.png", job.Frame)))
		if err != nil {
			panic(err)
		}
		err = png.Encode(file, film)
		file.Close()
		if err != nil {
			panic(err)
		}
	}

	wg.Done()
}

// draws every planet's traces and then the planet itself over a plain
// background.
func renderFrame(job *frameJob, width, height, scale float64) *image.RGBA {
	film := image.NewRGBA(image.Rect(0, 0,
		int(math.Ceil(width*scale)),
		int(math.Ceil(height*scale))))
	draw.Draw(film, film.Bounds(), image.NewUniform(background.color()), image.Point{}, draw.Src)

	// world px -> screen px
	view := mgl64.Scale2D(scale, scale)

	for _, p := range job.Planets {
		drawTraces(film, view, p)
		drawPlanet(film, view, p)
	}
	return film
}

// older traces are fainter. drawn newest first.
func drawTraces(img draw.Image, view mgl64.Mat3, p planetSnapshot) {
	n := len(p.Traces)
	r := screenLength(view, p.Radius)
	for i := n - 1; i >= 0; i-- {
		c := p.Color
		c[3] = 100 * (traceOpacity * float64(i) / float64(n))
		at := screenPoint(view, p.Traces[i])
		plotcirclefilled(img, c.color(), at.X, at.Y, r)
	}
}

// a filled disc with a darker outline.
func drawPlanet(img draw.Image, view mgl64.Mat3, p planetSnapshot) {
	stroke := p.Color
	stroke[1] *= strokeDimming
	stroke[2] *= strokeDimming

	at := screenPoint(view, p.Pos)
	r := screenLength(view, p.Radius)
	plotcirclefilled(img, stroke.color(), at.X, at.Y, r+strokeWidth/2)
	plotcirclefilled(img, p.Color.color(), at.X, at.Y, r-strokeWidth/2)
}

func screenPoint(view mgl64.Mat3, p mgl64.Vec2) image.Point {
	s := view.Mul3x1(p.Vec3(1))
	return image.Pt(int(math.Round(s.X())), int(math.Round(s.Y())))
}

func screenLength(view mgl64.Mat3, l float64) int {
	return int(math.Round(view.Mul3x1(mgl64.Vec3{l, 0, 0}).X()))
}

// converts hsba to a non-premultiplied rgba colour.
func (c hsba) color() color.NRGBA {
	col := colorful.Hsv(math.Mod(c[0], 360), c[1]/100, c[2]/100).Clamped()
	r, g, b := col.RGB255()
	return color.NRGBA{r, g, b, uint8(math.Round(clamp(c[3], 0, 100) / 100 * 255))}
}

func clamp(x, min, max float64) float64 {
	return math.Max(min, math.Min(max, x))
}

// plotcirclefilled blends a filled circle at (x0,y0) of radius r onto img.
func plotcirclefilled(img draw.Image, c color.Color, x0, y0, r int) {
	if r <= 0 {
		return
	}
	mask := &circle{image.Pt(x0, y0), r}
	draw.DrawMask(img, mask.Bounds(), image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// circle is an alpha mask that is opaque inside a circle.
type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r, c.p.Y+c.r)
}

// test against pixel centers.
func (c *circle) At(x, y int) color.Color {
	xx, yy, rr := float64(x-c.p.X)+0.5, float64(y-c.p.Y)+0.5, float64(c.r)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}
