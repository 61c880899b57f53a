// simulates planets pulling on and bouncing off each other on a wrapping 2D
// canvas, writing each frame as a png and/or to sqlite.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/quillaja/planets/physics"
)

func main() {
	sceneFilename := flag.String("scene", "", "json scene to load instead of the built-in one")
	extra := flag.Int("n", 0, "number of random planets to add to the scene")
	seed := flag.Int64("seed", 1, "seed for random planets")
	fps := flag.Float64("fps", 60, "frames per second")
	seconds := flag.Float64("seconds", 20, "seconds to simulate")
	realtime := flag.Bool("realtime", false, "pace frames by the wall clock and step by measured time")
	gravity := flag.Float64("g", 0, "gravitational constant (0 keeps the scene's)")
	imgDir := flag.String("img", "img", "directory for png frames")
	scale := flag.Float64("scale", 1, "png pixels per world pixel")
	norender := flag.Bool("norender", false, "do not render frames")
	dbFilename := flag.String("db", "", "sqlite file to record frames to")
	workers := flag.Int("workers", 2, "png writing goroutines")
	flag.Parse()

	if *fps <= 0 || *seconds <= 0 || *scale <= 0 || *workers < 1 {
		log.Fatal("fps, seconds, scale and workers must be positive")
	}

	sc := defaultScene()
	if *sceneFilename != "" {
		var err error
		if sc, err = loadScene(*sceneFilename); err != nil {
			log.Fatal(err)
		}
	}
	sc.addRandom(*extra, rand.New(rand.NewSource(*seed)))
	if *gravity != 0 {
		sc.Gravity = *gravity
	}
	world, err := sc.world()
	if err != nil {
		log.Fatalf("%s: %v", sc.Name, err)
	}

	// setup output workers
	wg := sync.WaitGroup{}
	var sinks []chan *frameJob
	if !*norender {
		if err := os.MkdirAll(*imgDir, 0755); err != nil {
			log.Fatal(err)
		}
		ch := make(chan *frameJob, 32)
		sinks = append(sinks, ch)
		wg.Add(*workers)
		for i := 0; i < *workers; i++ {
			go frameToImages(*imgDir, sc.Width, sc.Height, *scale, &wg, ch)
		}
	}
	var db *sql.DB
	if *dbFilename != "" {
		if db, err = opendb(*dbFilename); err != nil {
			log.Fatal(err)
		}
		ch := make(chan *frameJob, 32)
		sinks = append(sinks, ch)
		wg.Add(1)
		go frameToSqlite(db, &wg, ch)
	}

	frames := int(*seconds * *fps)
	clk := newClock(*fps, *realtime)

	// print parameters
	fmt.Printf("scene: %s\nrender: %t\ndb: %q\nrealtime: %t\nplanets: %d\ngravity: %g\nfps: %g\nframes: %d\n",
		sc.Name,
		!*norender,
		*dbFilename,
		*realtime,
		world.Len(),
		world.G,
		*fps,
		frames)

	start := time.Now()
	for frame := 1; frame <= frames; frame++ {
		dt, now := clk.tick(frame)
		world.Step(dt, sc.Width, sc.Height, now)

		if len(sinks) > 0 {
			job := snapshot(frame, now, world, sc)
			for _, ch := range sinks {
				ch <- job
			}
		}

		// progress
		avgTimePerFrame := time.Since(start) / time.Duration(frame)
		estTimeLeft := avgTimePerFrame * time.Duration(frames-frame)
		fmt.Printf("%.1f%%, t=%.2fs, %s, %s/frame, %s remaining, %s elapsed          \r",
			100*float64(frame)/float64(frames),
			now,
			world.Stats(),
			avgTimePerFrame.Truncate(time.Microsecond),
			estTimeLeft.Truncate(time.Second),
			time.Since(start).Truncate(time.Second),
		)
	}
	clk.stop()
	for _, ch := range sinks {
		close(ch)
	}

	wg.Wait()
	if db != nil {
		db.Close()
	}
	fmt.Printf("\nDone. Took %s\n", time.Since(start).Truncate(time.Millisecond))
}

// copies what the outputs need out of the world.
func snapshot(frame int, now float64, world *physics.World, sc *scene) *frameJob {
	job := &frameJob{
		Frame:   frame,
		Time:    now,
		Planets: make([]planetSnapshot, world.Len()),
	}
	for i, b := range world.Bodies {
		job.Planets[i] = planetSnapshot{
			ID:     i,
			Radius: b.Radius(),
			Mass:   b.Mass(),
			Pos:    b.Pos,
			Vel:    b.Vel,
			Color:  sc.Planets[i].Color,
			Traces: b.Traces(),
		}
	}
	return job
}

/*

time source

*/

// clock hands the world its frame time and simulation time. the physics
// never reads a clock itself.
type clock struct {
	dt     float64 // s, fixed step
	ticker *time.Ticker
	start  time.Time
	last   time.Time
}

// a fixed step of 1/fps, or with realtime a ticker at fps reporting the
// measured time between frames.
func newClock(fps float64, realtime bool) *clock {
	c := &clock{dt: 1 / fps}
	if realtime {
		c.ticker = time.NewTicker(time.Duration(float64(time.Second) / fps))
		c.start = time.Now()
		c.last = c.start
	}
	return c
}

// returns the seconds since the previous frame and since the start.
func (c *clock) tick(frame int) (dt, now float64) {
	if c.ticker == nil {
		return c.dt, float64(frame) * c.dt
	}
	<-c.ticker.C
	t := time.Now()
	dt = t.Sub(c.last).Seconds()
	c.last = t
	return dt, t.Sub(c.start).Seconds()
}

func (c *clock) stop() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
}
