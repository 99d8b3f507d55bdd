// Command simulate plays one shot on a hole without a server and prints the
// ball's track, one line per tick.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/playmatatu/puttputt/internal/config"
	"github.com/playmatatu/puttputt/internal/course"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/playmatatu/puttputt/internal/round"
)

type options struct {
	courseFile string
	hole       int
	vx, vy     float64
	putter     string
	dt         float64
	duration   float64
	jsonOut    bool
}

// frame is one printed line of the track.
type frame struct {
	Time       float64                  `json:"t"`
	Position   physics.Vec2             `json:"position"`
	Velocity   physics.Vec2             `json:"velocity"`
	Collisions []physics.CollisionEvent `json:"collisions,omitempty"`
	Done       bool                     `json:"done"`
}

// result summarises a finished simulation.
type result struct {
	Frames   int
	Final    physics.BallState
	Captured bool
	Bounces  int
}

func main() {
	var opts options
	flag.StringVar(&opts.courseFile, "course", "", "course file (defaults to the built-in course)")
	flag.IntVar(&opts.hole, "hole", 1, "hole number")
	flag.Float64Var(&opts.vx, "vx", 10, "hit velocity x")
	flag.Float64Var(&opts.vy, "vy", 10, "hit velocity y")
	flag.StringVar(&opts.putter, "putter", "", `virtual putter message, e.g. "x:10,y:10"; overrides -vx/-vy`)
	flag.Float64Var(&opts.dt, "dt", 1, "seconds per tick")
	flag.Float64Var(&opts.duration, "duration", 30, "seconds to simulate")
	flag.BoolVar(&opts.jsonOut, "json", false, "print JSON lines")
	flag.Parse()

	cfg := config.Load()
	log := logger.New("simulate", cfg.Environment)
	defer log.Sync()

	res, err := run(cfg, opts, os.Stdout)
	if err != nil {
		log.Errorw("simulation failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Infow("simulation finished",
		"frames", res.Frames,
		"captured", res.Captured,
		"bounces", res.Bounces,
		"x", res.Final.Position.X,
		"y", res.Final.Position.Y,
	)
}

func run(cfg *config.Config, opts options, out io.Writer) (result, error) {
	physCfg, err := cfg.PhysicsConfig()
	if err != nil {
		return result{}, err
	}
	if opts.dt <= 0 {
		return result{}, fmt.Errorf("dt must be positive, got %v", opts.dt)
	}

	var crs *course.Course
	if opts.courseFile != "" {
		crs, err = course.LoadFile(opts.courseFile, physCfg.BallRadius)
	} else {
		crs, err = course.Default(physCfg.BallRadius)
	}
	if err != nil {
		return result{}, err
	}
	hole, _, err := crs.Hole(opts.hole)
	if err != nil {
		return result{}, err
	}

	v := physics.NewVec2(opts.vx, opts.vy)
	if opts.putter != "" {
		if v, err = round.ParseHitMessage(opts.putter); err != nil {
			return result{}, err
		}
	}
	if err := round.ValidateHit(v, 0); err != nil {
		return result{}, err
	}

	engine := physics.NewEngine(physCfg)
	s := engine.Hit(engine.Initialize(hole, 0), v)

	enc := json.NewEncoder(out)
	emit := func(f frame) error {
		if opts.jsonOut {
			return enc.Encode(f)
		}
		_, err := fmt.Fprintf(out, "t=%6.2f  p=(%8.3f, %8.3f)  v=(%8.3f, %8.3f)  bounces=%d done=%v\n",
			f.Time, f.Position.X, f.Position.Y, f.Velocity.X, f.Velocity.Y, len(f.Collisions), f.Done)
		return err
	}

	res := result{}
	if err := emit(frame{Time: s.Time, Position: s.Position, Velocity: s.Velocity}); err != nil {
		return res, err
	}

	steps := int(opts.duration / opts.dt)
	for i := 1; i <= steps && s.Moving(); i++ {
		var tick physics.Tick
		s, tick = engine.Step(hole, s, float64(i)*opts.dt)
		res.Frames++
		res.Bounces += len(tick.Collisions)
		res.Captured = res.Captured || tick.Captured
		if err := emit(frame{
			Time:       s.Time,
			Position:   s.Position,
			Velocity:   s.Velocity,
			Collisions: tick.Collisions,
			Done:       s.Done,
		}); err != nil {
			return res, err
		}
	}

	res.Final = s
	return res, nil
}
