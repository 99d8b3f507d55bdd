package physics

import (
	"fmt"
	"math"
)

// CapturePolicy decides how close the ball's path must pass to the goal.
type CapturePolicy int

const (
	// CaptureInset requires the path within GoalRadius minus the ball radius,
	// i.e. the whole ball fits in the cup.
	CaptureInset CapturePolicy = iota
	// CaptureCenter requires the path within GoalRadius of the goal.
	CaptureCenter
)

func (p CapturePolicy) String() string {
	switch p {
	case CaptureInset:
		return "inset"
	case CaptureCenter:
		return "center"
	}
	return fmt.Sprintf("CapturePolicy(%d)", int(p))
}

// Threshold is the distance below which the ball is captured.
func (p CapturePolicy) Threshold(goalRadius, ballRadius float64) float64 {
	if p == CaptureCenter {
		return goalRadius
	}
	return goalRadius - ballRadius
}

// Resolution selects how collisions against several walls are resolved
// within one tick.
type Resolution int

const (
	// ResolveEarliest repeatedly bounces off whichever wall the remaining
	// path reaches first, up to MaxIterations times.
	ResolveEarliest Resolution = iota
	// ResolveSequential folds the path through every wall once, in obstacle
	// then wall order, each wall seeing the path as corrected by the ones
	// before it.
	ResolveSequential
)

func (r Resolution) String() string {
	switch r {
	case ResolveEarliest:
		return "earliest"
	case ResolveSequential:
		return "sequential"
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

type Config struct {
	BallRadius    float64
	Capture       CapturePolicy
	Resolution    Resolution
	MaxIterations int
}

func DefaultConfig() Config {
	return Config{
		BallRadius:    DefaultBallRadius,
		Capture:       CaptureInset,
		Resolution:    ResolveEarliest,
		MaxIterations: MaxIterations,
	}
}

// BallState is the ball at one instant. Engine methods never mutate a state;
// they return a new one.
type BallState struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Time     float64 `json:"time"`
	Shots    int     `json:"shots"`
	Done     bool    `json:"done"`
}

// Moving reports whether the ball is still in play and has velocity.
func (s BallState) Moving() bool {
	return !s.Done && !s.Velocity.IsZero()
}

// CollisionEvent records one wall bounce during a tick, for sound and
// rendering layers.
type CollisionEvent struct {
	Obstacle int      `json:"obstacle"`
	Wall     int      `json:"wall"`
	Kind     WallKind `json:"kind"`
	Point    Vec2     `json:"point"`
	Speed    float64  `json:"speed"` // normal component of the impact velocity
}

// Tick reports what happened during one Step.
type Tick struct {
	Dt         float64          `json:"dt"`
	Collisions []CollisionEvent `json:"collisions,omitempty"`
	Captured   bool             `json:"captured"`
}

// Engine advances ball states on a hole. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine fills unset config fields from DefaultConfig.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.BallRadius <= 0 {
		cfg.BallRadius = def.BallRadius
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Initialize places a resting ball on the tee at startTime.
func (e *Engine) Initialize(h *Hole, startTime float64) BallState {
	return BallState{
		Position: h.Tee,
		Time:     startTime,
	}
}

// Hit sets the ball's velocity and counts a shot. Hitting a finished ball
// is a no-op.
func (e *Engine) Hit(s BallState, v Vec2) BallState {
	if s.Done {
		return s
	}
	s.Velocity = v
	s.Shots++
	return s
}

// Step advances s to time now. A finished state, or a now that is not after
// s.Time, is returned unchanged.
func (e *Engine) Step(h *Hole, s BallState, now float64) (BallState, Tick) {
	if s.Done {
		return s, Tick{}
	}
	dt := now - s.Time
	if dt <= 0 {
		return s, Tick{}
	}
	tick := Tick{Dt: dt}

	surf := h.SurfaceAt(s.Position)

	v := s.Velocity.Plus(surf.Gravity.Times(dt))
	speed := math.Max(0, v.Magnitude()-surf.Friction*dt)
	v = v.Unit().Times(speed)

	p0 := s.Position
	p1 := p0.Plus(v.Times(dt))

	if p1.Minus(p0).Magnitude() > 0 {
		if e.cfg.Resolution == ResolveSequential {
			p1, v, tick.Collisions = resolveSequential(h, now, p0, p1, v)
		} else {
			p1, v, tick.Collisions = resolveEarliest(h, now, p0, p1, v, e.cfg.MaxIterations)
		}
	}

	threshold := e.cfg.Capture.Threshold(h.GoalRadius, e.cfg.BallRadius)
	if DistToSegment(h.Goal, p0, p1) < threshold {
		tick.Captured = true
		return BallState{
			Position: h.Goal,
			Time:     now,
			Shots:    s.Shots,
			Done:     true,
		}, tick
	}

	return BallState{
		Position: p1,
		Velocity: v,
		Time:     now,
		Shots:    s.Shots,
	}, tick
}
