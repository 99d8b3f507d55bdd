package course

import (
	"fmt"

	"github.com/playmatatu/puttputt/internal/physics"
)

// Point is an authored coordinate, written as [x, y] in course files.
type Point [2]float64

func (p Point) Vec() physics.Vec2 { return physics.NewVec2(p[0], p[1]) }

// File is the on-disk shape of a course.
type File struct {
	ID    string     `yaml:"id" json:"id"`
	Name  string     `yaml:"name" json:"name"`
	Holes []HoleSpec `yaml:"holes" json:"holes"`
}

type HoleSpec struct {
	Name       string         `yaml:"name" json:"name"`
	Par        int            `yaml:"par" json:"par"`
	Background string         `yaml:"background,omitempty" json:"background,omitempty"`
	Tee        Point          `yaml:"tee" json:"tee"`
	Goal       Point          `yaml:"goal" json:"goal"`
	GoalRadius float64        `yaml:"goal_radius" json:"goal_radius"`
	Surface    SurfaceSpec    `yaml:"surface" json:"surface"`
	Obstacles  []ObstacleSpec `yaml:"obstacles" json:"obstacles"`
}

// SurfaceSpec is the default surface plus regions that override it. The
// first region containing a point wins.
type SurfaceSpec struct {
	Friction *float64     `yaml:"friction,omitempty" json:"friction,omitempty"`
	Gravity  Point        `yaml:"gravity,omitempty" json:"gravity,omitempty"`
	Regions  []RegionSpec `yaml:"regions,omitempty" json:"regions,omitempty"`
}

type RegionSpec struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Polygon  []Point  `yaml:"polygon" json:"polygon"`
	Friction *float64 `yaml:"friction,omitempty" json:"friction,omitempty"`
	Gravity  *Point   `yaml:"gravity,omitempty" json:"gravity,omitempty"`
}

// Obstacle types.
const (
	TypeBoundary = "boundary"
	TypeObstacle = "obstacle"
	TypeOneWay   = "oneway"
	TypeSprite   = "sprite"
)

type ObstacleSpec struct {
	Type     string  `yaml:"type" json:"type"`
	Vertices []Point `yaml:"vertices,omitempty" json:"vertices,omitempty"`

	// oneway
	From    Point  `yaml:"from,omitempty" json:"from,omitempty"`
	To      Point  `yaml:"to,omitempty" json:"to,omitempty"`
	Blocked string `yaml:"blocked,omitempty" json:"blocked,omitempty"`

	// sprite
	Min  Point  `yaml:"min,omitempty" json:"min,omitempty"`
	Size Point  `yaml:"size,omitempty" json:"size,omitempty"`
	Art  string `yaml:"art,omitempty" json:"art,omitempty"`

	Motion []MotionSpec `yaml:"motion,omitempty" json:"motion,omitempty"`
}

// Motion types.
const (
	MotionRotate    = "rotate"
	MotionOscillate = "oscillate"
	MotionTranslate = "translate"
)

type MotionSpec struct {
	Type string `yaml:"type" json:"type"`

	// rotate
	Pivot Point   `yaml:"pivot,omitempty" json:"pivot,omitempty"`
	Rate  float64 `yaml:"rate,omitempty" json:"rate,omitempty"`

	// oscillate
	Axis      Point   `yaml:"axis,omitempty" json:"axis,omitempty"`
	Amplitude float64 `yaml:"amplitude,omitempty" json:"amplitude,omitempty"`
	Omega     float64 `yaml:"omega,omitempty" json:"omega,omitempty"`

	// translate
	Velocity Point `yaml:"velocity,omitempty" json:"velocity,omitempty"`

	Phase float64 `yaml:"phase,omitempty" json:"phase,omitempty"`
}

func (m MotionSpec) build() (physics.Motion, error) {
	if !finite(m.Pivot, m.Axis, m.Velocity) || !finiteScalars(m.Rate, m.Amplitude, m.Omega, m.Phase) {
		return nil, fmt.Errorf("%w: non-finite %s motion", ErrInvalidCourse, m.Type)
	}
	switch m.Type {
	case MotionRotate:
		return physics.Spinning(m.Pivot.Vec(), m.Rate, m.Phase), nil
	case MotionOscillate:
		if m.Axis.Vec().IsZero() {
			return nil, fmt.Errorf("%w: oscillate needs a non-zero axis", ErrInvalidCourse)
		}
		return physics.Oscillating(m.Axis.Vec(), m.Amplitude, m.Omega, m.Phase), nil
	case MotionTranslate:
		return physics.Drifting(m.Velocity.Vec()), nil
	default:
		return nil, fmt.Errorf("%w: unknown motion type %q", ErrInvalidCourse, m.Type)
	}
}
