package course

import (
	"errors"
	"fmt"
	"math"

	"github.com/playmatatu/puttputt/internal/physics"
)

// ErrInvalidCourse is wrapped by every validation failure.
var ErrInvalidCourse = errors.New("invalid course")

func finite(ps ...Point) bool {
	for _, p := range ps {
		if !p.Vec().IsFinite() {
			return false
		}
	}
	return true
}

func finiteScalars(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func vecs(ps []Point) []physics.Vec2 {
	out := make([]physics.Vec2, len(ps))
	for i, p := range ps {
		out[i] = p.Vec()
	}
	return out
}

func validPolygon(ps []Point) error {
	if len(ps) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidCourse, len(ps))
	}
	if !finite(ps...) {
		return fmt.Errorf("%w: non-finite vertex", ErrInvalidCourse)
	}
	if math.Abs(physics.SignedArea(vecs(ps))) < 1e-12 {
		return fmt.Errorf("%w: polygon has zero area", ErrInvalidCourse)
	}
	return nil
}

// Validate checks a hole without building it.
func (h *HoleSpec) Validate() error {
	if !finite(h.Tee, h.Goal) {
		return fmt.Errorf("%w: non-finite tee or goal", ErrInvalidCourse)
	}
	if !(h.GoalRadius > 0) || math.IsInf(h.GoalRadius, 0) {
		return fmt.Errorf("%w: goal radius must be positive", ErrInvalidCourse)
	}
	if err := validFriction(h.Surface.Friction); err != nil {
		return err
	}
	if !finite(h.Surface.Gravity) {
		return fmt.Errorf("%w: non-finite gravity", ErrInvalidCourse)
	}
	for i, r := range h.Surface.Regions {
		if err := validPolygon(r.Polygon); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if err := validFriction(r.Friction); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if r.Gravity != nil && !finite(*r.Gravity) {
			return fmt.Errorf("region %d: %w: non-finite gravity", i, ErrInvalidCourse)
		}
	}
	if len(h.Obstacles) == 0 {
		return fmt.Errorf("%w: hole has no obstacles", ErrInvalidCourse)
	}
	for i, o := range h.Obstacles {
		if err := o.validate(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}
	return nil
}

func validFriction(f *float64) error {
	if f == nil {
		return nil
	}
	if !finiteScalars(*f) || *f < 0 {
		return fmt.Errorf("%w: friction must be finite and non-negative", ErrInvalidCourse)
	}
	return nil
}

func (o *ObstacleSpec) validate() error {
	switch o.Type {
	case TypeBoundary, TypeObstacle:
		if err := validPolygon(o.Vertices); err != nil {
			return err
		}
	case TypeOneWay:
		if !finite(o.From, o.To) {
			return fmt.Errorf("%w: non-finite one-way edge", ErrInvalidCourse)
		}
		if o.From == o.To {
			return fmt.Errorf("%w: zero-length one-way edge", ErrInvalidCourse)
		}
		if _, err := parseSide(o.Blocked); err != nil {
			return err
		}
	case TypeSprite:
		if !finite(o.Min, o.Size) {
			return fmt.Errorf("%w: non-finite sprite", ErrInvalidCourse)
		}
		if o.Size[0] <= 0 || o.Size[1] <= 0 {
			return fmt.Errorf("%w: sprite size must be positive", ErrInvalidCourse)
		}
	default:
		return fmt.Errorf("%w: unknown obstacle type %q", ErrInvalidCourse, o.Type)
	}
	for _, m := range o.Motion {
		if _, err := m.build(); err != nil {
			return err
		}
	}
	return nil
}

func parseSide(s string) (physics.Side, error) {
	switch s {
	case "left":
		return physics.Left, nil
	case "right", "":
		return physics.Right, nil
	}
	return 0, fmt.Errorf("%w: blocked side must be left or right, got %q", ErrInvalidCourse, s)
}

func (o *ObstacleSpec) build(radius float64) (physics.Obstacle, error) {
	var shape physics.Shape
	switch o.Type {
	case TypeBoundary:
		shape = physics.NewBoundary(radius, vecs(o.Vertices)...)
	case TypeObstacle:
		shape = physics.NewObstacle(radius, vecs(o.Vertices)...)
	case TypeOneWay:
		side, err := parseSide(o.Blocked)
		if err != nil {
			return nil, err
		}
		shape = physics.NewOneWay(radius, o.From.Vec(), o.To.Vec(), side)
	case TypeSprite:
		shape = physics.NewSprite(radius, o.Min.Vec(), o.Size.Vec())
	default:
		return nil, fmt.Errorf("%w: unknown obstacle type %q", ErrInvalidCourse, o.Type)
	}

	if len(o.Motion) == 0 {
		return shape, nil
	}
	motions := make([]physics.Motion, 0, len(o.Motion))
	for _, m := range o.Motion {
		mo, err := m.build()
		if err != nil {
			return nil, err
		}
		motions = append(motions, mo)
	}
	return physics.NewTimeVarying(shape, physics.Chain(motions...)), nil
}

// Build validates the hole and turns it into a playable physics.Hole for a
// ball of the given radius. A cup no wider than the ball is rejected, since
// it could never capture.
func (h *HoleSpec) Build(radius float64) (*physics.Hole, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if h.GoalRadius <= radius {
		return nil, fmt.Errorf("%w: goal radius %v must exceed ball radius %v", ErrInvalidCourse, h.GoalRadius, radius)
	}

	obstacles := make([]physics.Obstacle, 0, len(h.Obstacles))
	for i := range h.Obstacles {
		o, err := h.Obstacles[i].build(radius)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		obstacles = append(obstacles, o)
	}

	return &physics.Hole{
		Name:       h.Name,
		Par:        h.Par,
		Tee:        h.Tee.Vec(),
		Goal:       h.Goal.Vec(),
		GoalRadius: h.GoalRadius,
		Obstacles:  obstacles,
		Surface:    h.Surface.build(),
	}, nil
}
