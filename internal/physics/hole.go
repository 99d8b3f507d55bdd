package physics

// Surface is the local physics at a point of the course.
type Surface struct {
	Friction float64 `json:"friction"` // speed lost per second
	Gravity  Vec2    `json:"gravity"`  // acceleration, units per second squared
}

// SurfaceFunc reports the surface at a position.
type SurfaceFunc func(p Vec2) Surface

// Uniform returns a SurfaceFunc that is s everywhere.
func Uniform(s Surface) SurfaceFunc {
	return func(Vec2) Surface { return s }
}

// Hole is one playable course layout. It is read-only while stepping.
type Hole struct {
	Name       string
	Par        int
	Tee        Vec2
	Goal       Vec2
	GoalRadius float64
	Obstacles  []Obstacle
	Surface    SurfaceFunc
}

// SurfaceAt falls back to DefaultFriction with no gravity when the hole has
// no surface function.
func (h *Hole) SurfaceAt(p Vec2) Surface {
	if h.Surface == nil {
		return Surface{Friction: DefaultFriction}
	}
	return h.Surface(p)
}
