package physics

import "math"

// Motion maps simulated time to a rigid placement.
type Motion func(t float64) Affine

// TimeVarying moves an inner shape by a time-dependent rigid transform.
// Walls are rebuilt from the moved authored vertices on every query, so the
// radius offsets stay perpendicular to the moved edges.
type TimeVarying struct {
	Inner  Shape
	Motion Motion
}

func NewTimeVarying(inner Shape, motion Motion) *TimeVarying {
	return &TimeVarying{Inner: inner, Motion: motion}
}

func (o *TimeVarying) WallsAt(t float64) []Wall {
	return o.Inner.Transform(o.Motion(t)).WallsAt(t)
}

// Transform places the whole moving shape, applying a after the motion.
func (o *TimeVarying) Transform(a Affine) Shape {
	motion := o.Motion
	return &TimeVarying{
		Inner: o.Inner,
		Motion: func(t float64) Affine {
			return motion(t).Then(a)
		},
	}
}

// Spinning rotates about pivot at rate radians per second, starting at phase.
func Spinning(pivot Vec2, rate, phase float64) Motion {
	return func(t float64) Affine {
		return RotateAbout(pivot, rate*t+phase)
	}
}

// Oscillating slides along axis by amplitude*sin(omega*t + phase).
func Oscillating(axis Vec2, amplitude, omega, phase float64) Motion {
	dir := axis.Unit()
	return func(t float64) Affine {
		return Translate(dir.Times(amplitude * math.Sin(omega*t+phase)))
	}
}

// Drifting translates with constant velocity.
func Drifting(velocity Vec2) Motion {
	return func(t float64) Affine {
		return Translate(velocity.Times(t))
	}
}

// Chain applies the motions in order.
func Chain(motions ...Motion) Motion {
	return func(t float64) Affine {
		a := Identity()
		for _, m := range motions {
			a = a.Then(m(t))
		}
		return a
	}
}
