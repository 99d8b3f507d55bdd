package course

import "github.com/playmatatu/puttputt/internal/physics"

type region struct {
	polygon []physics.Vec2
	surface physics.Surface
}

func (s SurfaceSpec) base() physics.Surface {
	base := physics.Surface{Friction: physics.DefaultFriction, Gravity: s.Gravity.Vec()}
	if s.Friction != nil {
		base.Friction = *s.Friction
	}
	return base
}

func (s SurfaceSpec) build() physics.SurfaceFunc {
	base := s.base()
	if len(s.Regions) == 0 {
		return physics.Uniform(base)
	}

	regions := make([]region, len(s.Regions))
	for i, r := range s.Regions {
		surf := base
		if r.Friction != nil {
			surf.Friction = *r.Friction
		}
		if r.Gravity != nil {
			surf.Gravity = r.Gravity.Vec()
		}
		regions[i] = region{polygon: vecs(r.Polygon), surface: surf}
	}

	return func(p physics.Vec2) physics.Surface {
		for _, r := range regions {
			if insidePolygon(p, r.polygon) {
				return r.surface
			}
		}
		return base
	}
}

// insidePolygon is the even-odd ray cast. Either winding works.
func insidePolygon(p physics.Vec2, vs []physics.Vec2) bool {
	in := false
	for i, j := 0, len(vs)-1; i < len(vs); j, i = i, i+1 {
		a, b := vs[i], vs[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}
