package physics

import "math"

// DistToSegment returns the minimum distance from p to the segment a-b.
// A zero-length segment degrades to the distance between p and a.
func DistToSegment(p, a, b Vec2) float64 {
	d := b.Minus(a)
	lenSq := d.MagnitudeSquared()
	if lenSq == 0 {
		return p.Minus(a).Magnitude()
	}

	t := p.Minus(a).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))

	return p.Minus(a.Plus(d.Times(t))).Magnitude()
}

// SignedArea returns twice the signed area of the polygon. Positive means the
// vertices run counter-clockwise with the y axis pointing up.
func SignedArea(vertices []Vec2) float64 {
	var sum float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i].Cross(vertices[j])
	}
	return sum
}

func reversed(vertices []Vec2) []Vec2 {
	out := make([]Vec2, len(vertices))
	for i, v := range vertices {
		out[len(vertices)-1-i] = v
	}
	return out
}

// bounce reflects the travel remaining after contact c, and the velocity,
// about the contact normal.
func bounce(c Contact, p1, v Vec2) (Vec2, Vec2) {
	rest := p1.Minus(c.Point).Reflect(c.Normal)
	return c.Point.Plus(rest), v.Reflect(c.Normal)
}
