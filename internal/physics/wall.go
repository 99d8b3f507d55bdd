package physics

import (
	"fmt"
	"math"
)

// WallKind tags the two wall variants.
type WallKind int

const (
	KindSegment WallKind = iota
	KindPoint
)

func (k WallKind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindPoint:
		return "point"
	}
	return fmt.Sprintf("WallKind(%d)", int(k))
}

func (k WallKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Contact describes where a path p0->p1 first touches a wall. T is the
// fraction of the path travelled before contact.
type Contact struct {
	T      float64
	Point  Vec2
	Normal Vec2
}

// Wall is a single collision primitive. The set of implementations is closed:
// SegmentWall and PointWall.
type Wall interface {
	Kind() WallKind
	// Contact finds the first point at which the path p0->p1 hits the wall.
	Contact(p0, p1 Vec2) (Contact, bool)
	// Collide returns the corrected end position and velocity for the path
	// p0->p1 travelled at velocity v.
	Collide(p0, p1, v Vec2) (Vec2, Vec2, bool)
	sealed()
}

// SegmentWall is an authored edge P->Q shifted by the ball radius along its
// left normal, so the ball can be treated as a point. It only collides with
// paths that cross it from the side the normal points to.
type SegmentWall struct {
	P, Q   Vec2
	W0, W1 Vec2
	Normal Vec2
}

func NewSegmentWall(p, q Vec2, radius float64) SegmentWall {
	w := SegmentWall{P: p, Q: q, W0: p, W1: q}

	d := q.Minus(p)
	length := d.Magnitude()
	if length == 0 {
		// W1-W0 is zero, so Contact never sees a positive denominator.
		return w
	}

	w.Normal = d.LeftNormal().Times(1 / length)
	offset := w.Normal.Times(radius)
	w.W0 = p.Plus(offset)
	w.W1 = q.Plus(offset)
	return w
}

func (SegmentWall) Kind() WallKind { return KindSegment }
func (SegmentWall) sealed()        {}

func (w SegmentWall) Contact(p0, p1 Vec2) (Contact, bool) {
	dp := p1.Minus(p0)
	dw := w.W1.Minus(w.W0)

	// Non-positive covers parallel, degenerate and wrong-side approaches.
	denom := dp.Cross(dw)
	if denom <= 0 {
		return Contact{}, false
	}

	qp := w.W0.Minus(p0)
	t := qp.Cross(dw) / denom
	u := qp.Cross(dp) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Contact{}, false
	}

	return Contact{T: t, Point: p0.Plus(dp.Times(t)), Normal: w.Normal}, true
}

func (w SegmentWall) Collide(p0, p1, v Vec2) (Vec2, Vec2, bool) {
	c, ok := w.Contact(p0, p1)
	if !ok {
		return p1, v, false
	}
	p, nv := bounce(c, p1, v)
	return p, nv, true
}

// PointWall is a circular obstruction of radius R (the ball radius) centred
// on an authored vertex.
type PointWall struct {
	P Vec2
	R float64
}

func NewPointWall(p Vec2, radius float64) PointWall {
	return PointWall{P: p, R: radius}
}

func (PointWall) Kind() WallKind { return KindPoint }
func (PointWall) sealed()        {}

// discriminantTolerance absorbs rounding when the path grazes the circle.
const discriminantTolerance = 1e-9

func (w PointWall) Contact(p0, p1 Vec2) (Contact, bool) {
	if DistToSegment(w.P, p0, p1) > w.R {
		return Contact{}, false
	}

	d := p1.Minus(p0)
	a := d.Dot(d)
	if a == 0 {
		return Contact{}, false
	}

	v0 := p0.Minus(w.P)
	b := v0.Dot(d)
	if b >= 0 {
		// moving away from (or tangent to) the vertex
		return Contact{}, false
	}
	c := v0.Dot(v0) - w.R*w.R

	disc := b*b - a*c
	if disc < 0 {
		if disc < -discriminantTolerance*b*b {
			panic(fmt.Sprintf("physics: point wall %v: no entry root for path %v->%v after close approach", w.P, p0, p1))
		}
		disc = 0
	}

	t := (-b - math.Sqrt(disc)) / a
	if t < 0 {
		// already inside the circle: resolve where the path starts
		t = 0
	}
	if t > 1 {
		return Contact{}, false
	}

	q := p0.Plus(d.Times(t))
	return Contact{T: t, Point: q, Normal: q.Minus(w.P).Unit()}, true
}

func (w PointWall) Collide(p0, p1, v Vec2) (Vec2, Vec2, bool) {
	c, ok := w.Contact(p0, p1)
	if !ok {
		return p1, v, false
	}
	p, nv := bounce(c, p1, v)
	return p, nv, true
}
