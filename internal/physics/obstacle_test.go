package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(min, max float64) []Vec2 {
	return []Vec2{{min, min}, {max, min}, {max, max}, {min, max}}
}

func TestPolygonWallOrder(t *testing.T) {
	b := NewBoundary(1, square(0, 100)...)
	walls := b.WallsAt(0)
	require.Len(t, walls, 8)
	for i, w := range walls {
		if i%2 == 0 {
			assert.Equal(t, KindSegment, w.Kind())
		} else {
			assert.Equal(t, KindPoint, w.Kind())
		}
	}
	assert.Equal(t, Vec2{0, 0}, walls[1].(PointWall).P)
	assert.Equal(t, Vec2{100, 0}, walls[3].(PointWall).P)
}

func TestBoundaryNormalisesWinding(t *testing.T) {
	ccw := NewBoundary(1, square(0, 100)...)
	cw := NewBoundary(1, reversed(square(0, 100))...)

	assert.Greater(t, SignedArea(cw.Vertices), 0.0)
	for _, w := range cw.WallsAt(0) {
		seg, ok := w.(SegmentWall)
		if !ok {
			continue
		}
		mid := seg.W0.Plus(seg.W1).Times(0.5)
		assert.Less(t, mid.Minus(Vec2{50, 50}).Magnitude(), 50.0, "offset line moved inward")
	}
	assert.ElementsMatch(t, ccw.Vertices, cw.Vertices)
}

func TestObstacleNormalisesWinding(t *testing.T) {
	o := NewObstacle(1, square(40, 60)...)
	assert.Less(t, SignedArea(o.Vertices), 0.0)

	for _, w := range o.WallsAt(0) {
		seg, ok := w.(SegmentWall)
		if !ok {
			continue
		}
		mid := seg.W0.Plus(seg.W1).Times(0.5)
		assert.InDelta(t, 11.0, math.Max(math.Abs(mid.X-50), math.Abs(mid.Y-50)), eps, "offset line moved outward")
	}
}

func TestObstacleDeflectsFromOutside(t *testing.T) {
	o := NewObstacle(1, square(40, 60)...)
	h := &Hole{Obstacles: []Obstacle{o}, Goal: Vec2{-100, -100}, GoalRadius: 1, Surface: Uniform(Surface{})}
	e := NewEngine(DefaultConfig())

	s := e.Hit(BallState{Position: Vec2{10, 50}}, Vec2{50, 0})
	s, tick := e.Step(h, s, 1)

	require.Len(t, tick.Collisions, 1)
	assert.InDelta(t, 39.0, tick.Collisions[0].Point.X, eps)
	assert.Less(t, s.Position.X, 39.0)
	assert.Less(t, s.Velocity.X, 0.0)
}

func TestOneWayBlocksOnlyOneSide(t *testing.T) {
	gate := NewOneWay(1, Vec2{50, 0}, Vec2{50, 100}, Left)
	h := &Hole{Obstacles: []Obstacle{gate}, Goal: Vec2{-100, -100}, GoalRadius: 1, Surface: Uniform(Surface{})}
	e := NewEngine(DefaultConfig())

	// the left of an upward edge is the -x side
	blocked, tick := e.Step(h, e.Hit(BallState{Position: Vec2{20, 50}}, Vec2{60, 0}), 1)
	assert.Len(t, tick.Collisions, 1)
	assert.Less(t, blocked.Position.X, 49.0)

	passed, tick := e.Step(h, e.Hit(BallState{Position: Vec2{80, 50}}, Vec2{-60, 0}), 1)
	assert.Empty(t, tick.Collisions)
	assert.InDelta(t, 20.0, passed.Position.X, eps)
}

func TestOneWayBlockedRight(t *testing.T) {
	gate := NewOneWay(1, Vec2{50, 0}, Vec2{50, 100}, Right)
	walls := gate.WallsAt(0)
	require.Len(t, walls, 3)

	_, _, hit := walls[0].Collide(Vec2{80, 50}, Vec2{20, 50}, Vec2{-60, 0})
	assert.True(t, hit)
	_, _, hit = walls[0].Collide(Vec2{20, 50}, Vec2{80, 50}, Vec2{60, 0})
	assert.False(t, hit)

	assert.Equal(t, Vec2{50, 0}, walls[1].(PointWall).P)
	assert.Equal(t, Vec2{50, 100}, walls[2].(PointWall).P)
}

func TestSpriteWalls(t *testing.T) {
	s := NewSprite(1, Vec2{10, 20}, Vec2{30, 5})
	walls := s.WallsAt(0)
	require.Len(t, walls, 8)

	var corners []Vec2
	for _, w := range walls {
		if p, ok := w.(PointWall); ok {
			corners = append(corners, p.P)
		}
	}
	assert.ElementsMatch(t, []Vec2{{10, 20}, {40, 20}, {40, 25}, {10, 25}}, corners)

	found := false
	for _, w := range walls {
		if _, _, hit := w.Collide(Vec2{25, 0}, Vec2{25, 30}, Vec2{0, 30}); hit {
			found = true
		}
	}
	assert.True(t, found, "a path into the sprite hits one of its walls")
}

func TestTimeVaryingTranslation(t *testing.T) {
	inner := NewOneWay(1, Vec2{0, 0}, Vec2{0, 10}, Left)
	moving := NewTimeVarying(inner, Oscillating(Vec2{1, 0}, 10, 1, 0))

	t1, t2 := 0.3, 1.7
	w1 := moving.WallsAt(t1)[0].(SegmentWall)
	w2 := moving.WallsAt(t2)[0].(SegmentWall)

	shift := Vec2{10*math.Sin(t2) - 10*math.Sin(t1), 0}
	assert.True(t, w2.W0.ApproxEqual(w1.W0.Plus(shift), eps), "W0 %v vs %v", w2.W0, w1.W0.Plus(shift))
	assert.True(t, w2.W1.ApproxEqual(w1.W1.Plus(shift), eps), "W1 %v vs %v", w2.W1, w1.W1.Plus(shift))

	d1, d2 := w1.W1.Minus(w1.W0), w2.W1.Minus(w2.W0)
	assert.InDelta(t, d1.Magnitude(), d2.Magnitude(), eps)
	assert.True(t, w1.Normal.ApproxEqual(w2.Normal, eps))
}

func TestTimeVaryingRotationRebuildsOffsets(t *testing.T) {
	inner := NewObstacle(1, square(-5, 5)...)
	spinning := NewTimeVarying(inner, Spinning(Vec2{}, math.Pi/4, 0))

	for _, w := range spinning.WallsAt(1) {
		seg, ok := w.(SegmentWall)
		if !ok {
			continue
		}
		// the offset stays exactly one radius from the moved authored edge
		assert.InDelta(t, 1.0, DistToSegment(seg.W0, seg.P, seg.Q), eps)
		assert.InDelta(t, 0.0, seg.Normal.Dot(seg.Q.Minus(seg.P)), eps)
	}
}

func TestTimeVaryingCanBePlaced(t *testing.T) {
	inner := NewOneWay(1, Vec2{0, 0}, Vec2{0, 10}, Left)
	moving := NewTimeVarying(inner, Drifting(Vec2{1, 0}))
	placed := moving.Transform(Translate(Vec2{0, 100}))

	w := placed.WallsAt(2)[1].(PointWall)
	assert.True(t, w.P.ApproxEqual(Vec2{2, 100}, eps), "got %v", w.P)
}

func TestChainMotion(t *testing.T) {
	m := Chain(Spinning(Vec2{}, math.Pi/2, 0), Drifting(Vec2{0, 1}))
	got := m(1).Apply(Vec2{1, 0})
	assert.True(t, got.ApproxEqual(Vec2{0, 2}, eps), "got %v", got)
}
