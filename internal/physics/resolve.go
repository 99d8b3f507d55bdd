package physics

import "math"

type indexedWall struct {
	obstacle, wall int
	w              Wall
}

func collectWalls(h *Hole, t float64) []indexedWall {
	var out []indexedWall
	for i, o := range h.Obstacles {
		for j, w := range o.WallsAt(t) {
			out = append(out, indexedWall{obstacle: i, wall: j, w: w})
		}
	}
	return out
}

func newEvent(iw indexedWall, c Contact, v Vec2) CollisionEvent {
	return CollisionEvent{
		Obstacle: iw.obstacle,
		Wall:     iw.wall,
		Kind:     iw.w.Kind(),
		Point:    c.Point,
		Speed:    math.Abs(v.Dot(c.Normal)),
	}
}

// resolveSequential passes the path through each wall once, in order. A wall
// sees the end point and velocity as corrected by every wall before it, but
// the path always starts at p0.
func resolveSequential(h *Hole, t float64, p0, p1, v Vec2) (Vec2, Vec2, []CollisionEvent) {
	var events []CollisionEvent
	for _, iw := range collectWalls(h, t) {
		c, ok := iw.w.Contact(p0, p1)
		if !ok {
			continue
		}
		events = append(events, newEvent(iw, c, v))
		p1, v = bounce(c, p1, v)
	}
	return p1, v, events
}

// resolveEarliest bounces off the first wall the path reaches, then repeats
// on the reflected remainder. If contacts remain after maxIter bounces the
// ball stops at the last contact point.
func resolveEarliest(h *Hole, t float64, p0, p1, v Vec2, maxIter int) (Vec2, Vec2, []CollisionEvent) {
	walls := collectWalls(h, t)
	var events []CollisionEvent

	start := p0
	for iter := 0; ; iter++ {
		var (
			best  Contact
			bestW indexedWall
			found bool
		)
		for _, iw := range walls {
			c, ok := iw.w.Contact(start, p1)
			if ok && (!found || c.T < best.T) {
				best, bestW, found = c, iw, true
			}
		}
		if !found {
			break
		}
		if iter == maxIter {
			p1 = start
			break
		}

		events = append(events, newEvent(bestW, best, v))
		p1, v = bounce(best, p1, v)
		start = best.Point
	}
	return p1, v, events
}
