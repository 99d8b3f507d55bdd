package physics

// Obstacle produces the ordered walls it presents at simulated time t. The
// returned slice must be treated as read-only.
type Obstacle interface {
	WallsAt(t float64) []Wall
}

// Shape is an obstacle defined by authored vertices, so it can be moved
// rigidly and have its walls rebuilt from the moved vertices.
type Shape interface {
	Obstacle
	Transform(a Affine) Shape
}

// Containment declares which side of a polygon the ball lives on.
type Containment int

const (
	// Contains keeps the ball inside the polygon (a course boundary).
	Contains Containment = iota
	// Excludes keeps the ball outside the polygon (a solid obstacle).
	Excludes
)

func (c Containment) String() string {
	if c == Excludes {
		return "excludes"
	}
	return "contains"
}

// Polygon is a closed polygon that either contains or excludes the ball.
// Vertices may be authored in either winding; they are stored in the winding
// whose left normals face the ball's side.
type Polygon struct {
	Vertices    []Vec2
	Containment Containment
	Radius      float64

	walls []Wall
}

func NewPolygon(c Containment, radius float64, vertices ...Vec2) *Polygon {
	vs := append([]Vec2(nil), vertices...)

	area := SignedArea(vs)
	if (c == Contains && area < 0) || (c == Excludes && area > 0) {
		vs = reversed(vs)
	}

	p := &Polygon{Vertices: vs, Containment: c, Radius: radius}
	p.walls = polygonWalls(vs, radius)
	return p
}

// NewBoundary builds a polygon the ball is confined to.
func NewBoundary(radius float64, vertices ...Vec2) *Polygon {
	return NewPolygon(Contains, radius, vertices...)
}

// NewObstacle builds a solid polygon the ball bounces off from outside.
func NewObstacle(radius float64, vertices ...Vec2) *Polygon {
	return NewPolygon(Excludes, radius, vertices...)
}

// polygonWalls emits, for each vertex i, the edge i->i+1 followed by vertex i.
func polygonWalls(vs []Vec2, radius float64) []Wall {
	n := len(vs)
	walls := make([]Wall, 0, 2*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		walls = append(walls, NewSegmentWall(vs[i], vs[j], radius))
		walls = append(walls, NewPointWall(vs[i], radius))
	}
	return walls
}

func (p *Polygon) WallsAt(float64) []Wall {
	return p.walls
}

func (p *Polygon) Transform(a Affine) Shape {
	return NewPolygon(p.Containment, p.Radius, a.ApplyAll(p.Vertices)...)
}

// Side names the side of a directed edge, looking from its start to its end
// with the y axis pointing up.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// OneWay is a single edge that stops a ball arriving from the blocked side
// and lets it pass from the other. Its endpoints are solid vertices.
type OneWay struct {
	From, To Vec2
	Blocked  Side
	Radius   float64

	walls []Wall
}

func NewOneWay(radius float64, from, to Vec2, blocked Side) *OneWay {
	o := &OneWay{From: from, To: to, Blocked: blocked, Radius: radius}

	p, q := from, to
	if blocked == Right {
		p, q = to, from
	}
	o.walls = []Wall{
		NewSegmentWall(p, q, radius),
		NewPointWall(from, radius),
		NewPointWall(to, radius),
	}
	return o
}

func (o *OneWay) WallsAt(float64) []Wall {
	return o.walls
}

func (o *OneWay) Transform(a Affine) Shape {
	return NewOneWay(o.Radius, a.Apply(o.From), a.Apply(o.To), o.Blocked)
}

// Sprite is a solid axis-aligned rectangle.
type Sprite struct {
	Min, Size Vec2
	Radius    float64

	body *Polygon
}

func NewSprite(radius float64, min, size Vec2) *Sprite {
	s := &Sprite{Min: min, Size: size, Radius: radius}
	s.body = NewObstacle(radius, s.Corners()...)
	return s
}

// Corners lists the rectangle's corners starting at Min.
func (s *Sprite) Corners() []Vec2 {
	return []Vec2{
		s.Min,
		{X: s.Min.X + s.Size.X, Y: s.Min.Y},
		s.Min.Plus(s.Size),
		{X: s.Min.X, Y: s.Min.Y + s.Size.Y},
	}
}

func (s *Sprite) WallsAt(t float64) []Wall {
	return s.body.WallsAt(t)
}

// Transform returns the moved rectangle as a polygon, since a rotated sprite
// is no longer axis-aligned.
func (s *Sprite) Transform(a Affine) Shape {
	return s.body.Transform(a)
}
