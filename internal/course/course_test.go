package course

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCourse(t *testing.T) {
	c, err := Default(physics.DefaultBallRadius)
	require.NoError(t, err)
	assert.Equal(t, "putnam", c.ID)
	assert.Len(t, c.Holes, 4)
	assert.NotEmpty(t, c.Fingerprint)

	h, spec, err := c.Hole(1)
	require.NoError(t, err)
	assert.Equal(t, "Hole 1", h.Name)
	assert.Equal(t, "hole1.png", spec.Background)
	assert.Equal(t, physics.NewVec2(10, 10), h.Tee)
	assert.Equal(t, physics.NewVec2(90, 90), h.Goal)
	assert.Equal(t, 2.0, h.GoalRadius)
	require.Len(t, h.Obstacles, 1)
	assert.Len(t, h.Obstacles[0].WallsAt(0), 8)

	s := h.SurfaceAt(physics.NewVec2(50, 50))
	assert.Equal(t, 1.0, s.Friction)
	assert.True(t, s.Gravity.IsZero())
}

func TestDefaultHoleOnePlaysLikeTheDemo(t *testing.T) {
	c, err := Default(physics.DefaultBallRadius)
	require.NoError(t, err)
	h, _, err := c.Hole(1)
	require.NoError(t, err)

	e := physics.NewEngine(physics.DefaultConfig())
	s := e.Hit(e.Initialize(h, 0), physics.NewVec2(10, 10))
	for now := 1.0; s.Moving() && now < 60; now++ {
		s, _ = e.Step(h, s, now)
	}

	assert.False(t, s.Moving())
	assert.False(t, s.Done)
	assert.InDelta(t, s.Position.X, s.Position.Y, 1e-9)
	assert.Greater(t, s.Position.X, 10.0)
	assert.Less(t, s.Position.X, 90.0)
}

func TestHoleNumbering(t *testing.T) {
	c, err := Default(physics.DefaultBallRadius)
	require.NoError(t, err)

	_, _, err = c.Hole(0)
	assert.ErrorIs(t, err, ErrUnknownHole)
	_, _, err = c.Hole(5)
	assert.ErrorIs(t, err, ErrUnknownHole)
	h, _, err := c.Hole(4)
	require.NoError(t, err)
	assert.Equal(t, "Windmill", h.Name)
}

func TestFingerprintTracksBytes(t *testing.T) {
	a, err := Parse(defaultCourse, 1)
	require.NoError(t, err)
	b, err := Parse(defaultCourse, 1)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	edited := append(append([]byte{}, defaultCourse...), '\n')
	c, err := Parse(edited, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
    "id": "flat",
    "name": "Flat",
    "holes": [{
      "name": "Only",
      "par": 1,
      "tee": [5, 5],
      "goal": [15, 5],
      "goal_radius": 3,
      "obstacles": [{"type": "boundary", "vertices": [[0,0],[20,0],[20,10],[0,10]]}]
    }]
}`)
	c, err := Parse(data, 0.5)
	require.NoError(t, err)
	h, _, err := c.Hole(1)
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultFriction, h.SurfaceAt(h.Tee).Friction)

	p, ok := h.Obstacles[0].(*physics.Polygon)
	require.True(t, ok)
	assert.Equal(t, 0.5, p.Radius)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, defaultCourse, 0o644))

	c, err := LoadFile(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "putnam", c.ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), 1)
	assert.Error(t, err)
}

func TestSurfaceRegions(t *testing.T) {
	c, err := Default(physics.DefaultBallRadius)
	require.NoError(t, err)

	block, _, err := c.Hole(2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, block.SurfaceAt(physics.NewVec2(65, 10)).Friction)
	assert.Equal(t, 1.0, block.SurfaceAt(physics.NewVec2(65, 50)).Friction)

	windmill, _, err := c.Hole(4)
	require.NoError(t, err)
	ramp := windmill.SurfaceAt(physics.NewVec2(50, 25))
	assert.Equal(t, physics.NewVec2(0, -3), ramp.Gravity)
	assert.Equal(t, 1.0, ramp.Friction)
	assert.True(t, windmill.SurfaceAt(physics.NewVec2(50, 50)).Gravity.IsZero())
}

func TestInsidePolygon(t *testing.T) {
	square := []physics.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, insidePolygon(physics.NewVec2(5, 5), square))
	assert.False(t, insidePolygon(physics.NewVec2(15, 5), square))
	assert.False(t, insidePolygon(physics.NewVec2(5, -1), square))

	cw := []physics.Vec2{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	assert.True(t, insidePolygon(physics.NewVec2(5, 5), cw))
}

func TestMovingObstacles(t *testing.T) {
	c, err := Default(physics.DefaultBallRadius)
	require.NoError(t, err)
	h, _, err := c.Hole(4)
	require.NoError(t, err)

	arm, ok := h.Obstacles[1].(*physics.TimeVarying)
	require.True(t, ok)
	before := arm.WallsAt(0)
	after := arm.WallsAt(1)
	require.Len(t, before, len(after))
	assert.NotEqual(t, before[0], after[0])
}

func TestValidation(t *testing.T) {
	base := func() HoleSpec {
		return HoleSpec{
			Name:       "t",
			Tee:        Point{1, 1},
			Goal:       Point{5, 5},
			GoalRadius: 2,
			Obstacles: []ObstacleSpec{
				{Type: TypeBoundary, Vertices: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
			},
		}
	}
	neg := -1.0
	nan := math.NaN()
	inf := math.Inf(1)
	spin := func(m MotionSpec) func(h *HoleSpec) {
		return func(h *HoleSpec) {
			h.Obstacles = append(h.Obstacles, ObstacleSpec{
				Type: TypeSprite, Min: Point{2, 2}, Size: Point{1, 1}, Motion: []MotionSpec{m},
			})
		}
	}

	cases := map[string]func(h *HoleSpec){
		"zero goal radius": func(h *HoleSpec) { h.GoalRadius = 0 },
		"no obstacles":     func(h *HoleSpec) { h.Obstacles = nil },
		"two vertices": func(h *HoleSpec) {
			h.Obstacles[0].Vertices = h.Obstacles[0].Vertices[:2]
		},
		"zero area": func(h *HoleSpec) {
			h.Obstacles[0].Vertices = []Point{{0, 0}, {5, 5}, {10, 10}}
		},
		"unknown type": func(h *HoleSpec) { h.Obstacles[0].Type = "lake" },
		"zero-length gate": func(h *HoleSpec) {
			h.Obstacles = append(h.Obstacles, ObstacleSpec{Type: TypeOneWay, From: Point{2, 2}, To: Point{2, 2}})
		},
		"bad side": func(h *HoleSpec) {
			h.Obstacles = append(h.Obstacles, ObstacleSpec{Type: TypeOneWay, From: Point{2, 2}, To: Point{4, 2}, Blocked: "up"})
		},
		"flat sprite": func(h *HoleSpec) {
			h.Obstacles = append(h.Obstacles, ObstacleSpec{Type: TypeSprite, Min: Point{2, 2}, Size: Point{3, 0}})
		},
		"bad motion": func(h *HoleSpec) {
			h.Obstacles[0].Motion = []MotionSpec{{Type: "wobble"}}
		},
		"zero axis": func(h *HoleSpec) {
			h.Obstacles[0].Motion = []MotionSpec{{Type: MotionOscillate, Amplitude: 1}}
		},
		"negative friction": func(h *HoleSpec) { h.Surface.Friction = &neg },
		"nan friction":      func(h *HoleSpec) { h.Surface.Friction = &nan },
		"nan gravity":       func(h *HoleSpec) { h.Surface.Gravity = Point{nan, 0} },
		"infinite region gravity": func(h *HoleSpec) {
			h.Surface.Regions = []RegionSpec{{
				Polygon: []Point{{0, 0}, {5, 0}, {5, 5}},
				Gravity: &Point{0, inf},
			}}
		},
		"nan region friction": func(h *HoleSpec) {
			h.Surface.Regions = []RegionSpec{{Polygon: []Point{{0, 0}, {5, 0}, {5, 5}}, Friction: &nan}}
		},
		"infinite pivot":       spin(MotionSpec{Type: MotionRotate, Pivot: Point{inf, 0}, Rate: 1}),
		"nan rate":             spin(MotionSpec{Type: MotionRotate, Rate: nan}),
		"nan phase":            spin(MotionSpec{Type: MotionRotate, Rate: 1, Phase: nan}),
		"infinite axis":        spin(MotionSpec{Type: MotionOscillate, Axis: Point{inf, 1}, Amplitude: 1, Omega: 1}),
		"nan amplitude":        spin(MotionSpec{Type: MotionOscillate, Axis: Point{1, 0}, Amplitude: nan, Omega: 1}),
		"infinite omega":       spin(MotionSpec{Type: MotionOscillate, Axis: Point{1, 0}, Amplitude: 1, Omega: inf}),
		"nan velocity":         spin(MotionSpec{Type: MotionTranslate, Velocity: Point{0, nan}}),
		"cup as small as ball": func(h *HoleSpec) { h.GoalRadius = 1 },
		"bad region": func(h *HoleSpec) {
			h.Surface.Regions = []RegionSpec{{Polygon: []Point{{0, 0}, {1, 1}}}}
		},
	}

	ok := base()
	require.NoError(t, ok.Validate())

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			h := base()
			mutate(&h)
			_, err := h.Build(1)
			assert.ErrorIs(t, err, ErrInvalidCourse)
		})
	}
}

func TestParseRejectsNonFiniteYAML(t *testing.T) {
	data := []byte(`
id: bad
holes:
  - name: Slope
    tee: [5, 5]
    goal: [15, 5]
    goal_radius: 2
    surface:
      gravity: [.nan, 0]
    obstacles:
      - type: boundary
        vertices: [[0, 0], [20, 0], [20, 10], [0, 10]]
`)
	_, err := Parse(data, 1)
	assert.ErrorIs(t, err, ErrInvalidCourse)

	data = []byte(`
id: bad
holes:
  - name: Spinner
    tee: [5, 5]
    goal: [15, 5]
    goal_radius: 2
    obstacles:
      - type: boundary
        vertices: [[0, 0], [20, 0], [20, 10], [0, 10]]
      - type: sprite
        min: [8, 4]
        size: [2, 2]
        motion:
          - type: rotate
            pivot: [.inf, 0]
            rate: .nan
`)
	_, err = Parse(data, 1)
	assert.ErrorIs(t, err, ErrInvalidCourse)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("holes: ["), 1)
	assert.Error(t, err)

	_, err = Parse([]byte("name: nameless\nholes: []\n"), 1)
	assert.ErrorIs(t, err, ErrInvalidCourse)

	_, err = Parse([]byte("id: empty\nholes: []\n"), 1)
	assert.ErrorIs(t, err, ErrInvalidCourse)
}

func TestCatalog(t *testing.T) {
	c, err := Default(1)
	require.NoError(t, err)

	cat, err := NewCatalog(c)
	require.NoError(t, err)
	got, err := cat.Get("putnam")
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = cat.Get("augusta")
	assert.ErrorIs(t, err, ErrUnknownCourse)

	list := cat.List()
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Hole 1", "The Block", "Gatehouse", "Windmill"}, list[0].Holes)
	assert.Equal(t, []int{2, 3, 3, 4}, list[0].Pars)

	_, err = NewCatalog(c, c)
	assert.ErrorIs(t, err, ErrInvalidCourse)
}
