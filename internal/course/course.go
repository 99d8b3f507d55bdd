package course

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/playmatatu/puttputt/internal/physics"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCourse = errors.New("unknown course")
	ErrUnknownHole   = errors.New("unknown hole")
)

//go:embed default.yaml
var defaultCourse []byte

// Course is a parsed, validated course with its holes built for one ball
// radius.
type Course struct {
	File
	// Fingerprint identifies the exact source bytes, so stored rounds can be
	// matched to the layout they were played on.
	Fingerprint string
	holes       []*physics.Hole
}

// Summary is the listing view of a course.
type Summary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Fingerprint string   `json:"fingerprint"`
	Holes       []string `json:"holes"`
	Pars        []int    `json:"pars"`
}

// Parse decodes a YAML course. JSON is accepted too, since it is valid YAML.
func Parse(data []byte, radius float64) (*Course, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if f.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCourse)
	}
	if len(f.Holes) == 0 {
		return nil, fmt.Errorf("%w: course %q has no holes", ErrInvalidCourse, f.ID)
	}

	c := &Course{
		File:        f,
		Fingerprint: strconv.FormatUint(xxhash.Sum64(data), 16),
		holes:       make([]*physics.Hole, len(f.Holes)),
	}
	for i := range f.Holes {
		h, err := f.Holes[i].Build(radius)
		if err != nil {
			return nil, fmt.Errorf("course %q hole %d: %w", f.ID, i+1, err)
		}
		c.holes[i] = h
	}
	return c, nil
}

// LoadFile reads and parses a course file.
func LoadFile(path string, radius float64) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course %s: %w", path, err)
	}
	return Parse(data, radius)
}

// Default returns the built-in course.
func Default(radius float64) (*Course, error) {
	return Parse(defaultCourse, radius)
}

// Hole returns the playable hole and its authored layout. Holes are
// numbered from 1.
func (c *Course) Hole(n int) (*physics.Hole, *HoleSpec, error) {
	if n < 1 || n > len(c.holes) {
		return nil, nil, fmt.Errorf("%w: %s has %d holes, asked for %d", ErrUnknownHole, c.ID, len(c.holes), n)
	}
	return c.holes[n-1], &c.Holes[n-1], nil
}

func (c *Course) Summary() Summary {
	s := Summary{ID: c.ID, Name: c.Name, Fingerprint: c.Fingerprint}
	for _, h := range c.Holes {
		s.Holes = append(s.Holes, h.Name)
		s.Pars = append(s.Pars, h.Par)
	}
	return s
}

// Catalog holds the courses a server offers. It is read-only after start up.
type Catalog struct {
	courses map[string]*Course
}

func NewCatalog(courses ...*Course) (*Catalog, error) {
	c := &Catalog{courses: make(map[string]*Course, len(courses))}
	for _, crs := range courses {
		if _, dup := c.courses[crs.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate course id %q", ErrInvalidCourse, crs.ID)
		}
		c.courses[crs.ID] = crs
	}
	return c, nil
}

func (c *Catalog) Get(id string) (*Course, error) {
	crs, ok := c.courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCourse, id)
	}
	return crs, nil
}

// List returns course summaries ordered by id.
func (c *Catalog) List() []Summary {
	out := make([]Summary, 0, len(c.courses))
	for _, crs := range c.courses {
		out = append(out, crs.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
