package physics

// Defaults for course units, where a course is typically 100 units across
// and time is measured in seconds.
const (
	DefaultBallRadius = 1.0
	DefaultFriction   = 1.0
	MaxIterations     = 20 // collision resolutions per tick in earliest-first mode
)
