package round

import (
	"errors"
	"time"

	"github.com/playmatatu/puttputt/internal/course"
	"github.com/playmatatu/puttputt/internal/physics"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrRoundDone     = errors.New("round already finished")
	ErrInvalidHit    = errors.New("invalid hit")
	ErrNoHistory     = errors.New("round history unavailable")
	ErrUnknownCourse = course.ErrUnknownCourse
	ErrUnknownHole   = course.ErrUnknownHole
)

// UpdateType is the message type carried by every round update.
const UpdateType = "round_update"

// round is the manager's private record. state is replaced wholesale on
// every step and hit.
type round struct {
	id          string
	courseID    string
	fingerprint string
	holeNumber  int
	hole        *physics.Hole
	par         int
	state       physics.BallState
	startedAt   time.Time
	updatedAt   time.Time
}

// simTime converts wall clock time to seconds since the round started.
func (r *round) simTime(now time.Time) float64 {
	return now.Sub(r.startedAt).Seconds()
}

func (r *round) snapshot() Snapshot {
	return Snapshot{
		RoundID:     r.id,
		CourseID:    r.courseID,
		Fingerprint: r.fingerprint,
		Hole:        r.holeNumber,
		HoleName:    r.hole.Name,
		Par:         r.par,
		Position:    r.state.Position,
		Velocity:    r.state.Velocity,
		Shots:       r.state.Shots,
		Done:        r.state.Done,
		SimTime:     r.state.Time,
		StartedAt:   r.startedAt,
		UpdatedAt:   r.updatedAt,
	}
}

func (r *round) update(tick physics.Tick) Update {
	return Update{
		Type:       UpdateType,
		RoundID:    r.id,
		Position:   r.state.Position,
		Velocity:   r.state.Velocity,
		Shots:      r.state.Shots,
		Done:       r.state.Done,
		SimTime:    r.state.Time,
		Collisions: tick.Collisions,
		Captured:   tick.Captured,
	}
}

// Snapshot is the externally visible state of a round.
type Snapshot struct {
	RoundID     string       `json:"round_id"`
	CourseID    string       `json:"course"`
	Fingerprint string       `json:"fingerprint"`
	Hole        int          `json:"hole"`
	HoleName    string       `json:"hole_name"`
	Par         int          `json:"par"`
	Position    physics.Vec2 `json:"position"`
	Velocity    physics.Vec2 `json:"velocity"`
	Shots       int          `json:"shots"`
	Done        bool         `json:"done"`
	SimTime     float64      `json:"sim_time"`
	StartedAt   time.Time    `json:"started_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Update is pushed to watchers after every hit and every tick that moved
// the ball.
type Update struct {
	Type       string                   `json:"type"`
	RoundID    string                   `json:"round_id"`
	Position   physics.Vec2             `json:"position"`
	Velocity   physics.Vec2             `json:"velocity"`
	Shots      int                      `json:"shots"`
	Done       bool                     `json:"done"`
	SimTime    float64                  `json:"sim_time"`
	Collisions []physics.CollisionEvent `json:"collisions,omitempty"`
	Captured   bool                     `json:"captured,omitempty"`
}
