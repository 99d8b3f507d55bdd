package round

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playmatatu/puttputt/internal/course"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/models"
	"github.com/playmatatu/puttputt/internal/physics"
)

// Store keeps the latest snapshot of each live round outside the process.
// Load reports ErrRoundNotFound for unknown rounds.
type Store interface {
	Save(ctx context.Context, s Snapshot) error
	Load(ctx context.Context, roundID string) (Snapshot, error)
	Delete(ctx context.Context, roundID string) error
}

// Recorder writes round and shot history.
type Recorder interface {
	RecordRound(ctx context.Context, r models.Round) error
	RecordShot(ctx context.Context, s models.Shot) error
	FinishRound(ctx context.Context, roundID string, shots int, status string, at time.Time) error
}

// History reads recorded rounds back. Round reports ErrRoundNotFound for
// unknown rounds.
type History interface {
	Round(ctx context.Context, roundID string) (models.Round, error)
	Shots(ctx context.Context, roundID string) ([]models.Shot, error)
}

// Publisher fans round updates out to watchers.
type Publisher interface {
	Publish(ctx context.Context, u Update) error
}

type Options struct {
	MaxHitSpeed float64
	// RoundTTL drops rounds that have not been hit or moved for this long.
	// Zero keeps rounds forever.
	RoundTTL time.Duration
}

// Manager owns every live round. One mutex guards the table; persistence
// and publication run after the lock is released and never fail a call.
type Manager struct {
	catalog   *course.Catalog
	engine    *physics.Engine
	opts      Options
	store     Store
	recorder  Recorder
	publisher Publisher
	log       *logger.Logger

	mu     sync.Mutex
	rounds map[string]*round
}

func NewManager(catalog *course.Catalog, engine *physics.Engine, opts Options, log *logger.Logger) *Manager {
	return &Manager{
		catalog: catalog,
		engine:  engine,
		opts:    opts,
		log:     log,
		rounds:  make(map[string]*round),
	}
}

func (m *Manager) WithStore(s Store) *Manager         { m.store = s; return m }
func (m *Manager) WithRecorder(r Recorder) *Manager   { m.recorder = r; return m }
func (m *Manager) WithPublisher(p Publisher) *Manager { m.publisher = p; return m }

// Start places a new ball on the tee of the given hole.
func (m *Manager) Start(ctx context.Context, courseID string, hole int, now time.Time) (Snapshot, error) {
	crs, err := m.catalog.Get(courseID)
	if err != nil {
		return Snapshot{}, err
	}
	h, spec, err := crs.Hole(hole)
	if err != nil {
		return Snapshot{}, err
	}

	r := &round{
		id:          uuid.NewString(),
		courseID:    crs.ID,
		fingerprint: crs.Fingerprint,
		holeNumber:  hole,
		hole:        h,
		par:         spec.Par,
		state:       m.engine.Initialize(h, 0),
		startedAt:   now,
		updatedAt:   now,
	}

	m.mu.Lock()
	m.rounds[r.id] = r
	snap := r.snapshot()
	m.mu.Unlock()

	m.log.Infow("round started", "round", r.id, "course", r.courseID, "hole", hole)

	if m.recorder != nil {
		if err := m.recorder.RecordRound(ctx, models.Round{
			ID:                r.id,
			CourseID:          r.courseID,
			CourseFingerprint: r.fingerprint,
			Hole:              hole,
			HoleName:          h.Name,
			Par:               spec.Par,
			Status:            models.RoundPlaying,
			StartedAt:         now,
		}); err != nil {
			m.log.Warnw("record round failed", "round", r.id, "error", err)
		}
	}
	m.save(ctx, snap)

	return snap, nil
}

// Get returns the current snapshot of a round. Rounds owned by another
// instance are read from the store.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	m.mu.Lock()
	r, ok := m.rounds[id]
	if ok {
		snap := r.snapshot()
		m.mu.Unlock()
		return snap, nil
	}
	m.mu.Unlock()

	if m.store == nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	return m.store.Load(ctx, id)
}

// Shots returns the recorded shot history of a round.
func (m *Manager) Shots(ctx context.Context, id string) (models.Round, []models.Shot, error) {
	h, ok := m.recorder.(History)
	if !ok {
		return models.Round{}, nil, ErrNoHistory
	}
	rd, err := h.Round(ctx, id)
	if err != nil {
		return models.Round{}, nil, err
	}
	shots, err := h.Shots(ctx, id)
	if err != nil {
		return models.Round{}, nil, err
	}
	return rd, shots, nil
}

// Hit strikes the ball. The round is first brought up to now so a ball at
// rest does not make up for lost time on the next tick.
func (m *Manager) Hit(ctx context.Context, id string, v physics.Vec2, now time.Time) (Snapshot, error) {
	if err := ValidateHit(v, m.opts.MaxHitSpeed); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	r, ok := m.rounds[id]
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	if r.state.Done {
		m.mu.Unlock()
		return Snapshot{}, ErrRoundDone
	}

	caughtUp, tick := m.engine.Step(r.hole, r.state, r.simTime(now))
	if caughtUp.Done {
		r.state = caughtUp
		r.updatedAt = now
		snap, upd := r.snapshot(), r.update(tick)
		m.mu.Unlock()
		m.finished(ctx, snap, now)
		m.publish(ctx, upd)
		return Snapshot{}, ErrRoundDone
	}

	start := caughtUp.Position
	r.state = m.engine.Hit(caughtUp, v)
	r.updatedAt = now
	snap, upd := r.snapshot(), r.update(tick)
	m.mu.Unlock()

	m.log.Debugw("hit", "round", id, "vx", v.X, "vy", v.Y, "shots", snap.Shots)

	if m.recorder != nil {
		if err := m.recorder.RecordShot(ctx, models.Shot{
			RoundID:    id,
			ShotNumber: snap.Shots,
			StartX:     start.X,
			StartY:     start.Y,
			VelocityX:  v.X,
			VelocityY:  v.Y,
			SimTime:    snap.SimTime,
			CreatedAt:  now,
		}); err != nil {
			m.log.Warnw("record shot failed", "round", id, "error", err)
		}
	}
	m.save(ctx, snap)
	m.publish(ctx, upd)

	return snap, nil
}

func changed(prev, next physics.BallState, tick physics.Tick) bool {
	return next.Done != prev.Done ||
		next.Position != prev.Position ||
		next.Velocity != prev.Velocity ||
		len(tick.Collisions) > 0
}

// Advance steps every unfinished ball to now and expires idle rounds. Only
// rounds whose ball moved are saved and published; their updates are
// returned.
func (m *Manager) Advance(ctx context.Context, now time.Time) []Update {
	var (
		updates  []Update
		snaps    []Snapshot
		finished []Snapshot
		expired  []Snapshot
	)

	m.mu.Lock()
	for id, r := range m.rounds {
		if m.opts.RoundTTL > 0 && now.Sub(r.updatedAt) > m.opts.RoundTTL && !r.state.Moving() {
			delete(m.rounds, id)
			expired = append(expired, r.snapshot())
			continue
		}
		if r.state.Done {
			continue
		}

		// Balls at rest are stepped too: a slope can start them rolling.
		prev := r.state
		next, tick := m.engine.Step(r.hole, prev, r.simTime(now))
		r.state = next
		if !changed(prev, next, tick) {
			continue
		}
		r.updatedAt = now

		snap := r.snapshot()
		updates = append(updates, r.update(tick))
		snaps = append(snaps, snap)
		if next.Done {
			finished = append(finished, snap)
		}
	}
	m.mu.Unlock()

	for _, u := range updates {
		m.publish(ctx, u)
	}
	for _, s := range snaps {
		m.save(ctx, s)
	}
	for _, s := range finished {
		m.finished(ctx, s, now)
	}
	for _, s := range expired {
		m.expire(ctx, s, now)
	}

	return updates
}

// Len reports the number of live rounds.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rounds)
}

func (m *Manager) finished(ctx context.Context, s Snapshot, now time.Time) {
	m.log.Infow("ball holed", "round", s.RoundID, "shots", s.Shots, "par", s.Par)
	if m.recorder == nil {
		return
	}
	if err := m.recorder.FinishRound(ctx, s.RoundID, s.Shots, models.RoundHoled, now); err != nil {
		m.log.Warnw("finish round failed", "round", s.RoundID, "error", err)
	}
}

func (m *Manager) expire(ctx context.Context, s Snapshot, now time.Time) {
	m.log.Infow("round expired", "round", s.RoundID, "done", s.Done)
	if m.store != nil {
		if err := m.store.Delete(ctx, s.RoundID); err != nil {
			m.log.Warnw("delete snapshot failed", "round", s.RoundID, "error", err)
		}
	}
	if m.recorder != nil && !s.Done {
		if err := m.recorder.FinishRound(ctx, s.RoundID, s.Shots, models.RoundAbandoned, now); err != nil {
			m.log.Warnw("abandon round failed", "round", s.RoundID, "error", err)
		}
	}
}

func (m *Manager) save(ctx context.Context, s Snapshot) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, s); err != nil {
		m.log.Warnw("save snapshot failed", "round", s.RoundID, "error", err)
	}
}

func (m *Manager) publish(ctx context.Context, u Update) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, u); err != nil {
		m.log.Warnw("publish update failed", "round", u.RoundID, "error", err)
	}
}
