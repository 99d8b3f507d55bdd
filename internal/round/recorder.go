package round

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/puttputt/internal/models"
)

// SQLRecorder writes round history to Postgres.
type SQLRecorder struct {
	db *sqlx.DB
}

func NewSQLRecorder(db *sqlx.DB) *SQLRecorder {
	return &SQLRecorder{db: db}
}

func (r *SQLRecorder) RecordRound(ctx context.Context, rd models.Round) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO rounds (id, course_id, course_fingerprint, hole, hole_name, par, shots, status, started_at)
		VALUES (:id, :course_id, :course_fingerprint, :hole, :hole_name, :par, :shots, :status, :started_at)
	`, rd)
	return err
}

func (r *SQLRecorder) RecordShot(ctx context.Context, s models.Shot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO shots (round_id, shot_number, start_x, start_y, velocity_x, velocity_y, sim_time, created_at)
		VALUES (:round_id, :shot_number, :start_x, :start_y, :velocity_x, :velocity_y, :sim_time, :created_at)
	`, s); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE rounds SET shots = $1 WHERE id = $2`, s.ShotNumber, s.RoundID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLRecorder) FinishRound(ctx context.Context, roundID string, shots int, status string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE rounds SET shots = $1, status = $2, finished_at = $3 WHERE id = $4
	`, shots, status, finishedAt(at), roundID)
	return err
}

// Round loads one stored round.
func (r *SQLRecorder) Round(ctx context.Context, roundID string) (models.Round, error) {
	var rd models.Round
	err := r.db.GetContext(ctx, &rd, `SELECT * FROM rounds WHERE id = $1`, roundID)
	if errors.Is(err, sql.ErrNoRows) {
		return rd, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}
	return rd, err
}

// Shots lists a round's shots in order.
func (r *SQLRecorder) Shots(ctx context.Context, roundID string) ([]models.Shot, error) {
	var shots []models.Shot
	err := r.db.SelectContext(ctx, &shots, `SELECT * FROM shots WHERE round_id = $1 ORDER BY shot_number`, roundID)
	return shots, err
}

// finishedAt is the nullable completion time stored with a round.
func finishedAt(at time.Time) sql.NullTime {
	return sql.NullTime{Time: at, Valid: !at.IsZero()}
}
