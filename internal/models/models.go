package models

import (
	"database/sql"
	"time"
)

// Round statuses
const (
	RoundPlaying   = "playing"
	RoundHoled     = "holed"
	RoundAbandoned = "abandoned"
)

// Round is one ball played on one hole
type Round struct {
	ID                string       `db:"id" json:"id"`
	CourseID          string       `db:"course_id" json:"course_id"`
	CourseFingerprint string       `db:"course_fingerprint" json:"course_fingerprint"`
	Hole              int          `db:"hole" json:"hole"`
	HoleName          string       `db:"hole_name" json:"hole_name"`
	Par               int          `db:"par" json:"par"`
	Shots             int          `db:"shots" json:"shots"`
	Status            string       `db:"status" json:"status"`
	StartedAt         time.Time    `db:"started_at" json:"started_at"`
	FinishedAt        sql.NullTime `db:"finished_at" json:"finished_at,omitempty"`
}

// Shot is a single hit within a round
type Shot struct {
	ID         int64     `db:"id" json:"id"`
	RoundID    string    `db:"round_id" json:"round_id"`
	ShotNumber int       `db:"shot_number" json:"shot_number"`
	StartX     float64   `db:"start_x" json:"start_x"`
	StartY     float64   `db:"start_y" json:"start_y"`
	VelocityX  float64   `db:"velocity_x" json:"velocity_x"`
	VelocityY  float64   `db:"velocity_y" json:"velocity_y"`
	SimTime    float64   `db:"sim_time" json:"sim_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
