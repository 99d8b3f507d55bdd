package config

import (
	"fmt"

	"github.com/playmatatu/puttputt/internal/physics"
)

// PhysicsConfig translates the simulation settings into an engine config.
func (c *Config) PhysicsConfig() (physics.Config, error) {
	pc := physics.DefaultConfig()
	if c.BallRadius > 0 {
		pc.BallRadius = c.BallRadius
	}
	if c.MaxCollisionIterations > 0 {
		pc.MaxIterations = c.MaxCollisionIterations
	}

	switch c.GoalCapture {
	case "", "inset":
		pc.Capture = physics.CaptureInset
	case "center":
		pc.Capture = physics.CaptureCenter
	default:
		return pc, fmt.Errorf("unknown GOAL_CAPTURE %q", c.GoalCapture)
	}

	switch c.CollisionResolution {
	case "", "earliest":
		pc.Resolution = physics.ResolveEarliest
	case "sequential":
		pc.Resolution = physics.ResolveSequential
	default:
		return pc, fmt.Errorf("unknown COLLISION_RESOLUTION %q", c.CollisionResolution)
	}

	return pc, nil
}
