package config

import (
	"testing"

	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TICK_RATE_HZ", "120")
	t.Setenv("BALL_RADIUS", "0.75")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 120, cfg.TickRateHz)
	assert.Equal(t, 0.75, cfg.BallRadius)
	assert.True(t, cfg.MigrateOnStart)
}

func TestLoadFallsBackOnBadNumbers(t *testing.T) {
	t.Setenv("TICK_RATE_HZ", "fast")
	t.Setenv("MAX_HIT_SPEED", "lots")

	cfg := Load()
	assert.Equal(t, 60, cfg.TickRateHz)
	assert.Equal(t, 200.0, cfg.MaxHitSpeed)
}

func TestPhysicsConfig(t *testing.T) {
	cfg := &Config{BallRadius: 0.5, GoalCapture: "center", CollisionResolution: "sequential", MaxCollisionIterations: 8}
	pc, err := cfg.PhysicsConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.5, pc.BallRadius)
	assert.Equal(t, physics.CaptureCenter, pc.Capture)
	assert.Equal(t, physics.ResolveSequential, pc.Resolution)
	assert.Equal(t, 8, pc.MaxIterations)

	_, err = (&Config{GoalCapture: "rim"}).PhysicsConfig()
	assert.Error(t, err)
	_, err = (&Config{CollisionResolution: "simultaneous"}).PhysicsConfig()
	assert.Error(t, err)
}
