package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Course
	CourseFile string

	// Simulation
	TickRateHz             int
	BallRadius             float64
	GoalCapture            string // "inset" or "center"
	CollisionResolution    string // "earliest" or "sequential"
	MaxCollisionIterations int
	MaxHitSpeed            float64

	// Rounds
	RoundTTLMinutes      int
	RoundTokenTTLMinutes int

	// Security
	JWTSecret string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/puttputt?sslmode=disable"),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Course
		CourseFile: getEnv("COURSE_FILE", ""),

		// Simulation
		TickRateHz:             getEnvInt("TICK_RATE_HZ", 60),
		BallRadius:             getEnvFloat("BALL_RADIUS", 1),
		GoalCapture:            getEnv("GOAL_CAPTURE", "inset"),
		CollisionResolution:    getEnv("COLLISION_RESOLUTION", "earliest"),
		MaxCollisionIterations: getEnvInt("MAX_COLLISION_ITERATIONS", 20),
		MaxHitSpeed:            getEnvFloat("MAX_HIT_SPEED", 200),

		// Rounds
		RoundTTLMinutes:      getEnvInt("ROUND_TTL_MINUTES", 60),
		RoundTokenTTLMinutes: getEnvInt("ROUND_TOKEN_TTL_MINUTES", 120),

		// Security
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
