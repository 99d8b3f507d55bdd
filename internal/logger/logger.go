package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger handed to services.
type Logger = zap.SugaredLogger

// New builds a logger named after the service. Production environments get
// sampled JSON on stderr; anything else gets coloured console output.
func New(service, environment string) *Logger {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.Config{
			Level:       zap.NewAtomicLevelAt(zapcore.InfoLevel),
			Development: false,
			Sampling: &zap.SamplingConfig{
				Initial:    100,
				Thereafter: 100,
			},
			Encoding:         "json",
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			DisableCaller:    true,
		}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Named(service).Sugar()
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return zap.NewNop().Sugar()
}
