package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Optimizer struct {
		BruteForceStepDeg    float64 `env:"OPT_BRUTE_FORCE_STEP_DEG" envDefault:"1.0"`
		ToleranceDeg         float64 `env:"OPT_TOLERANCE_DEG" envDefault:"0.01"`
		LearningRate         float64 `env:"OPT_LEARNING_RATE" envDefault:"0.1"`
		GradientTolerance    float64 `env:"OPT_GRADIENT_TOLERANCE" envDefault:"0.01"`
		MaxIterations        int     `env:"OPT_MAX_ITERATIONS" envDefault:"1000"`
		SensitivityWindowDeg float64 `env:"OPT_SENSITIVITY_WINDOW_DEG" envDefault:"5.0"`
		SensitivitySamples   int     `env:"OPT_SENSITIVITY_SAMPLES" envDefault:"21"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Set default logging level based on environment
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
