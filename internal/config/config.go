package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Engine  EngineConfig
	DB      DatabaseConfig
	Logging LoggingConfig
	RateRPS int
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

// EngineConfig holds the tuning constants of the decision algorithms. The
// defaults are the documented engine behavior; every value can be
// overridden through the environment for experiments.
type EngineConfig struct {
	// Urgency scoring weights: score = clamp(0,100,
	// SeverityWeight*severity*10 + PopulationWeight*ln(population) +
	// DelayWeight*delayTime).
	SeverityWeight   float64
	PopulationWeight float64
	DelayWeight      float64

	// MinutesPerUnit converts a map distance unit into travel minutes.
	MinutesPerUnit float64

	// DispatchTimeBudget caps the per-destination travel time considered
	// reachable in a dispatch plan.
	DispatchTimeBudget time.Duration

	// MatcherNodeBudget bounds the volunteer assignment backtracking
	// search. Past it the matcher falls back to greedy matching.
	MatcherNodeBudget int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Engine: EngineConfig{
			SeverityWeight:     getEnvFloat("URGENCY_SEVERITY_WEIGHT", 0.5),
			PopulationWeight:   getEnvFloat("URGENCY_POPULATION_WEIGHT", 0.2),
			DelayWeight:        getEnvFloat("URGENCY_DELAY_WEIGHT", 0.3),
			MinutesPerUnit:     getEnvFloat("MINUTES_PER_UNIT", 5),
			DispatchTimeBudget: getEnvDuration("DISPATCH_TIME_BUDGET", 4*time.Hour),
			MatcherNodeBudget:  getEnvInt("MATCHER_NODE_BUDGET", 200000),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/optirelief.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		RateRPS: getEnvInt("RATE_LIMIT_RPS", 10),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Engine.MinutesPerUnit <= 0 {
		return fmt.Errorf("minutes per unit must be positive, got %v", c.Engine.MinutesPerUnit)
	}
	if c.Engine.MatcherNodeBudget < 1 {
		return fmt.Errorf("matcher node budget must be at least 1, got %d", c.Engine.MatcherNodeBudget)
	}
	if c.Engine.DispatchTimeBudget <= 0 {
		return fmt.Errorf("dispatch time budget must be positive")
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Worker.Count)
	}
	if c.RateRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s, got %d", c.RateRPS)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
