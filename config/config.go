package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. The
// attendance timings are part of it so tests can shrink them.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	BaseURL      string

	SessionWindow time.Duration // QR validity, 2 minutes
	LateThreshold time.Duration // present/late cutoff from session creation
	SweepInterval time.Duration // expired-session sweep cadence
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	return Config{
		Port:          getEnv("PORT", "5000"),
		DatabasePath:  getEnv("DB_PATH", "attendiq.db"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:5000"),
		SessionWindow: getDuration("SESSION_WINDOW", 2*time.Minute),
		LateThreshold: getDuration("LATE_THRESHOLD", 60*time.Second),
		SweepInterval: getDuration("SWEEP_INTERVAL", 60*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
