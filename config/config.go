// config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// R2Config holds the Cloudflare R2 (S3-compatible) credentials used by the
// snapshot backup worker. Backups are skipped when any field is unset.
type R2Config struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`

	BackupInterval time.Duration `env:"BACKUP_INTERVAL" envDefault:"1h"`
}

// Config is built once at startup and injected into every component. The
// signing secret and DB connection live here rather than in package globals.
type Config struct {
	Port            int           `env:"PORT" envDefault:"3000"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	LeaderboardSize int           `env:"LEADERBOARD_SIZE" envDefault:"10"`

	R2 R2Config
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 10
	}
	return &cfg, nil
}

// BackupEnabled reports whether the R2 snapshot worker should run.
func (c *Config) BackupEnabled() bool {
	r2 := c.R2
	return r2.AccountID != "" && r2.AccessKeyID != "" && r2.AccessKeySecret != "" && r2.Bucket != ""
}
