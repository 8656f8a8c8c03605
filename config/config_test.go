package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/pigfarm_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %s, want 1h", cfg.TokenTTL)
	}
	if cfg.LeaderboardSize != 10 {
		t.Errorf("LeaderboardSize = %d, want 10", cfg.LeaderboardSize)
	}
	if cfg.BackupEnabled() {
		t.Error("BackupEnabled() = true with no R2 credentials set")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LEADERBOARD_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %s, want 30m", cfg.TokenTTL)
	}
	if cfg.LeaderboardSize != 25 {
		t.Errorf("LeaderboardSize = %d, want 25", cfg.LeaderboardSize)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing DATABASE_URL", "DATABASE_URL"},
		{"missing JWT_SECRET", "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded without %s", tt.unset)
			}
		})
	}
}

func TestBackupEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_ACCESS_KEY_SECRET", "secret")
	t.Setenv("R2_BUCKET_NAME", "backups")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.BackupEnabled() {
		t.Error("BackupEnabled() = false with full R2 credentials")
	}
	if cfg.R2.BackupInterval != time.Hour {
		t.Errorf("BackupInterval = %s, want 1h default", cfg.R2.BackupInterval)
	}
}
