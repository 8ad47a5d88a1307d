// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected default database type postgres, got %s", cfg.DatabaseType)
	}
	if len(cfg.Candidates) != 3 {
		t.Errorf("expected 3 default candidates, got %v", cfg.Candidates)
	}
	if cfg.BurstThreshold != 5 || cfg.IPVoteLimit != 10 || cfg.RateLimit != 2 {
		t.Errorf("unexpected default thresholds: %+v", cfg)
	}
	if cfg.ReputationURL != "http://ip-api.com/json" {
		t.Errorf("unexpected default reputation URL: %s", cfg.ReputationURL)
	}

	want, _ := time.Parse(time.RFC3339, DefaultPollClose)
	if !cfg.PollCloseTime.Equal(want) {
		t.Errorf("expected default close time %v, got %v", want, cfg.PollCloseTime)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY", "env-operator-key")
	os.Setenv("TEST_MODE", "true")
	os.Setenv("CANDIDATES", "alice,bob")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("expected DATABASE_URL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.AdminKey != "env-operator-key" {
		t.Errorf("expected ADMIN_KEY from env, got %s", cfg.AdminKey)
	}
	if !cfg.TestMode {
		t.Error("expected TEST_MODE=true to enable test mode")
	}
	if len(cfg.Candidates) != 2 || cfg.Candidates[0] != "alice" {
		t.Errorf("expected candidates from env, got %v", cfg.Candidates)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-t", "sqlite"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name string
		args []string
	}{
		{"bad database type", []string{"-t", "mysql"}},
		{"bad poll close", []string{"-poll-close", "tomorrow"}},
		{"empty candidates", []string{"-candidates", " , "}},
		{"zero rate limit", []string{"-rate-limit", "0"}},
		{"negative burst threshold", []string{"-burst-threshold", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func TestPollOpen(t *testing.T) {
	closeTime, _ := time.Parse(time.RFC3339, "2025-12-31T23:59:59+03:00")
	cfg := Config{PollCloseTime: closeTime}

	if !cfg.PollOpen(closeTime.Add(-time.Hour)) {
		t.Error("poll should be open before close time")
	}
	if !cfg.PollOpen(closeTime) {
		t.Error("poll should be open at exactly close time")
	}
	if cfg.PollOpen(closeTime.Add(time.Second)) {
		t.Error("poll should be closed after close time")
	}

	cfg.TestMode = true
	if !cfg.PollOpen(closeTime.Add(24 * time.Hour)) {
		t.Error("test mode should keep the poll open past close time")
	}
}

func TestIsValidCandidate(t *testing.T) {
	cfg := Config{Candidates: []string{"ersin-tatar", "tufan-erhurman"}}

	if !cfg.IsValidCandidate("ersin-tatar") {
		t.Error("expected listed candidate to be valid")
	}
	if cfg.IsValidCandidate("write-in") {
		t.Error("unlisted candidate must be invalid")
	}
	if cfg.IsValidCandidate("") {
		t.Error("empty candidate must be invalid")
	}
}
