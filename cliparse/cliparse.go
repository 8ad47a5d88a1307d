package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPollClose is the configured end of the poll when POLL_CLOSE_TIME is
// not set: 31 December 2025, 23:59:59 UTC+3.
const DefaultPollClose = "2025-12-31T23:59:59+03:00"

// DefaultCandidates is the fixed candidate list of the poll.
const DefaultCandidates = "ersin-tatar,tufan-erhurman,mehmet-hasguler"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Operator secret for /api/admin/logs. Weak or empty keys disable the
	// endpoint entirely (503), they never fall back to a default.
	AdminKey string

	// Poll window
	PollCloseTime time.Time
	TestMode      bool

	// Candidate list, in display order
	Candidates []string

	// Duplicate policy thresholds
	StrictFingerprint bool
	BurstWindow       time.Duration
	BurstThreshold    int
	IPVoteLimit       int

	// Transport-level limits
	RateLimit    int
	RateWindow   time.Duration
	MaxBodyBytes int64

	// Attempt log retention in the in-memory store
	AttemptLogCap int

	// IP reputation service; empty URL disables the check
	ReputationURL     string
	ReputationTimeout time.Duration
}

// IsValidCandidate reports whether candidate is one of the configured candidates.
func (c Config) IsValidCandidate(candidate string) bool {
	for _, v := range c.Candidates {
		if v == candidate {
			return true
		}
	}
	return false
}

// PollOpen reports whether votes are accepted at the given time. Test mode
// keeps the poll open regardless of the configured close time.
func (c Config) PollOpen(now time.Time) bool {
	if c.TestMode {
		return true
	}
	return !now.After(c.PollCloseTime)
}

// ParseFlags builds the configuration from CLI flags, falling back to
// environment variables for anything not set on the command line.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var pollClose, candidates string

	fs := flag.NewFlagSet("kktc-anket", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty = in-memory store)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Operator key for the admin log endpoint (prefer env)")

	// Poll window
	fs.StringVar(&pollClose, "poll-close", "", "Poll close time, RFC3339")
	fs.BoolVar(&cfg.TestMode, "test-mode", false, "Disable the poll-close check")

	// Policy thresholds
	fs.StringVar(&candidates, "candidates", "", "Comma-separated candidate list")
	fs.BoolVar(&cfg.StrictFingerprint, "strict", false, "Duplicate pre-check on fingerprint alone, not (ip, fingerprint)")
	fs.DurationVar(&cfg.BurstWindow, "burst-window", time.Hour, "Trailing window for the burst heuristic")
	fs.IntVar(&cfg.BurstThreshold, "burst-threshold", 5, "Votes per IP inside the window before new fingerprints are rejected")
	fs.IntVar(&cfg.IPVoteLimit, "ip-vote-limit", 10, "Absolute vote cap per IP")

	// Transport limits
	fs.IntVar(&cfg.RateLimit, "rate-limit", 2, "Vote attempts per IP+browser per window")
	fs.DurationVar(&cfg.RateWindow, "rate-window", time.Minute, "Rate limit window")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body", 1000, "Maximum vote request body size in bytes")
	fs.IntVar(&cfg.AttemptLogCap, "log-cap", 1000, "Attempt log entries retained by the in-memory store")

	// Reputation service
	fs.StringVar(&cfg.ReputationURL, "reputation-url", "http://ip-api.com/json", "IP reputation service base URL (empty = disabled)")
	fs.DurationVar(&cfg.ReputationTimeout, "reputation-timeout", 5*time.Second, "IP reputation query timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if !cfg.TestMode {
		cfg.TestMode = os.Getenv("TEST_MODE") == "true"
	}

	if pollClose == "" {
		pollClose = os.Getenv("POLL_CLOSE_TIME")
		if pollClose == "" {
			pollClose = DefaultPollClose
		}
	}
	closeTime, err := time.Parse(time.RFC3339, pollClose)
	if err != nil {
		return Config{}, errors.New("invalid poll close time (want RFC3339): " + pollClose)
	}
	cfg.PollCloseTime = closeTime

	if candidates == "" {
		candidates = os.Getenv("CANDIDATES")
		if candidates == "" {
			candidates = DefaultCandidates
		}
	}
	for _, c := range strings.Split(candidates, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cfg.Candidates = append(cfg.Candidates, c)
		}
	}
	if len(cfg.Candidates) == 0 {
		return Config{}, errors.New("candidate list is empty")
	}

	if cfg.ReputationURL == "http://ip-api.com/json" {
		if v, ok := os.LookupEnv("REPUTATION_URL"); ok {
			cfg.ReputationURL = v
		}
	}

	if cfg.BurstThreshold <= 0 || cfg.IPVoteLimit <= 0 || cfg.RateLimit <= 0 {
		return Config{}, errors.New("policy thresholds must be positive")
	}

	return cfg, nil
}
