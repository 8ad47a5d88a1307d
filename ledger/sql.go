// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kktc-anket/server/models"
)

// SQL is the durable Store. It works against PostgreSQL (lib/pq) and SQLite
// (modernc.org/sqlite); the votes_fingerprint_unique constraint in the
// schema is what enforces the one-vote-per-fingerprint invariant, so
// concurrent inserts of the same fingerprint resolve to exactly one success
// inside the database, not in Go.
type SQL struct {
	db *sql.DB
}

// Compile-time interface check
var _ Store = (*SQL)(nil)

// NewSQL wraps an opened database connection.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// isUniqueViolation classifies driver errors raised by the fingerprint
// uniqueness constraint. Postgres reports SQLSTATE 23505; modernc sqlite
// reports a "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *SQL) InsertVote(ctx context.Context, v models.Vote) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO votes (id, candidate, fingerprint, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.Candidate, v.Fingerprint, v.IPAddress, v.UserAgent, v.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateFingerprint
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (s *SQL) HasVote(ctx context.Context, ip, fp string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE ip_address = $1 AND fingerprint = $2)
	`, ip, fp).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote: %w", err)
	}
	return exists, nil
}

func (s *SQL) HasFingerprint(ctx context.Context, fp string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE fingerprint = $1)
	`, fp).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query fingerprint: %w", err)
	}
	return exists, nil
}

func (s *SQL) HasFallbackFromIP(ctx context.Context, ip string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE ip_address = $1 AND fingerprint LIKE 'fallback\_%' ESCAPE '\'
		)
	`, ip).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query fallback votes: %w", err)
	}
	return exists, nil
}

func (s *SQL) VotesFromIP(ctx context.Context, ip string) ([]models.VoteMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, created_at FROM votes WHERE ip_address = $1
	`, ip)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes by IP: %w", err)
	}
	defer rows.Close()

	var metas []models.VoteMeta
	for rows.Next() {
		var m models.VoteMeta
		if err := rows.Scan(&m.Fingerprint, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

func (s *SQL) DeviceFingerprint(ctx context.Context, ip, userAgent string) (string, bool, error) {
	if len(userAgent) > UserAgentPrefixLen {
		userAgent = userAgent[:UserAgentPrefixLen]
	}

	var fp string
	err := s.db.QueryRowContext(ctx, `
		SELECT fingerprint FROM votes
		WHERE ip_address = $1 AND substr(user_agent, 1, $2) = $3
		ORDER BY created_at DESC
		LIMIT 1
	`, ip, UserAgentPrefixLen, userAgent).Scan(&fp)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query device signature: %w", err)
	}
	return fp, true, nil
}

func (s *SQL) AppendAttempt(ctx context.Context, e models.AttemptLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_logs (id, timestamp, ip_address, fingerprint, candidate, success, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Timestamp, e.IPAddress, e.Fingerprint, e.Candidate, e.Success, e.Reason)

	if err != nil {
		return fmt.Errorf("failed to insert attempt log entry: %w", err)
	}
	return nil
}

func (s *SQL) RecentAttempts(ctx context.Context, limit int) ([]models.AttemptLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, ip_address, fingerprint, candidate, success, reason
		FROM vote_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt log: %w", err)
	}
	defer rows.Close()

	var entries []models.AttemptLogEntry
	for rows.Next() {
		var e models.AttemptLogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.IPAddress, &e.Fingerprint, &e.Candidate, &e.Success, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan attempt log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQL) AttemptStats(ctx context.Context) (models.AttemptStats, error) {
	var stats models.AttemptStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT ip_address),
			COUNT(DISTINCT fingerprint)
		FROM vote_logs
	`).Scan(&stats.TotalAttempts, &stats.SuccessfulVotes, &stats.UniqueIPs, &stats.UniqueFingerprints)
	if err != nil {
		return models.AttemptStats{}, fmt.Errorf("failed to aggregate attempt log: %w", err)
	}

	stats.FailedAttempts = stats.TotalAttempts - stats.SuccessfulVotes
	stats.SuccessRate = successRate(stats.SuccessfulVotes, stats.TotalAttempts)
	return stats, nil
}

func (s *SQL) Tally(ctx context.Context) (models.Tally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate, COUNT(*) FROM votes GROUP BY candidate
	`)
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	t := models.Tally{Counts: make(map[string]int)}
	for rows.Next() {
		var candidate string
		var count int
		if err := rows.Scan(&candidate, &count); err != nil {
			return models.Tally{}, fmt.Errorf("failed to scan tally row: %w", err)
		}
		t.Counts[candidate] = count
		t.Total += count
	}
	return t, rows.Err()
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
