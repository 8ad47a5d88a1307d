// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"

	"github.com/kktc-anket/server/models"
)

// ErrDuplicateFingerprint is returned by InsertVote when a vote with the
// same fingerprint already exists. The insert and the uniqueness check are
// one atomic operation; callers must not check-then-insert.
var ErrDuplicateFingerprint = errors.New("fingerprint already voted")

// UserAgentPrefixLen bounds how much of the User-Agent participates in the
// device signature (IP + UA prefix -> last fingerprint).
const UserAgentPrefixLen = 100

// Store is the vote ledger consulted and appended to by the decision engine.
// Two implementations exist: Memory (demo deployments, tests) and SQL
// (postgres or sqlite). The engine is constructed with one of them; there is
// no package-level singleton.
//
// Only InsertVote carries a strict ordering guarantee (the fingerprint
// uniqueness constraint). The heuristic lookups are eventually consistent;
// losing them degrades the heuristic layers, never the base invariant.
type Store interface {
	// InsertVote appends an accepted vote atomically. Returns
	// ErrDuplicateFingerprint if the fingerprint is already present.
	InsertVote(ctx context.Context, v models.Vote) error

	// HasVote reports whether a vote exists for this exact (ip, fingerprint).
	HasVote(ctx context.Context, ip, fp string) (bool, error)

	// HasFingerprint reports whether any vote carries this fingerprint.
	HasFingerprint(ctx context.Context, fp string) (bool, error)

	// HasFallbackFromIP reports whether any stored vote from ip carries a
	// fallback fingerprint.
	HasFallbackFromIP(ctx context.Context, ip string) (bool, error)

	// VotesFromIP returns fingerprint and time of every vote from ip.
	VotesFromIP(ctx context.Context, ip string) ([]models.VoteMeta, error)

	// DeviceFingerprint returns the fingerprint last accepted for the
	// (ip, truncated user-agent) device signature, if any.
	DeviceFingerprint(ctx context.Context, ip, userAgent string) (string, bool, error)

	// AppendAttempt records one attempt log entry.
	AppendAttempt(ctx context.Context, e models.AttemptLogEntry) error

	// RecentAttempts returns up to limit entries, newest first.
	RecentAttempts(ctx context.Context, limit int) ([]models.AttemptLogEntry, error)

	// AttemptStats aggregates the attempt log.
	AttemptStats(ctx context.Context) (models.AttemptStats, error)

	// Tally returns per-candidate counts over all accepted votes.
	Tally(ctx context.Context) (models.Tally, error)

	// Ping reports storage connectivity.
	Ping(ctx context.Context) error
}

// deviceKey builds the signature key for the same-browser-repeat heuristic.
func deviceKey(ip, userAgent string) string {
	if len(userAgent) > UserAgentPrefixLen {
		userAgent = userAgent[:UserAgentPrefixLen]
	}
	return ip + "|" + userAgent
}

// successRate renders the admin statistic, matching the attempt-log wire
// format ("87.50%", "0%" when empty).
func successRate(successes, total int) string {
	if total == 0 {
		return "0%"
	}
	return formatPercent(float64(successes) / float64(total) * 100)
}
