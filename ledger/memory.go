// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"strconv"
	"sync"

	"github.com/kktc-anket/server/fingerprint"
	"github.com/kktc-anket/server/models"
)

// Memory is the non-persistent Store used by demo deployments and tests.
// Everything lives for the life of the process; the attempt log keeps only
// the most recent logCap entries (oldest evicted first).
type Memory struct {
	mu           sync.Mutex
	votes        []models.Vote
	fingerprints map[string]struct{}
	byIP         map[string][]int // vote indexes per IP
	devices      map[string]string
	attempts     []models.AttemptLogEntry
	logCap       int
}

// Compile-time interface check
var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store retaining at most logCap
// attempt log entries.
func NewMemory(logCap int) *Memory {
	if logCap <= 0 {
		logCap = 1000
	}
	return &Memory{
		fingerprints: make(map[string]struct{}),
		byIP:         make(map[string][]int),
		devices:      make(map[string]string),
		logCap:       logCap,
	}
}

func (m *Memory) InsertVote(ctx context.Context, v models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.fingerprints[v.Fingerprint]; dup {
		return ErrDuplicateFingerprint
	}

	idx := len(m.votes)
	m.votes = append(m.votes, v)
	m.fingerprints[v.Fingerprint] = struct{}{}
	m.byIP[v.IPAddress] = append(m.byIP[v.IPAddress], idx)
	m.devices[deviceKey(v.IPAddress, v.UserAgent)] = v.Fingerprint
	return nil
}

func (m *Memory) HasVote(ctx context.Context, ip, fp string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, idx := range m.byIP[ip] {
		if m.votes[idx].Fingerprint == fp {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) HasFingerprint(ctx context.Context, fp string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.fingerprints[fp]
	return ok, nil
}

func (m *Memory) HasFallbackFromIP(ctx context.Context, ip string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, idx := range m.byIP[ip] {
		if fingerprint.IsFallback(m.votes[idx].Fingerprint) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) VotesFromIP(ctx context.Context, ip string) ([]models.VoteMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metas := make([]models.VoteMeta, 0, len(m.byIP[ip]))
	for _, idx := range m.byIP[ip] {
		v := m.votes[idx]
		metas = append(metas, models.VoteMeta{Fingerprint: v.Fingerprint, CreatedAt: v.CreatedAt})
	}
	return metas, nil
}

func (m *Memory) DeviceFingerprint(ctx context.Context, ip, userAgent string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fp, ok := m.devices[deviceKey(ip, userAgent)]
	return fp, ok, nil
}

func (m *Memory) AppendAttempt(ctx context.Context, e models.AttemptLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts = append(m.attempts, e)
	if len(m.attempts) > m.logCap {
		// FIFO eviction; copy so the backing array does not grow unbounded
		trimmed := make([]models.AttemptLogEntry, m.logCap)
		copy(trimmed, m.attempts[len(m.attempts)-m.logCap:])
		m.attempts = trimmed
	}
	return nil
}

func (m *Memory) RecentAttempts(ctx context.Context, limit int) ([]models.AttemptLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.attempts)
	if limit > n {
		limit = n
	}
	out := make([]models.AttemptLogEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.attempts[i])
	}
	return out, nil
}

func (m *Memory) AttemptStats(ctx context.Context) (models.AttemptStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := models.AttemptStats{TotalAttempts: len(m.attempts)}
	ips := make(map[string]struct{})
	fps := make(map[string]struct{})
	for _, e := range m.attempts {
		if e.Success {
			stats.SuccessfulVotes++
		} else {
			stats.FailedAttempts++
		}
		ips[e.IPAddress] = struct{}{}
		fps[e.Fingerprint] = struct{}{}
	}
	stats.UniqueIPs = len(ips)
	stats.UniqueFingerprints = len(fps)
	stats.SuccessRate = successRate(stats.SuccessfulVotes, stats.TotalAttempts)
	return stats, nil
}

func (m *Memory) Tally(ctx context.Context) (models.Tally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int)
	for _, v := range m.votes {
		counts[v.Candidate]++
	}
	return models.Tally{Counts: counts, Total: len(m.votes)}, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// formatPercent renders a percentage with two decimals and a percent sign.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
