// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kktc-anket/server/audit"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/fingerprint"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/models"
	"github.com/kktc-anket/server/reputation"
)

// acceptedReason is the attempt-log reason for successful votes.
const acceptedReason = "vote recorded successfully"

// Request carries everything the engine needs to judge one vote attempt.
// Now is passed explicitly so the poll-close and burst-window checks are
// deterministic under test.
type Request struct {
	IP          string
	Fingerprint string
	UserAgent   string
	Candidate   string
	Now         time.Time
}

// Engine is the duplicate-vote decision policy. It is pure policy over its
// injected collaborators: the vote ledger, the IP reputation checker, and
// the asynchronous attempt logger. Construct one per deployment; there is no
// package-level state.
type Engine struct {
	store      ledger.Store
	reputation reputation.Checker
	audit      *audit.Logger
	cfg        cliparse.Config
}

// New builds an engine over the given store and reputation checker.
func New(store ledger.Store, checker reputation.Checker, auditor *audit.Logger, cfg cliparse.Config) *Engine {
	return &Engine{store: store, reputation: checker, audit: auditor, cfg: cfg}
}

// Decide runs the ordered policy for one attempt and records the outcome in
// the attempt log. Each stage short-circuits on rejection:
//
//  1. poll closed (test mode disables this check)
//  2. fingerprint and candidate validation
//  3. IP reputation (advisory, fail-open)
//  4. fallback-fingerprint IP lockout
//  5. exact duplicate pre-check
//  6. device-signature repeat
//  7. burst window and per-IP cap
//  8. atomic insert; a uniqueness violation here is a duplicate
//
// The pre-checks are advisory fast paths only: the one guarantee — exactly
// one accept among concurrent submissions of the same fingerprint — comes
// from the store's uniqueness constraint at step 8.
func (e *Engine) Decide(ctx context.Context, req Request) models.Decision {
	d := e.evaluate(ctx, req)

	reason := acceptedReason
	if !d.Accepted {
		reason = string(d.Reason)
	}
	e.audit.Record(models.AttemptLogEntry{
		Timestamp:   req.Now,
		IPAddress:   req.IP,
		Fingerprint: fingerprint.Truncate(req.Fingerprint),
		Candidate:   req.Candidate,
		Success:     d.Accepted,
		Reason:      reason,
	})

	if d.Accepted {
		slog.Info("vote recorded",
			"candidate", req.Candidate,
			"ip", req.IP,
			"fingerprint", fingerprint.Truncate(req.Fingerprint))
	} else {
		slog.Info("vote rejected",
			"reason", d.Reason,
			"ip", req.IP,
			"fingerprint", fingerprint.Truncate(req.Fingerprint))
	}
	return d
}

func (e *Engine) evaluate(ctx context.Context, req Request) models.Decision {
	// 1. Poll window
	if !e.cfg.PollOpen(req.Now) {
		return reject(models.ReasonPollClosed)
	}

	// 2. Input validation
	if !fingerprint.Validate(req.Fingerprint) {
		return reject(models.ReasonInvalidFingerprint)
	}
	if !e.cfg.IsValidCandidate(req.Candidate) {
		return reject(models.ReasonInvalidCandidate)
	}

	// 3. Reputation. Advisory: a degraded lookup fails open.
	if res := e.reputation.Check(ctx, req.IP); res.Anonymizing {
		return reject(models.ReasonAnonymizingIP)
	}

	// 4. Fallback lockout: one fallback identity per network. Fallback
	// tokens are the signature of private browsing; a second "new device"
	// claiming fallback status from the same IP is presumed to be the same
	// user reopening an incognito window.
	if fingerprint.IsFallback(req.Fingerprint) {
		locked, err := e.store.HasFallbackFromIP(ctx, req.IP)
		if err != nil {
			return e.storageReject(err)
		}
		if locked {
			return reject(models.ReasonFallbackLockout)
		}
	}

	// 5. Exact duplicate pre-check
	var dup bool
	var err error
	if e.cfg.StrictFingerprint {
		dup, err = e.store.HasFingerprint(ctx, req.Fingerprint)
	} else {
		dup, err = e.store.HasVote(ctx, req.IP, req.Fingerprint)
	}
	if err != nil {
		return e.storageReject(err)
	}
	if dup {
		return reject(models.ReasonDuplicate)
	}

	// 6. Device signature: same IP and browser, different fingerprint.
	// Catches incognito retries where the fingerprint regenerated.
	last, seen, err := e.store.DeviceFingerprint(ctx, req.IP, req.UserAgent)
	if err != nil {
		return e.storageReject(err)
	}
	if seen && last != req.Fingerprint {
		return reject(models.ReasonDeviceRepeat)
	}

	// 7. Burst heuristics. A known fingerprint bypasses the burst check and
	// stands or falls on uniqueness alone; the rule targets many-fingerprint
	// floods from one network while tolerating a shared household NAT.
	history, err := e.store.VotesFromIP(ctx, req.IP)
	if err != nil {
		return e.storageReject(err)
	}
	if len(history) >= e.cfg.IPVoteLimit {
		return reject(models.ReasonIPLimit)
	}
	known := false
	recent := 0
	for _, m := range history {
		if m.Fingerprint == req.Fingerprint {
			known = true
		}
		if req.Now.Sub(m.CreatedAt) < e.cfg.BurstWindow {
			recent++
		}
	}
	if recent >= e.cfg.BurstThreshold && !known {
		return reject(models.ReasonBurst)
	}

	// 8. Accept. The insert and the duplicate check are one atomic operation
	// behind the store's uniqueness constraint; this closes the race window
	// between concurrent requests bearing the same fingerprint.
	vote := models.Vote{
		Candidate:   req.Candidate,
		Fingerprint: req.Fingerprint,
		IPAddress:   req.IP,
		UserAgent:   req.UserAgent,
		CreatedAt:   req.Now,
	}
	if err := e.store.InsertVote(ctx, vote); err != nil {
		if errors.Is(err, ledger.ErrDuplicateFingerprint) {
			return reject(models.ReasonDuplicate)
		}
		return e.storageReject(err)
	}

	return models.Decision{Accepted: true}
}

func reject(r models.Reason) models.Decision {
	return models.Decision{Reason: r}
}

func (e *Engine) storageReject(err error) models.Decision {
	slog.Error("ledger operation failed", "error", err)
	return reject(models.ReasonStorage)
}
