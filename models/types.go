// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"net/http"
	"strconv"
	"time"
)

// Reason identifies why a vote attempt was rejected. The string value is what
// gets written to the attempt log.
type Reason string

const (
	ReasonPollClosed         Reason = "poll closed"
	ReasonInvalidFingerprint Reason = "invalid fingerprint format"
	ReasonInvalidCandidate   Reason = "invalid candidate"
	ReasonAnonymizingIP      Reason = "VPN/proxy detected"
	ReasonFallbackLockout    Reason = "fallback fingerprint already voted from this IP"
	ReasonDuplicate          Reason = "duplicate vote"
	ReasonDeviceRepeat       Reason = "same device retried with a changed fingerprint"
	ReasonBurst              Reason = "too many distinct devices from this IP in the window"
	ReasonIPLimit            Reason = "IP vote limit exceeded"
	ReasonStorage            Reason = "storage failure"
)

// HTTPStatus maps a rejection reason to the response status code.
func (r Reason) HTTPStatus() int {
	switch r {
	case ReasonPollClosed, ReasonAnonymizingIP:
		return http.StatusForbidden
	case ReasonInvalidFingerprint, ReasonInvalidCandidate:
		return http.StatusBadRequest
	case ReasonFallbackLockout, ReasonDuplicate, ReasonDeviceRepeat, ReasonBurst, ReasonIPLimit:
		return http.StatusConflict
	case ReasonStorage:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Message returns the user-facing explanation for a rejection.
func (r Reason) Message() string {
	switch r {
	case ReasonPollClosed:
		return "The poll has closed and no longer accepts votes"
	case ReasonInvalidFingerprint:
		return "Invalid device identity"
	case ReasonInvalidCandidate:
		return "Invalid candidate"
	case ReasonAnonymizingIP:
		return "VPN, proxy or datacenter connections are not allowed; please vote from a regular connection"
	case ReasonFallbackLockout:
		return "A private-browsing vote has already been cast from this network; one fallback vote per IP"
	case ReasonDuplicate:
		return "A vote has already been cast from this device"
	case ReasonDeviceRepeat:
		return "A vote has already been cast from this browser"
	case ReasonBurst:
		return "Too many votes from this network in a short time; please try again later"
	case ReasonIPLimit:
		return "Too many votes have been cast from this network"
	case ReasonStorage:
		return "Vote could not be recorded"
	}
	return string(r)
}

// Decision is the outcome of the duplicate-vote engine for one attempt.
type Decision struct {
	Accepted bool
	Reason   Reason
}

// Domain types

// Vote is an accepted ballot. Votes are immutable once stored; the
// fingerprint is unique across all votes (enforced by the store).
type Vote struct {
	ID          string    `json:"id"`
	Candidate   string    `json:"candidate"`
	Fingerprint string    `json:"fingerprint"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// VoteMeta is the subset of a vote used by the per-IP heuristics.
type VoteMeta struct {
	Fingerprint string
	CreatedAt   time.Time
}

// AttemptLogEntry records one vote attempt, accepted or not. The fingerprint
// is stored truncated; the full token never leaves the votes table.
type AttemptLogEntry struct {
	ID          string    `json:"id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	IPAddress   string    `json:"ip_address"`
	Fingerprint string    `json:"fingerprint"`
	Candidate   string    `json:"candidate"`
	Success     bool      `json:"success"`
	Reason      string    `json:"reason"`
}

// AttemptStats aggregates the attempt log for the admin endpoint.
type AttemptStats struct {
	TotalAttempts      int    `json:"total_attempts"`
	SuccessfulVotes    int    `json:"successful_votes"`
	FailedAttempts     int    `json:"failed_attempts"`
	UniqueIPs          int    `json:"unique_ips"`
	UniqueFingerprints int    `json:"unique_fingerprints"`
	SuccessRate        string `json:"success_rate"`
}

// Tally holds per-candidate vote counts.
type Tally struct {
	Counts map[string]int
	Total  int
}

// VotesMap renders the tally as the wire format: one entry per candidate
// (zero-filled) plus a "total" key.
func (t Tally) VotesMap(candidates []string) map[string]int {
	m := make(map[string]int, len(candidates)+1)
	for _, c := range candidates {
		m[c] = t.Counts[c]
	}
	m["total"] = t.Total
	return m
}

// Percentages computes per-candidate percentages rounded to one decimal.
// All values are "0.0" when the total is zero.
func (t Tally) Percentages(candidates []string) map[string]string {
	m := make(map[string]string, len(candidates))
	for _, c := range candidates {
		if t.Total == 0 {
			m[c] = "0.0"
			continue
		}
		pct := float64(t.Counts[c]) / float64(t.Total) * 100
		m[c] = strconv.FormatFloat(pct, 'f', 1, 64)
	}
	return m
}

// Request types

type VoteRequest struct {
	Candidate   string `json:"candidate"`
	Fingerprint string `json:"fingerprint"`
}

// Response types

type VoteResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type ResultsResponse struct {
	Votes       map[string]int    `json:"votes"`
	Percentages map[string]string `json:"percentages"`
}

type StatusResponse struct {
	ServerTime        time.Time `json:"server_time"`
	PollOpen          bool      `json:"poll_open"`
	PollCloseTime     time.Time `json:"poll_close_time"`
	DatabaseConnected bool      `json:"database_connected"`
	Uptime            string    `json:"uptime"`
}

type AdminLogsResponse struct {
	Logs       []AttemptLogEntry `json:"logs"`
	Statistics AttemptStats      `json:"statistics"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
