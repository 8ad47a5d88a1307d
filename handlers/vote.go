// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kktc-anket/server/audit"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/engine"
	"github.com/kktc-anket/server/fingerprint"
	"github.com/kktc-anket/server/middleware"
	"github.com/kktc-anket/server/models"
)

// sanitizeMaxLen caps every client-supplied string before use.
const sanitizeMaxLen = 100

type VoteHandler struct {
	engine *engine.Engine
	audit  *audit.Logger
	cfg    cliparse.Config
}

func NewVoteHandler(eng *engine.Engine, auditor *audit.Logger, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{engine: eng, audit: auditor, cfg: cfg}
}

// Submit handles POST /api/vote
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientIP := middleware.ClientIP(r)

	// Bound the body before decoding; an oversized body is a validation
	// failure, not a decode error
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logRejected(clientIP, "oversized", "unknown", "request too large")
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request too large")
			return
		}
		h.logRejected(clientIP, "invalid", "unknown", "invalid JSON body")
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate := sanitize(req.Candidate)
	fp := sanitize(req.Fingerprint)

	if candidate == "" || fp == "" {
		h.logRejected(clientIP, orMissing(fp), orMissing(candidate), "missing required fields")
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate and fingerprint are required")
		return
	}

	decision := h.engine.Decide(r.Context(), engine.Request{
		IP:          clientIP,
		Fingerprint: fp,
		UserAgent:   r.UserAgent(),
		Candidate:   candidate,
		Now:         time.Now(),
	})

	if !decision.Accepted {
		middleware.ErrorResponse(w, decision.Reason.HTTPStatus(), decision.Reason.Message())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success:   true,
		Message:   "Your vote has been recorded",
		Timestamp: time.Now().UTC(),
	})
}

// RateLimited answers requests rejected by the vote rate limiter. The
// attempt still lands in the audit log even though the engine never ran.
func (h *VoteHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	h.logRejected(middleware.ClientIP(r), "rate-limited", "unknown", "rate limit exceeded")
	middleware.ErrorResponse(w, http.StatusTooManyRequests,
		"Too many vote attempts; please wait a minute and try again")
}

// logRejected records handler-level rejections that never reach the engine.
func (h *VoteHandler) logRejected(ip, fp, candidate, reason string) {
	h.audit.Record(models.AttemptLogEntry{
		Timestamp:   time.Now(),
		IPAddress:   ip,
		Fingerprint: fingerprint.Truncate(fp),
		Candidate:   candidate,
		Success:     false,
		Reason:      reason,
	})
}

// sanitize strips characters with HTML/SQL significance and caps length.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, s)
	if len(s) > sanitizeMaxLen {
		s = s[:sanitizeMaxLen]
	}
	return s
}

func orMissing(s string) string {
	if s == "" {
		return "missing"
	}
	return s
}
