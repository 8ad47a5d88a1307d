// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/middleware"
	"github.com/kktc-anket/server/models"
)

type StatusHandler struct {
	store ledger.Store
	cfg   cliparse.Config
	start time.Time
}

func NewStatusHandler(store ledger.Store, cfg cliparse.Config) *StatusHandler {
	return &StatusHandler{store: store, cfg: cfg, start: time.Now()}
}

// Get handles GET /api/status
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		ServerTime:        now.UTC(),
		PollOpen:          h.cfg.PollOpen(now),
		PollCloseTime:     h.cfg.PollCloseTime,
		DatabaseConnected: h.store.Ping(r.Context()) == nil,
		Uptime:            humanize.RelTime(h.start, now, "", ""),
	})
}
