// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/middleware"
	"github.com/kktc-anket/server/models"
)

type ResultsHandler struct {
	store ledger.Store
	cfg   cliparse.Config
}

func NewResultsHandler(store ledger.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// Get handles GET /api/results
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tally, err := h.store.Tally(r.Context())
	if err != nil {
		slog.Error("failed to tally votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Results unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Votes:       tally.VotesMap(h.cfg.Candidates),
		Percentages: tally.Percentages(h.cfg.Candidates),
	})
}
