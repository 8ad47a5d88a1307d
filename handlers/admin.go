// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kktc-anket/server/auth"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/middleware"
	"github.com/kktc-anket/server/models"
)

// adminLogLimit is how many attempt log entries the admin endpoint returns.
const adminLogLimit = 100

type AdminHandler struct {
	store ledger.Store
	cfg   cliparse.Config
}

func NewAdminHandler(store ledger.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, cfg: cfg}
}

// Logs handles GET /api/admin/logs?auth_key=...
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("auth_key")

	if err := auth.CheckOperatorKey(h.cfg.AdminKey, key); err != nil {
		if errors.Is(err, auth.ErrKeyNotConfigured) {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Admin panel not configured")
			return
		}
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	logs, err := h.store.RecentAttempts(r.Context(), adminLogLimit)
	if err != nil {
		slog.Error("failed to query attempt log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Logs unavailable")
		return
	}
	if logs == nil {
		logs = []models.AttemptLogEntry{}
	}

	stats, err := h.store.AttemptStats(r.Context())
	if err != nil {
		slog.Error("failed to aggregate attempt log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Logs unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminLogsResponse{
		Logs:       logs,
		Statistics: stats,
	})
}
