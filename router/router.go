// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/kktc-anket/server/audit"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/engine"
	"github.com/kktc-anket/server/handlers"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/middleware"
)

func NewRouter(eng *engine.Engine, store ledger.Store, auditor *audit.Logger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(eng, auditor, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)
	statusHandler := handlers.NewStatusHandler(store, cfg)
	adminHandler := handlers.NewAdminHandler(store, cfg)

	// The vote endpoint carries its own rate limiter; read endpoints do not
	voteLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting (public)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(
		voteLimiter.Wrap(voteHandler.Submit, voteHandler.RateLimited)))

	// Results and status (public)
	mux.HandleFunc("GET /api/results", middleware.WithLogging(resultsHandler.Get))
	mux.HandleFunc("GET /api/status", middleware.WithLogging(statusHandler.Get))

	// Admin (operator key)
	mux.HandleFunc("GET /api/admin/logs", middleware.WithLogging(adminHandler.Logs))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("kktc-anket API v1"))
	})

	return mux
}
