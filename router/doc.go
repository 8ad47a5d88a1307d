// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the KKTC Anket API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(eng, store, auditor, cfg)

# Endpoints

Health:

	GET /health

Voting (public, rate limited per IP+browser):

	POST /api/vote - Submit a vote {candidate, fingerprint}

Results and status (public):

	GET /api/results - Per-candidate counts and percentages
	GET /api/status  - Server time, poll window, storage connectivity

Admin (requires auth_key query parameter):

	GET /api/admin/logs - Attempt log and aggregate statistics

# Handler Initialization

The router creates handler instances with dependency injection:

	voteHandler := handlers.NewVoteHandler(eng, auditor, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)
	statusHandler := handlers.NewStatusHandler(store, cfg)
	adminHandler := handlers.NewAdminHandler(store, cfg)

Only the vote endpoint sits behind the rate limiter; the limiter's rejection
path still lands in the attempt log.
*/
package router
