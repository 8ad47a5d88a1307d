// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the KKTC Anket API server.

KKTC Anket is a single-question public opinion poll with layered duplicate-vote
detection: browser fingerprinting, proxy-aware IP resolution, IP reputation
screening, device-signature tracking, and per-network burst heuristics.

# Starting the Server

The server runs standalone with no required configuration; without a database
it keeps votes in memory (demo mode):

	go run .

Or against a database:

	DATABASE_URL=postgres://... go run .
	go run . -d votes.db -t sqlite

# Configuration

All settings come from CLI flags with environment-variable fallbacks:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_URL (-d): Connection string; empty selects the in-memory store
  - DATABASE_TYPE (-t): "postgres" (default) or "sqlite"
  - ADMIN_KEY (-admin-key): Operator key for /api/admin/logs; weak or missing
    keys disable the endpoint rather than falling back to a default
  - POLL_CLOSE_TIME (-poll-close): RFC3339 close time
  - TEST_MODE (-test-mode): Keep the poll open regardless of the close time
  - CANDIDATES (-candidates): Comma-separated candidate list
  - REPUTATION_URL (-reputation-url): IP reputation service; empty disables

Policy thresholds (-strict, -burst-window, -burst-threshold, -ip-vote-limit,
-rate-limit, -rate-window, -max-body, -log-cap) are flag-only.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (vote, results, status, admin)
  - router: Route definitions using Go 1.22+ routing
  - engine: The ordered duplicate-vote decision policy
  - ledger: Vote and attempt-log storage (in-memory and SQL)
  - fingerprint: Device fingerprint validation and generation
  - reputation: Fail-open VPN/proxy/datacenter detection
  - audit: Asynchronous attempt logging
  - middleware: CORS, logging, rate limiting, client IP resolution
  - models: Request/response types and rejection reasons
  - auth: Operator key checking
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
