// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the poll API.

Each handler is a struct with its dependencies injected via a constructor:

  - VoteHandler: vote submission (the decision engine's HTTP face) plus the
    rate-limit rejection path
  - ResultsHandler: per-candidate counts and percentages
  - StatusHandler: server time, poll window, storage connectivity, uptime
  - AdminHandler: attempt log and aggregate statistics behind the operator key

# Vote Flow

	POST /api/vote {candidate, fingerprint}

The handler resolves the client IP through the proxy-header chain, bounds
and decodes the body, sanitizes inputs, and hands the attempt to the engine.
Rejections map to 400 (validation), 403 (poll closed, anonymizing network),
409 (duplicate and heuristic rejections), 413 (oversize), 429 (rate limit)
and 500 (storage). Handler-level failures that never reach the engine are
still written to the attempt log.
*/
package handlers
