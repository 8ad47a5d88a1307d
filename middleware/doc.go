// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Resolution

ClientIP resolves the original client address through the reverse-proxy
header chain (X-Forwarded-For, X-Real-IP, CF-Connecting-IP) before falling
back to the transport peer. The result feeds every IP-scoped fraud heuristic,
so it must only be trusted behind a proxy that sets these headers itself.

# Rate Limiting

RateLimiter applies a token-bucket limit keyed by IP plus User-Agent prefix:

	limiter := middleware.NewRateLimiter(2, time.Minute)
	mux.HandleFunc("POST /api/vote", limiter.Wrap(handler, onLimited))
*/
package middleware
