// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - VoteRequest: candidate, fingerprint

# Response Types

Types for JSON responses:

  - VoteResponse: success, message, timestamp
  - ResultsResponse: votes (zero-filled per candidate plus "total"), percentages
  - StatusResponse: server_time, poll_open, poll_close_time, database_connected, uptime
  - AdminLogsResponse: logs, statistics
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Vote: an accepted ballot; the user agent never serializes to JSON
  - VoteMeta: the per-IP history subset used by the burst heuristics
  - AttemptLogEntry: one vote attempt, accepted or rejected, fingerprint truncated
  - AttemptStats: aggregate counters over the attempt log
  - Tally: per-candidate counts with wire-format helpers
  - Decision: the engine's verdict for one attempt

# Rejection Reasons

Reason is a string enum covering every rejection path. Each reason carries its
HTTP status (HTTPStatus) and user-facing explanation (Message); the raw string
value is what lands in the attempt log:

	ReasonPollClosed         403
	ReasonInvalidFingerprint 400
	ReasonInvalidCandidate   400
	ReasonAnonymizingIP      403
	ReasonFallbackLockout    409
	ReasonDuplicate          409
	ReasonDeviceRepeat       409
	ReasonBurst              409
	ReasonIPLimit            409
	ReasonStorage            500
*/
package models
