// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger stores accepted votes and the attempt audit log.

The Store interface is the decision engine's only view of history. Memory
backs demo deployments and tests; SQL backs production against PostgreSQL or
SQLite. Both enforce the single hard invariant of the system — at most one
vote per fingerprint — atomically inside InsertVote, which returns
ErrDuplicateFingerprint when the constraint fires. Everything else the
interface exposes (per-IP history, fallback lookups, device signatures) is
advisory input to the heuristic layers.

Votes are append-only: created once, never mutated or deleted, read only for
duplicate checks and tallying. Attempt log entries exist for every request;
the Memory store caps them FIFO at a configured size, the SQL store keeps
them unbounded.
*/
package ledger
