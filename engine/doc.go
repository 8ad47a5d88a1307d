// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine decides whether a vote attempt is accepted.

The identity signal here is inherently weak — a browser fingerprint plus a
resolved IP — so the policy is layered: one hard invariant (fingerprint
uniqueness, enforced atomically by the ledger) under a stack of heuristics
(fallback lockout, device-signature repeat, burst window, per-IP cap) that
trade false positives against false negatives. All thresholds come from
configuration.

Every outcome, accepted or rejected, is recorded in the attempt log.
Resubmitting an accepted (ip, fingerprint, candidate) always rejects with a
duplicate reason; it never succeeds twice and never changes the recorded
candidate.
*/
package engine
