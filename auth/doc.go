// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides operator authentication and ID generation utilities.

# Operator Key

The admin log endpoint is guarded by a single shared operator key:

	err := auth.CheckOperatorKey(configured, provided)

The check distinguishes a misconfigured server from a bad client key:
ErrKeyNotConfigured means the configured key is missing, a known default, or
too short, and the endpoint should answer 503 rather than tempt brute force
against a weak secret. ErrKeyMismatch means the client's key did not match;
the comparison is constant-time.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
