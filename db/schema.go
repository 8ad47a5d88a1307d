// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driverType string) error {
	schema := schemaPostgres
	if driverType == "sqlite" {
		schema = schemaSQLite
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// votes_fingerprint_unique is the single hard correctness guarantee of the
// system: at most one vote per fingerprint, enforced by the database so
// concurrent inserts cannot race past an application-level check.
const schemaPostgres = `
-- Accepted votes (append-only)
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    candidate TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    ip_address TEXT NOT NULL,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CONSTRAINT votes_fingerprint_unique UNIQUE (fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_votes_ip ON votes(ip_address);
CREATE INDEX IF NOT EXISTS idx_votes_created_at ON votes(created_at);

-- Attempt audit log (append-only, every attempt)
CREATE TABLE IF NOT EXISTS vote_logs (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    ip_address TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    candidate TEXT,
    success BOOLEAN NOT NULL,
    reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_logs_timestamp ON vote_logs(timestamp);
`

const schemaSQLite = `
-- Accepted votes (append-only)
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    candidate TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    ip_address TEXT NOT NULL,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT votes_fingerprint_unique UNIQUE (fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_votes_ip ON votes(ip_address);
CREATE INDEX IF NOT EXISTS idx_votes_created_at ON votes(created_at);

-- Attempt audit log (append-only, every attempt)
CREATE TABLE IF NOT EXISTS vote_logs (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    ip_address TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    candidate TEXT,
    success BOOLEAN NOT NULL,
    reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_logs_timestamp ON vote_logs(timestamp);
`
