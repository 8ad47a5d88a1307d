// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package db creates the votes and vote_logs tables for the SQL-backed
// ledger, with DDL variants for PostgreSQL and SQLite.
package db
