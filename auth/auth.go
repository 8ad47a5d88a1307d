// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrKeyNotConfigured means the deployment has no usable operator key;
	// the admin surface must answer 503, never fall back to a default.
	ErrKeyNotConfigured = errors.New("operator key not configured")

	// ErrKeyMismatch means the provided key does not match.
	ErrKeyMismatch = errors.New("operator key mismatch")
)

// minKeyLength is the shortest operator key accepted as configured.
const minKeyLength = 10

// CheckOperatorKey validates the key presented to the admin surface.
// An empty, well-known, or too-short configured key counts as unconfigured:
// shipping with "admin123" must not silently expose the attempt log.
// Comparison is constant time.
func CheckOperatorKey(configured, provided string) error {
	if configured == "" || configured == "admin123" || len(configured) < minKeyLength {
		return ErrKeyNotConfigured
	}
	if !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrKeyMismatch
	}
	return nil
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
