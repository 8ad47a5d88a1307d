// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"regexp"
	"strings"
)

const (
	// MinLength and MaxLength bound every accepted fingerprint token.
	MinLength = 10
	MaxLength = 64

	// FallbackPrefix marks degraded fingerprints produced when the richer
	// client-side collection path fails (typically private browsing).
	FallbackPrefix = "fallback_"

	// PrimaryPrefix marks fingerprints from the full signal-collection path.
	PrimaryPrefix = "fp_"

	// truncateLen is how much of a token the attempt log keeps.
	truncateLen = 10
)

// validPattern accepts the three token shapes: fp_-prefixed primary tokens,
// fallback_-prefixed degraded tokens, and legacy opaque tokens limited to
// base64-ish characters.
var validPattern = regexp.MustCompile(`^(fp_[a-zA-Z0-9_]+|fallback_[a-zA-Z0-9_]+|[a-zA-Z0-9+/=._-]+)$`)

// Validate reports whether a fingerprint token is syntactically well formed.
// It is the sole gate before a token is trusted for duplicate comparisons.
// Pure function, no side effects.
func Validate(fp string) bool {
	if len(fp) < MinLength || len(fp) > MaxLength {
		return false
	}
	return validPattern.MatchString(fp)
}

// IsFallback reports whether the token came from the degraded client path.
// Fallback tokens get stricter, IP-scoped policy.
func IsFallback(fp string) bool {
	return strings.HasPrefix(fp, FallbackPrefix)
}

// Base returns the stable part of a fallback token. Legacy clients appended a
// timestamp and a random component after the two hash segments, which made
// the token vary across reloads; stripping everything past the second segment
// restores a per-device identity. Non-fallback tokens are returned unchanged.
func Base(fp string) string {
	if !IsFallback(fp) {
		return fp
	}
	parts := strings.Split(fp, "_")
	if len(parts) >= 3 {
		return strings.Join(parts[:3], "_")
	}
	return fp
}

// Truncate shortens a token for the attempt log so the full identity never
// appears outside the votes table.
func Truncate(fp string) string {
	if len(fp) <= truncateLen {
		return fp
	}
	return fp[:truncateLen] + "..."
}
