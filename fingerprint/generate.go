// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Signals are the device/browser characteristics the client collects for the
// primary fingerprint path. Only signals that are stable across page reloads
// belong here; anything that varies between calls (canvas pixel output,
// timing jitter) is deliberately excluded so repeated generation in the same
// browser yields an identical token.
type Signals struct {
	UserAgent           string
	Language            string
	Platform            string
	ScreenWidth         int
	ScreenHeight        int
	ColorDepth          int
	TimezoneOffset      int
	HardwareConcurrency int
	DeviceMemory        int
	GPURenderer         string
	AudioSampleRate     int
	Features            []string
}

// canonical flattens the signals into a stable string. Field order is fixed;
// features are joined as given (the client sorts them before submission).
func (s Signals) canonical() string {
	fields := []string{
		s.UserAgent,
		s.Language,
		s.Platform,
		strconv.Itoa(s.ScreenWidth) + "x" + strconv.Itoa(s.ScreenHeight),
		strconv.Itoa(s.ColorDepth),
		strconv.Itoa(s.TimezoneOffset),
		strconv.Itoa(s.HardwareConcurrency),
		strconv.Itoa(s.DeviceMemory),
		s.GPURenderer,
		strconv.Itoa(s.AudioSampleRate),
		strings.Join(s.Features, ","),
	}
	return strings.Join(fields, "|")
}

// Generate derives the primary fingerprint token from the full signal set.
// Deterministic: the same signals always produce the same token, so the
// unique-fingerprint invariant means "one vote per device", not "one vote
// per page load".
func Generate(s Signals) string {
	sum := sha256.Sum256([]byte(s.canonical()))
	return PrimaryPrefix + hex.EncodeToString(sum[:16])
}

// GenerateFallback derives the degraded token used when the richer signal
// collection fails. It hashes the few signals still available in a blocked
// context. Deterministic on purpose: appending a timestamp or randomness
// would make the token change on every reload and defeat duplicate
// detection entirely.
func GenerateFallback(userAgent, language, platform string) string {
	h1 := sha256.Sum256([]byte(userAgent + "|" + language))
	h2 := sha256.Sum256([]byte(platform + "|" + language))
	return FallbackPrefix + hex.EncodeToString(h1[:6]) + "_" + hex.EncodeToString(h2[:6])
}
