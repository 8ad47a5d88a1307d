package fingerprint

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		fp    string
		valid bool
	}{
		{"primary token", "fp_a1b2c3d4e5f6", true},
		{"fallback token", "fallback_abc123_def456", true},
		{"legacy opaque token", "Qx9/ab+c=d.e_f-01", true},
		{"exactly min length", "fp_1234567", true},
		{"below min length", "fp_123456", false},
		{"exactly max length", "fp_" + strings.Repeat("a", 61), true},
		{"above max length", "fp_" + strings.Repeat("a", 62), false},
		{"empty", "", false},
		{"whitespace", "fp_abc def1234", false},
		{"angle brackets", "<script>alert1", false},
		{"semicolon", "fp_abc;drop1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.fp); got != tt.valid {
				t.Errorf("Validate(%q) = %v, want %v", tt.fp, got, tt.valid)
			}
		})
	}
}

func TestIsFallback(t *testing.T) {
	if !IsFallback("fallback_abc123_def456") {
		t.Error("expected fallback token to be detected")
	}
	if IsFallback("fp_a1b2c3d4e5f6") {
		t.Error("primary token misclassified as fallback")
	}
}

func TestBase(t *testing.T) {
	tests := []struct {
		name string
		fp   string
		want string
	}{
		{"plain fallback", "fallback_abc123_def456", "fallback_abc123_def456"},
		{"legacy suffixed fallback", "fallback_abc123_def456_1716382_k3j2h1", "fallback_abc123_def456"},
		{"short fallback", "fallback_abc123", "fallback_abc123"},
		{"primary unchanged", "fp_a1b2c3d4e5f6", "fp_a1b2c3d4e5f6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Base(tt.fp); got != tt.want {
				t.Errorf("Base(%q) = %q, want %q", tt.fp, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("fp_a1b2c3d4e5f6"); got != "fp_a1b2c3d..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short"); got != "short" {
		t.Errorf("short tokens must pass through, got %q", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	signals := Signals{
		UserAgent:           "Mozilla/5.0 (X11; Linux x86_64)",
		Language:            "tr-TR",
		Platform:            "Linux x86_64",
		ScreenWidth:         1920,
		ScreenHeight:        1080,
		ColorDepth:          24,
		TimezoneOffset:      -180,
		HardwareConcurrency: 8,
		DeviceMemory:        16,
		GPURenderer:         "Mesa Intel(R) UHD Graphics",
		AudioSampleRate:     48000,
		Features:            []string{"localStorage", "webgl"},
	}

	first := Generate(signals)
	second := Generate(signals)
	if first != second {
		t.Errorf("same signals produced different tokens: %q vs %q", first, second)
	}

	if !strings.HasPrefix(first, PrimaryPrefix) {
		t.Errorf("token %q missing %q prefix", first, PrimaryPrefix)
	}
	if !Validate(first) {
		t.Errorf("generated token %q fails validation", first)
	}

	signals.ScreenWidth = 1280
	if Generate(signals) == first {
		t.Error("changed signals produced the same token")
	}
}

func TestGenerateFallbackDeterministic(t *testing.T) {
	first := GenerateFallback("Mozilla/5.0", "tr-TR", "Linux x86_64")
	second := GenerateFallback("Mozilla/5.0", "tr-TR", "Linux x86_64")
	if first != second {
		t.Errorf("same inputs produced different fallback tokens: %q vs %q", first, second)
	}

	if !IsFallback(first) {
		t.Errorf("fallback token %q not recognized as fallback", first)
	}
	if !Validate(first) {
		t.Errorf("fallback token %q fails validation", first)
	}
	if Base(first) != first {
		t.Errorf("generated fallback token should already be its own base, got %q vs %q", Base(first), first)
	}

	other := GenerateFallback("Mozilla/5.0", "en-US", "Linux x86_64")
	if other == first {
		t.Error("different language produced the same fallback token")
	}
}
