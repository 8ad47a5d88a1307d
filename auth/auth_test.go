// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestCheckOperatorKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		want       error
	}{
		{"valid key match", "a-long-operator-key", "a-long-operator-key", nil},
		{"valid key mismatch", "a-long-operator-key", "wrong-key-attempt", ErrKeyMismatch},
		{"valid key empty provided", "a-long-operator-key", "", ErrKeyMismatch},
		{"unconfigured", "", "anything", ErrKeyNotConfigured},
		{"known default", "admin123", "admin123", ErrKeyNotConfigured},
		{"too short", "short", "short", ErrKeyNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOperatorKey(tt.configured, tt.provided)
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckOperatorKey(%q, %q) = %v, want %v", tt.configured, tt.provided, err, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(id))
	}

	other, _ := GenerateID(16)
	if id == other {
		t.Error("two generated IDs should not collide")
	}
}
