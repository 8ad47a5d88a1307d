// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kktc-anket/server/cliparse"
)

// TestConfig returns a standard test configuration: poll open (test mode),
// the production candidate list, default policy thresholds, and a rate limit
// high enough that tests never trip it by accident.
func TestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3001,
		AdminKey:          "test-operator-key-7c2f",
		PollCloseTime:     time.Now().Add(24 * time.Hour),
		TestMode:          true,
		Candidates:        []string{"ersin-tatar", "tufan-erhurman", "mehmet-hasguler"},
		BurstWindow:       time.Hour,
		BurstThreshold:    5,
		IPVoteLimit:       10,
		RateLimit:         1000,
		RateWindow:        time.Minute,
		MaxBodyBytes:      1000,
		AttemptLogCap:     1000,
		ReputationTimeout: time.Second,
	}
}

// WaitFor polls cond until it returns true or two seconds pass. Used for
// assertions against the asynchronous attempt log.
func WaitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 2s")
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
