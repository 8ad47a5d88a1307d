// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kktc-anket/server/models"
	"github.com/kktc-anket/server/testutil"
)

// TestConcurrentVoteSubmissions verifies the core invariant end to end: when
// many requests race with the same fingerprint, exactly one vote is recorded
// and every other request gets a conflict.
func TestConcurrentVoteSubmissions(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	numAttempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{
				Candidate:   "ersin-tatar",
				Fingerprint: "fp_contested01",
			}, map[string]string{"X-Forwarded-For": "203.0.113.7"})
			w := httptest.NewRecorder()
			handler.Submit(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 accepted vote, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(numAttempts-1) {
		t.Errorf("expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	tally, _ := env.store.Tally(context.Background())
	if tally.Total != 1 {
		t.Errorf("expected 1 stored vote, got %d", tally.Total)
	}
}

// TestConcurrentDistinctVoters verifies that unrelated voters racing each
// other all get through.
func TestConcurrentDistinctVoters(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	numVoters := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{
				Candidate:   "tufan-erhurman",
				Fingerprint: "fp_voterdevice" + strconv.Itoa(idx),
			}, map[string]string{
				"X-Forwarded-For": "198.51.100." + strconv.Itoa(idx),
				"User-Agent":      "Browser-" + strconv.Itoa(idx),
			})
			w := httptest.NewRecorder()
			handler.Submit(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			} else {
				t.Errorf("voter %d rejected: %d %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("expected %d accepted votes, got %d", numVoters, successCount.Load())
	}

	tally, _ := env.store.Tally(context.Background())
	if tally.Counts["tufan-erhurman"] != numVoters {
		t.Errorf("expected %d stored votes, got %+v", numVoters, tally)
	}
}
