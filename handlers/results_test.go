package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/kktc-anket/server/models"
	"github.com/kktc-anket/server/testutil"
)

func seedVotes(t *testing.T, env *testEnv, counts map[string]int) {
	t.Helper()
	i := 0
	for candidate, n := range counts {
		for j := 0; j < n; j++ {
			err := env.store.InsertVote(context.Background(), models.Vote{
				Candidate:   candidate,
				Fingerprint: "fp_seeded-" + strconv.Itoa(i),
				IPAddress:   "198.51.100." + strconv.Itoa(i),
				UserAgent:   "seed",
				CreatedAt:   time.Now(),
			})
			if err != nil {
				t.Fatalf("failed to seed vote: %v", err)
			}
			i++
		}
	}
}

func TestGetResults(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewResultsHandler(env.store, env.cfg)

	seedVotes(t, env, map[string]int{
		"ersin-tatar":    2,
		"tufan-erhurman": 1,
		"mehmet-hasguler": 1,
	})

	w := httptest.NewRecorder()
	handler.Get(w, testutil.MakeRequest("GET", "/api/results", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Votes["ersin-tatar"] != 2 || resp.Votes["tufan-erhurman"] != 1 || resp.Votes["mehmet-hasguler"] != 1 {
		t.Errorf("unexpected votes: %+v", resp.Votes)
	}
	if resp.Votes["total"] != 4 {
		t.Errorf("total = %d, want 4", resp.Votes["total"])
	}
	if resp.Percentages["ersin-tatar"] != "50.0" {
		t.Errorf("ersin-tatar percentage = %q, want 50.0", resp.Percentages["ersin-tatar"])
	}
	if resp.Percentages["tufan-erhurman"] != "25.0" || resp.Percentages["mehmet-hasguler"] != "25.0" {
		t.Errorf("unexpected percentages: %+v", resp.Percentages)
	}
}

func TestGetResultsEmpty(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewResultsHandler(env.store, env.cfg)

	w := httptest.NewRecorder()
	handler.Get(w, testutil.MakeRequest("GET", "/api/results", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	// Every configured candidate appears zero-filled, never omitted
	for _, candidate := range env.cfg.Candidates {
		if v, ok := resp.Votes[candidate]; !ok || v != 0 {
			t.Errorf("candidate %s: votes = %d, present = %v", candidate, v, ok)
		}
		if p := resp.Percentages[candidate]; p != "0.0" {
			t.Errorf("candidate %s: percentage = %q, want 0.0", candidate, p)
		}
	}
	if resp.Votes["total"] != 0 {
		t.Errorf("total = %d, want 0", resp.Votes["total"])
	}
}
