package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kktc-anket/server/audit"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/engine"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/models"
	"github.com/kktc-anket/server/reputation"
	"github.com/kktc-anket/server/testutil"
)

type testEnv struct {
	store   *ledger.Memory
	auditor *audit.Logger
	engine  *engine.Engine
	cfg     cliparse.Config
}

func newTestEnv(t *testing.T, cfg cliparse.Config) *testEnv {
	t.Helper()

	store := ledger.NewMemory(cfg.AttemptLogCap)
	auditor := audit.New(store, 64)
	t.Cleanup(auditor.Close)

	return &testEnv{
		store:   store,
		auditor: auditor,
		engine:  engine.New(store, reputation.Static{}, auditor, cfg),
		cfg:     cfg,
	}
}

func TestSubmitVote(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	req := testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{
		Candidate:   "ersin-tatar",
		Fingerprint: "fp_aaaaaaaaaaaa",
	}, map[string]string{"X-Forwarded-For": "203.0.113.7"})
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Message == "" {
		t.Errorf("unexpected vote response: %+v", resp)
	}

	tally, _ := env.store.Tally(req.Context())
	if tally.Counts["ersin-tatar"] != 1 {
		t.Errorf("vote not stored: %+v", tally)
	}
}

func TestSubmitVoteDuplicate(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	body := models.VoteRequest{Candidate: "ersin-tatar", Fingerprint: "fp_aaaaaaaaaaaa"}
	headers := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	w := httptest.NewRecorder()
	handler.Submit(w, testutil.MakeRequest("POST", "/api/vote", body, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.Submit(w, testutil.MakeRequest("POST", "/api/vote", body, headers))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != models.ReasonDuplicate.Message() {
		t.Errorf("unexpected duplicate message: %q", resp.Message)
	}

	// The retry left the tally untouched
	results := NewResultsHandler(env.store, env.cfg)
	w = httptest.NewRecorder()
	results.Get(w, testutil.MakeRequest("GET", "/api/results", nil, nil))

	var rr models.ResultsResponse
	testutil.AssertJSON(t, w, &rr)
	if rr.Votes["total"] != 1 || rr.Percentages["ersin-tatar"] != "100.0" {
		t.Errorf("unexpected results after duplicate retry: %+v", rr)
	}
}

func TestSubmitVoteValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "missing candidate",
			body:           models.VoteRequest{Fingerprint: "fp_aaaaaaaaaaaa"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fingerprint",
			body:           models.VoteRequest{Candidate: "ersin-tatar"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown candidate",
			body:           models.VoteRequest{Candidate: "write-in", Fingerprint: "fp_aaaaaaaaaaaa"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed fingerprint",
			body:           models.VoteRequest{Candidate: "ersin-tatar", Fingerprint: "x!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "markup stripped from candidate",
			body:           models.VoteRequest{Candidate: "ersin-tatar<script>", Fingerprint: "fp_aaaaaaaaaaaa"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-JSON body",
			body:           "candidate=ersin-tatar",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testutil.TestConfig())
			handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

			req := testutil.MakeRequest("POST", "/api/vote", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			tally, _ := env.store.Tally(req.Context())
			if tally.Total != 0 {
				t.Error("rejected request must not store a vote")
			}
		})
	}
}

func TestSubmitVoteOversizedBody(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	req := testutil.MakeRequest("POST", "/api/vote", models.VoteRequest{
		Candidate:   "ersin-tatar",
		Fingerprint: strings.Repeat("a", 2000),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestRateLimitedLogsAttempt(t *testing.T) {
	env := newTestEnv(t, testutil.TestConfig())
	handler := NewVoteHandler(env.engine, env.auditor, env.cfg)

	req := testutil.MakeRequest("POST", "/api/vote", nil,
		map[string]string{"X-Forwarded-For": "203.0.113.7"})
	w := httptest.NewRecorder()
	handler.RateLimited(w, req)

	testutil.AssertStatus(t, w, http.StatusTooManyRequests)

	testutil.WaitFor(t, func() bool {
		entries, _ := env.store.RecentAttempts(req.Context(), 10)
		return len(entries) == 1 && entries[0].Reason == "rate limit exceeded" &&
			entries[0].IPAddress == "203.0.113.7" && !entries[0].Success
	})
}
