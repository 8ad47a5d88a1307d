// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reputation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultDialTimeout is the timeout for establishing a TCP connection to
	// the reputation service.
	DefaultDialTimeout = 3 * time.Second

	// CacheCapacity bounds the IP classification cache.
	CacheCapacity = 10000
)

// Result is the advisory classification of one IP address. Err carries the
// reason the lookup degraded; a non-empty Err always comes with
// Anonymizing=false (fail-open).
type Result struct {
	Anonymizing bool
	Err         string
}

// Checker classifies an IP as anonymizing infrastructure (VPN, proxy,
// hosting datacenter) or not.
type Checker interface {
	Check(ctx context.Context, ip string) Result
}

// Static is a fixed-answer Checker, used when the reputation service is
// disabled and as a fake in tests.
type Static struct {
	Anonymizing bool
}

func (s Static) Check(ctx context.Context, ip string) Result {
	return Result{Anonymizing: s.Anonymizing}
}

// IPAPI queries an ip-api.com style endpoint for the proxy/hosting
// classification of an address. Only the fields needed for the decision are
// requested, which keeps payloads small and the lookup cheap enough for the
// request's critical path.
//
// The check is advisory: any transport failure, timeout, or non-success API
// answer yields a not-anonymizing result. Blocking all traffic during an
// outage of the external service would be worse than temporarily losing this
// defense layer.
type IPAPI struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	// cache holds prior classifications; reputation changes far slower than
	// the poll runs, so entries are never invalidated.
	cache *lruCache[string, bool]
}

// Compile-time interface check
var _ Checker = (*IPAPI)(nil)

// NewIPAPI creates a checker against the given base URL
// (e.g. "http://ip-api.com/json").
func NewIPAPI(baseURL string, timeout time.Duration) *IPAPI {
	return &IPAPI{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Per-request context carries the timeout; the transport only
			// bounds dialing and pools connections.
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: DefaultDialTimeout,
				}).DialContext,
			},
		},
		timeout: timeout,
		cache:   newLRUCache[string, bool](CacheCapacity),
	}
}

// apiResponse is the subset of the ip-api.com answer we request.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Proxy   bool   `json:"proxy"`
	Hosting bool   `json:"hosting"`
}

// Check classifies ip. Private, loopback, and unresolved addresses are never
// anonymizing and skip the remote lookup entirely.
func (c *IPAPI) Check(ctx context.Context, ip string) Result {
	if skipLookup(ip) {
		return Result{}
	}

	if anonymizing, ok := c.cache.Get(ip); ok {
		return Result{Anonymizing: anonymizing}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + "/" + ip + "?fields=status,message,proxy,hosting"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Err: "invalid reputation request: " + err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("reputation lookup failed, failing open", "ip", ip, "error", err)
		return Result{Err: "API connection failed"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("reputation response unreadable, failing open", "ip", ip, "error", err)
		return Result{Err: "API connection failed"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("reputation service returned error status, failing open",
			"ip", ip, "status", resp.StatusCode)
		return Result{Err: "API error: HTTP " + resp.Status}
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Warn("reputation response undecodable, failing open", "ip", ip, "error", err)
		return Result{Err: "API error: bad response"}
	}

	if parsed.Status != "success" {
		return Result{Err: "API error: " + parsed.Message}
	}

	anonymizing := parsed.Proxy || parsed.Hosting
	c.cache.Put(ip, anonymizing)
	return Result{Anonymizing: anonymizing}
}

// skipLookup reports whether an address can never be anonymizing
// infrastructure: private ranges, loopback, link-local, or the "unknown"
// sentinel from the IP resolver.
func skipLookup(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
