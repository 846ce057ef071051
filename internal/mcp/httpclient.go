package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/workout"
)

// HTTPClient implements Planner by calling the fitgen JSON API. Used for
// remote MCP mode where the binary runs locally (stdio) but the Gemini key
// lives on the server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Planner.
var _ Planner = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}
}

// Generate posts req to /api/v1/plans. Failures are reported as
// *generate.Error so callers treat local and remote planners alike.
func (c *HTTPClient) Generate(ctx context.Context, req workout.Request) (*workout.Plan, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/plans", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &generate.Error{Kind: generate.KindTransport, Err: fmt.Errorf("httpclient: /api/v1/plans: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &generate.Error{Kind: generate.KindTransport, Err: fmt.Errorf("httpclient: read body: %w", err)}
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		return nil, &generate.Error{Kind: generate.KindConfiguration, Err: fmt.Errorf("httpclient: server not configured: %s", body)}
	default:
		return nil, &generate.Error{Kind: generate.KindTransport, Err: fmt.Errorf("httpclient: /api/v1/plans returned %d: %s", resp.StatusCode, body)}
	}

	var out struct {
		Plan *workout.Plan `json:"plan"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &generate.Error{Kind: generate.KindMalformedResponse, Err: fmt.Errorf("httpclient: decode plan: %w", err)}
	}
	if out.Plan == nil {
		return nil, &generate.Error{Kind: generate.KindMalformedResponse, Err: fmt.Errorf("httpclient: response has no plan")}
	}
	if err := out.Plan.Complete(); err != nil {
		return nil, &generate.Error{Kind: generate.KindIncompleteResult, Err: err}
	}
	return out.Plan, nil
}
