// Package api wraps the field-issue service's REST endpoints. Every call
// hits the network: no retries, no caching. Errors are typed so callers can
// distinguish transport failures from malformed bodies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// DefaultTimeout bounds each request so a dead server cannot wedge the UI's
// command goroutines forever.
const DefaultTimeout = 15 * time.Second

// Client talks to a field-issue server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL (scheme + host,
// trailing slash tolerated).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// NetworkError reports a transport failure or a non-2xx response.
// StatusCode is 0 when the request never completed.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: server returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a response body that was not valid JSON for the
// expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FetchIssues retrieves the issue collection matching the given criteria.
// Empty filter fields are omitted from the query string; the server owns
// filter semantics entirely.
func (c *Client) FetchIssues(ctx context.Context, criteria model.FilterCriteria) ([]model.Issue, error) {
	u := c.baseURL + "/api/issues"
	if q := criteria.Values().Encode(); q != "" {
		u += "?" + q
	}

	var issues []model.Issue
	if err := c.getJSON(ctx, "fetch issues", u, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// FetchResponses retrieves the response history for one issue, in the order
// the server defines. An empty history is a valid, non-error result.
func (c *Client) FetchResponses(ctx context.Context, issueID string) ([]model.ResponseEntry, error) {
	u := c.baseURL + "/api/responses/" + url.PathEscape(issueID)

	var entries []model.ResponseEntry
	if err := c.getJSON(ctx, "fetch responses", u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateIssueStatus issues a partial update moving the issue to newStatus
// and returns the server's updated record.
func (c *Client) UpdateIssueStatus(ctx context.Context, issueID string, newStatus model.Status) (model.Issue, error) {
	const op = "update issue status"
	u := c.baseURL + "/api/issues/" + url.PathEscape(issueID)

	body, err := json.Marshal(map[string]string{"status": string(newStatus)})
	if err != nil {
		return model.Issue{}, fmt.Errorf("%s: encoding body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return model.Issue{}, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Issue{}, &NetworkError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Issue{}, &NetworkError{Op: op, URL: u, StatusCode: resp.StatusCode}
	}

	var updated model.Issue
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return model.Issue{}, &DecodeError{Op: op, Err: err}
	}
	return updated, nil
}

// getJSON performs a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, URL: u, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
