// Package render is a thin client for the Render.com v1 REST API.
//
// Every call attaches the bearer credential and a bounded timeout, maps
// HTTP statuses to typed errors, and unwraps cursor-paginated list
// responses. The client holds no mutable state and is safe for concurrent
// use. It never retries: POST /services/{id}/deploys is not idempotent,
// and retry policy for everything else belongs to the caller.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"renderctl/internal/config"
	"renderctl/pkg/logging"
)

const (
	// pageLimit is how many items each paginated list request asks for.
	pageLimit = 100

	// maxPages bounds cursor-following so a misbehaving upstream cannot
	// keep us iterating forever.
	maxPages = 10
)

// Client talks to the Render API. Construct with NewClient; the zero value
// is not usable.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
}

// NewClient builds a client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		userAgent: "renderctl",
	}
}

// do performs one HTTP request and decodes a 2xx JSON body into out.
// Non-2xx statuses become *APIError; transport faults become ErrTimeout or
// ErrConnection. The credential is attached here and nowhere else.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("Client", "%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err, method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

func classifyTransportError(err error, method, path string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	// Bound the error body read: upstream controls this payload.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var body apiErrorBody
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// ListServices returns all services the credential can see, following
// cursor pagination and preserving upstream order.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var services []Service
	cursor := ""
	for page := 0; page < maxPages; page++ {
		query := url.Values{"limit": {strconv.Itoa(pageLimit)}}
		if cursor != "" {
			query.Set("cursor", cursor)
		}
		var envelopes []serviceEnvelope
		if err := c.do(ctx, http.MethodGet, "/services", query, nil, &envelopes); err != nil {
			return nil, err
		}
		for _, e := range envelopes {
			services = append(services, e.Service)
		}
		if len(envelopes) < pageLimit {
			break
		}
		cursor = envelopes[len(envelopes)-1].Cursor
	}
	return services, nil
}

// GetService returns one service by id. A missing id yields ErrNotFound.
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	var svc Service
	path := "/services/" + url.PathEscape(serviceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// GetServiceLogs returns up to limit log entries for a service, in the
// order the upstream sends them.
func (c *Client) GetServiceLogs(ctx context.Context, serviceID string, limit int) ([]LogEntry, error) {
	var logs []LogEntry
	path := "/services/" + url.PathEscape(serviceID) + "/logs"
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListDeploys returns the deploy history of a service, most recent first
// per upstream ordering, following cursor pagination.
func (c *Client) ListDeploys(ctx context.Context, serviceID string) ([]Deploy, error) {
	var deploys []Deploy
	path := "/services/" + url.PathEscape(serviceID) + "/deploys"
	cursor := ""
	for page := 0; page < maxPages; page++ {
		query := url.Values{"limit": {strconv.Itoa(pageLimit)}}
		if cursor != "" {
			query.Set("cursor", cursor)
		}
		var envelopes []deployEnvelope
		if err := c.do(ctx, http.MethodGet, path, query, nil, &envelopes); err != nil {
			return nil, err
		}
		for _, e := range envelopes {
			deploys = append(deploys, e.Deploy)
		}
		if len(envelopes) < pageLimit {
			break
		}
		cursor = envelopes[len(envelopes)-1].Cursor
	}
	return deploys, nil
}

// CreateDeploy triggers a new deploy for a service. This mutates upstream
// state and is not idempotent: it is issued exactly once, never retried,
// and cancelling after the request is on the wire does not undo the deploy.
func (c *Client) CreateDeploy(ctx context.Context, serviceID string) (*Deploy, error) {
	var deploy Deploy
	path := "/services/" + url.PathEscape(serviceID) + "/deploys"
	if err := c.do(ctx, http.MethodPost, path, nil, struct{}{}, &deploy); err != nil {
		return nil, err
	}
	return &deploy, nil
}

// GetDeploy returns one deploy by its id.
func (c *Client) GetDeploy(ctx context.Context, deployID string) (*Deploy, error) {
	var deploy Deploy
	path := "/deploys/" + url.PathEscape(deployID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &deploy); err != nil {
		return nil, err
	}
	return &deploy, nil
}

// GetEnvGroup returns one environment group by its id.
func (c *Client) GetEnvGroup(ctx context.Context, envGroupID string) (*EnvGroup, error) {
	var group EnvGroup
	path := "/environments/" + url.PathEscape(envGroupID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetOwner returns the account that owns the configured API key.
func (c *Client) GetOwner(ctx context.Context) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, http.MethodGet, "/owners/me", nil, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}
