package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/neexbeast/quest-generator/internal/api"
	"github.com/neexbeast/quest-generator/internal/quest"
)

const (
	// DefaultBaseURL is the API root of a locally running server.
	DefaultBaseURL = "http://localhost:3001/api"
	// DefaultTimeout bounds how long a caller waits for one generation.
	DefaultTimeout = 60 * time.Second
)

// Client calls the quest API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for baseURL (e.g. "http://localhost:3001/api").
// A non-positive timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GenerateQuest asks the server for one quest.
func (c *Client) GenerateQuest(ctx context.Context, req quest.GenerationRequest) (*quest.Quest, error) {
	var resp api.GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/quests/generate", req, &resp); err != nil {
		return nil, err
	}
	if resp.Quest == nil {
		return nil, &APIError{Message: "The server response did not contain a quest.", StatusCode: http.StatusOK}
	}
	return resp.Quest, nil
}

// DemoQuests fetches the server's fixed demo quests.
func (c *Client) DemoQuests(ctx context.Context) ([]quest.Quest, quest.DemoMetadata, error) {
	var resp api.DemoResponse
	if err := c.do(ctx, http.MethodGet, "/quests/demo", nil, &resp); err != nil {
		return nil, quest.DemoMetadata{}, err
	}
	return resp.Quests, resp.Metadata, nil
}

// Health calls the liveness endpoint, which lives beside the API root.
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var resp api.HealthResponse
	root := strings.TrimSuffix(c.baseURL, "/api")
	if err := c.doURL(ctx, http.MethodGet, root+"/health", nil, &resp); err != nil {
		return api.HealthResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	return c.doURL(ctx, method, c.baseURL+path, body, dst)
}

// doURL sends one request and classifies every failure as *APIError.
func (c *Client) doURL(ctx context.Context, method, rawURL string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "Could not encode the request.", Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return &APIError{Message: "Could not build the request.", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return statusError(resp.StatusCode, envelope.Error, envelope.Details)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &APIError{
			Message:    "The server returned an unreadable response.",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response from %s: %w", rawURL, err),
		}
	}
	return nil
}

func transportError(err error) *APIError {
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Message: msgTimeout, IsNetworkError: true, Err: err}
	}
	return &APIError{Message: msgNetwork, IsNetworkError: true, Err: err}
}
