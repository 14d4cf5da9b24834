package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client sends JSON requests to the flight management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit paces outgoing requests. A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API at baseURL. Requests are bounded
// only by the caller's context.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends body as JSON and decodes a successful response into out. The
// response's message field is returned on success and carried by the
// RemoteRejection on failure.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &TransportFailure{Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", &TransportFailure{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", &TransportFailure{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("%s %s [%s]", method, path, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("%s %s [%s] failed: %v", method, path, requestID, err)
		return "", &TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportFailure{Err: fmt.Errorf("read response: %w", err)}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	c.logger.Debug("%s %s [%s] -> %d", method, path, requestID, resp.StatusCode)

	var envelope models.MessageResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil && success {
			return "", &TransportFailure{Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	if !success {
		return "", &RemoteRejection{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", &TransportFailure{Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	return envelope.Message, nil
}
