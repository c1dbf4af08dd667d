package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transport-level failures. Callers match these with errors.Is.
var (
	ErrTransport         = errors.New("backend unavailable")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrEmptyResponse     = errors.New("Respuesta vacía del servidor")
)

// HTTPError is a non-2xx response. Message is the server's error text when it
// sent one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// ServerError is a 2xx envelope carrying success=false.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "Error en la respuesta del servidor"
	}
	return e.Message
}

// Indicator is the global loading indicator toggled around every call.
type Indicator interface {
	Show()
	Hide()
}

// Client handles all communication with the UniSocial API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	indicator  Indicator
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithIndicator sets the loading indicator.
func WithIndicator(ind Indicator) Option {
	return func(c *Client) {
		if ind != nil {
			c.indicator = ind
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API rooted at baseURL (e.g. https://host/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		indicator:  NopIndicator{},
		logger:     slog.Default().With("component", "apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes the JSON response into out. The loading
// indicator is shown for the whole call, whatever the outcome.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	c.indicator.Show()
	defer c.indicator.Hide()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	logger := c.logger.With("method", method, "url", url, "request_id", reqID)
	logger.Debug("Making request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("API request failed", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrTransport, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &envelope) != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &HTTPError{Status: resp.StatusCode}
		}
		logger.Warn("API returned a non-JSON body", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrMalformedResponse, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Info("API returned an error status", "status", resp.StatusCode, "error", envelope.Error)
		return &HTTPError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ErrEmptyResponse
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

// Envelope is the common success/error wrapper of every API response.
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"mensaje,omitempty"`
}

// Validate rejects empty envelopes and explicit success=false.
func (e *Envelope) Validate() error {
	if e == nil {
		return ErrEmptyResponse
	}
	if e.Success != nil && !*e.Success {
		return &ServerError{Message: e.Error}
	}
	return nil
}

// OK reports whether the envelope carries success=true.
func (e *Envelope) OK() bool {
	return e != nil && e.Success != nil && *e.Success
}
