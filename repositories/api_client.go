package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dosada05/football-clinic/metrics"
)

var (
	// ErrAPIUnavailable covers transport failures and unreadable responses.
	ErrAPIUnavailable = errors.New("registrations api unavailable")
	// ErrAPIRejected covers non-2xx responses and {success:false} payloads.
	ErrAPIRejected = errors.New("request rejected by registrations api")
	ErrNotFound    = errors.New("resource not found in registrations api")
)

const maxResponseBytes = 4 << 20

// APIError is returned when the API answered but did not report success.
// Message is the server-provided text, possibly empty.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: api responded %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: api responded %d", e.Operation, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrAPIRejected
}

// ServerMessage returns the message the API attached to a failure, if err
// carries one.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// APIClient speaks the {success, data, message} envelope of the external
// registrations/payments API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewAPIClient(baseURL string, httpClient *http.Client, m *metrics.Metrics) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		metrics:    m,
	}
}

type envelopeStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do sends one request and decodes the response into out when the API
// reports success. out may be nil.
func (c *APIClient) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		switch {
		case errors.Is(err, ErrAPIUnavailable):
			outcome = "unavailable"
		case err != nil:
			outcome = "rejected"
		}
		c.metrics.ObserveAPICall(op, outcome, time.Since(start))
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request body: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAPIUnavailable, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: failed to read response: %w", ErrAPIUnavailable, op, err)
	}

	var status envelopeStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{Operation: op, StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("%w: %s: malformed response body: %w", ErrAPIUnavailable, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !status.Success {
		return &APIError{Operation: op, StatusCode: resp.StatusCode, Message: status.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: %s: failed to decode response: %w", ErrAPIUnavailable, op, err)
		}
	}
	return nil
}
