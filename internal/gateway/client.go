// Package gateway provides the configured HTTP client every domain service
// calls through. It owns the two cross-cutting stages: bearer injection from
// the session store on the way out, and failure classification (with the
// 401 session clear) on the way back. It performs a single attempt per call;
// retries are deliberately absent.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/session"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

// Client is the gateway HTTP client shared by all domain services.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	sessions   session.Store
}

// NewClient builds a Client bound to the configured base URL and timeout.
// The base URL is resolved once here, never re-inspected per request.
func NewClient(cfg *config.Config, store session.Store) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Gateway.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL(), "/"),
		userAgent: cfg.UserAgent,
		sessions:  store,
	}
}

// Sessions exposes the injected session store.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// Envelope is the standard response wrapper the gateway returns.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Decode unmarshals the envelope's data payload into out.
func (e *Envelope) Decode(out any) error {
	if len(e.Data) == 0 {
		return apierr.New(apierr.KindUnknown, "response missing data payload")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return apierr.New(apierr.KindUnknown, fmt.Sprintf("failed to decode response data: %v", err))
	}
	return nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post issues a POST request with a JSON payload.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, payload, out)
}

// Put issues a PUT request with a JSON payload.
func (c *Client) Put(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, payload, out)
}

// Patch issues a PATCH request with a JSON payload.
func (c *Client) Patch(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, payload, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// GetBytes issues a GET request and returns the raw response body, for
// binary endpoints such as file views.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.FromTransport(err)
	}
	return body, nil
}

// PostMultipart issues a POST request with a multipart form body built by
// the given function.
func (c *Client) PostMultipart(ctx context.Context, path string, build func(*multipart.Writer) error, out any) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	if err := build(mw); err != nil {
		return apierr.FromErr(fmt.Errorf("failed to build multipart form: %w", err))
	}
	if err := mw.Close(); err != nil {
		return apierr.FromErr(fmt.Errorf("failed to finalize multipart form: %w", err))
	}

	return c.do(ctx, http.MethodPost, path, buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return apierr.FromErr(fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewBuffer(jsonData)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// do is the single round-trip path for JSON endpoints: build the request,
// apply the outgoing interceptor, classify any failure, decode into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.roundTrip(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.FromTransport(err)
	}
	if len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apierr.New(apierr.KindUnknown, fmt.Sprintf("failed to decode response: %v", err))
	}
	return nil
}

// roundTrip performs one attempt against the gateway. Failed responses are
// classified exactly once here; a 401 additionally clears the session store
// before the error propagates.
func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apierr.FromErr(fmt.Errorf("failed to create request: %w", err))
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Outgoing interceptor: attach the bearer token when a session exists.
	// Requests without a session proceed uncredentialed; rejecting them is
	// the server's call.
	if sess, err := c.sessions.Load(ctx); err == nil && sess.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("Gateway request failed before a response arrived")
		return nil, apierr.FromTransport(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			respBody = nil
		}

		apiErr := apierr.FromResponse(resp.StatusCode, resp.Status, respBody)

		if resp.StatusCode == http.StatusUnauthorized {
			if clearErr := c.sessions.Clear(ctx); clearErr != nil {
				log.Error().
					Err(clearErr).
					Msg("Failed to clear session after authentication failure")
			}
		}

		log.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("kind", string(apiErr.Kind)).
			Msg("Gateway request rejected")

		return nil, apiErr
	}

	return resp, nil
}
