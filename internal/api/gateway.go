package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fintrack-dev/fintrack/internal/apierr"
)

// maxBodyBytes caps how much of a response is read for decoding and
// diagnostics.
const maxBodyBytes = 1 << 20

// TokenSource supplies the current access token; empty means no token and
// the Authorization header is omitted.
type TokenSource interface {
	AccessToken() string
}

// Gateway is the single chokepoint for outbound calls: it attaches the
// bearer token, tags each request with an X-Request-ID, and normalizes
// every failure into the apierr taxonomy. It never retries and never
// triggers a token refresh on its own.
type Gateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

// New creates a Gateway against baseURL. timeout <= 0 leaves the HTTP
// client's default in place.
func New(baseURL string, tokens TokenSource, logger *logrus.Logger, timeout time.Duration) *Gateway {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		tokens:  tokens,
		log:     logger,
	}
}

// Get issues a GET and decodes the JSON response into out.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body, decoding the response into out when
// out is non-nil.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body, decoding the response into out when
// out is non-nil.
func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE, ignoring any response body.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		}).WithError(err).Debug("request failed in transport")
		return &apierr.UnknownError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &apierr.UnknownError{Status: resp.StatusCode, Err: err}
	}

	g.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start).Round(time.Millisecond).String(),
	}).Debug("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierr.FromResponse(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &apierr.UnknownError{Status: resp.StatusCode, Body: string(data), Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}
