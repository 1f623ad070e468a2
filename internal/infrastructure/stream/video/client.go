// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package video provides a client for the Stream Video realtime API.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// BaseURL is the base URL for the Stream Video API
	BaseURL = "https://video.stream-io-api.com/api/v2"
	// AuthURL is the OAuth token endpoint
	AuthURL = "https://video.stream-io-api.com/oauth/token"
	// DefaultClientTimeout is the default HTTP client timeout for Stream Video API requests
	DefaultClientTimeout = 30 * time.Second
)

// Client represents a Stream Video API client
type Client struct {
	httpClient  *http.Client
	config      Config
	oauthConfig *clientcredentials.Config
}

// Config holds the configuration for the Stream Video client
type Config struct {
	ClientID     string
	ClientSecret string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override auth URL for testing
	AuthURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// NewClient creates a new Stream Video API client
func NewClient(config Config) *Client {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.AuthURL == "" {
		config.AuthURL = AuthURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.AuthURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:      config,
		oauthConfig: oauthConfig,
	}
}

// getAuthenticatedClient returns an HTTP client that automatically handles OAuth2 authentication
func (c *Client) getAuthenticatedClient(ctx context.Context) *http.Client {
	ts := c.oauthConfig.TokenSource(ctx)
	return &http.Client{
		Timeout: c.config.Timeout,
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}
}

// doRequest performs a single authenticated HTTP request to the Stream Video
// API. Failed requests are not retried; callers decide whether a failure is
// fatal for the webhook that triggered it.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.getAuthenticatedClient(ctx).Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "stream video API request failed",
			logging.ErrKey, err,
			"method", method,
			"path", path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	slog.DebugContext(ctx, "stream video API request completed",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}

// parseErrorResponse attempts to parse a Stream API error response
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("stream video API error (status %d, code %d): %s", statusCode, errResp.Code, errResp.Message)
	}
	return fmt.Errorf("stream video API error (status %d): %s", statusCode, string(body))
}

// callPath builds an API path for a call, escaping the call ID which may
// contain a "kind:id" separator.
func callPath(callID, suffix string) string {
	return fmt.Sprintf("/calls/%s%s", url.PathEscape(callID), suffix)
}
