// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package chat provides a client for the Stream Chat API.
package chat

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
)

const (
	// BaseURL is the base URL for the Stream Chat API
	BaseURL = "https://chat.stream-io-api.com"
	// DefaultClientTimeout is the default HTTP client timeout for Stream Chat API requests
	DefaultClientTimeout = 30 * time.Second
	// ChannelType is the channel type used for meeting chat channels
	ChannelType = "messaging"
)

// Client represents a Stream Chat API client
type Client struct {
	httpClient *http.Client
	config     Config
}

// Config holds the configuration for the Stream Chat client
type Config struct {
	APIKey      string
	ServerToken string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// NewClient creates a new Stream Chat API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// doRequest performs a single authenticated HTTP request to the Stream Chat
// API. Failed requests are not retried.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	reqURL := c.config.BaseURL + path
	if u, err := url.Parse(reqURL); err == nil {
		q := u.Query()
		q.Set("api_key", c.config.APIKey)
		u.RawQuery = q.Encode()
		reqURL = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.config.ServerToken)
	req.Header.Set("Stream-Auth-Type", "jwt")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "stream chat API request failed",
			logging.ErrKey, err,
			"method", method,
			"path", path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	slog.DebugContext(ctx, "stream chat API request completed",
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
		return fmt.Errorf("stream chat API error (status %d, code %d): %s", statusCode, errResp.Code, errResp.Message)
	}
	return fmt.Errorf("stream chat API error (status %d): %s", statusCode, string(body))
}

// channelPath builds an API path for a channel in the meeting channel type.
func channelPath(channelID, suffix string) string {
	return fmt.Sprintf("/channels/%s/%s%s", ChannelType, url.PathEscape(channelID), suffix)
}
