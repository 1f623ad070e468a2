// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils contains internal helpers shared across the service.
package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// SanitizeAssetURL validates a provider-supplied asset URL (transcript or
// recording) before it is stored on a meeting. Only absolute HTTP and HTTPS
// URLs with a host are accepted; surrounding whitespace is trimmed.
func SanitizeAssetURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL has no host")
	}

	return parsed.String(), nil
}
