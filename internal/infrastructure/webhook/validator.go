// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Webhook sources with distinct signing secrets.
const (
	SourceVideo = "video"
	SourceChat  = "chat"
)

// StreamWebhookValidator validates Stream webhook signatures. Stream signs
// the raw request body with HMAC-SHA256 using the application's API secret
// and sends the hex digest in the X-Signature header.
type StreamWebhookValidator struct {
	apiSecret string
}

// NewStreamWebhookValidator creates a new Stream webhook validator
func NewStreamWebhookValidator(apiSecret string) *StreamWebhookValidator {
	return &StreamWebhookValidator{
		apiSecret: apiSecret,
	}
}

// ValidateSignature validates the signature over the exact raw body bytes.
// The body must not be re-serialized before validation; any mutation breaks
// the digest.
func (v *StreamWebhookValidator) ValidateSignature(body []byte, signature string) error {
	if v.apiSecret == "" {
		return fmt.Errorf("webhook API secret not configured")
	}

	if signature == "" {
		return fmt.Errorf("missing webhook signature")
	}

	h := hmac.New(sha256.New, []byte(v.apiSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	// Compare signatures using constant-time comparison
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return fmt.Errorf("invalid webhook signature")
	}

	return nil
}
