// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

// WebhookValidator verifies the authenticity of a webhook request body
// against the signature presented by the sender.
type WebhookValidator interface {
	// ValidateSignature checks the signature over the exact raw request body.
	// Any failure is a hard rejection; there is no partial trust.
	ValidateSignature(body []byte, signature string) error
}

// WebhookValidatorRegistry selects the validator for a webhook source. The
// video and chat applications sign their webhooks with different secrets.
type WebhookValidatorRegistry interface {
	GetValidator(source string) (WebhookValidator, error)
	RegisterValidator(source string, validator WebhookValidator)
}
