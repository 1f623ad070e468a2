// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webhook

import (
	"fmt"
	"sync"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
)

// Registry implements domain.WebhookValidatorRegistry
type Registry struct {
	validators map[string]domain.WebhookValidator
	mu         sync.RWMutex
}

// NewRegistry creates a new webhook validator registry
func NewRegistry() *Registry {
	return &Registry{
		validators: make(map[string]domain.WebhookValidator),
	}
}

// GetValidator returns the webhook validator for the specified source
func (r *Registry) GetValidator(source string) (domain.WebhookValidator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validator, exists := r.validators[source]
	if !exists {
		return nil, fmt.Errorf("webhook validator for source %s not found", source)
	}

	return validator, nil
}

// RegisterValidator registers a webhook validator for a source
func (r *Registry) RegisterValidator(source string, validator domain.WebhookValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.validators[source] = validator
}
