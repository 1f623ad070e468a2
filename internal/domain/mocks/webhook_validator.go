// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
)

// MockWebhookValidator implements WebhookValidator for testing
type MockWebhookValidator struct {
	mock.Mock
}

func (m *MockWebhookValidator) ValidateSignature(body []byte, signature string) error {
	args := m.Called(body, signature)
	return args.Error(0)
}

// MockWebhookValidatorRegistry implements WebhookValidatorRegistry for testing
type MockWebhookValidatorRegistry struct {
	mock.Mock
}

func (m *MockWebhookValidatorRegistry) GetValidator(source string) (domain.WebhookValidator, error) {
	args := m.Called(source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.WebhookValidator), args.Error(1)
}

func (m *MockWebhookValidatorRegistry) RegisterValidator(source string, validator domain.WebhookValidator) {
	m.Called(source, validator)
}
