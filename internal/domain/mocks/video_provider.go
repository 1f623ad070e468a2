// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// MockVideoProvider implements VideoProvider for testing
type MockVideoProvider struct {
	mock.Mock
}

func (m *MockVideoProvider) ConnectAgent(ctx context.Context, callID string, agent *models.Agent) error {
	args := m.Called(ctx, callID, agent)
	return args.Error(0)
}

func (m *MockVideoProvider) EndCall(ctx context.Context, callID string) error {
	args := m.Called(ctx, callID)
	return args.Error(0)
}
