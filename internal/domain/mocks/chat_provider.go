// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// MockChatProvider implements ChatProvider for testing
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) RecentMessages(ctx context.Context, channelID string, limit int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatProvider) SendMessage(ctx context.Context, channelID string, msg models.OutgoingChatMessage) error {
	args := m.Called(ctx, channelID, msg)
	return args.Error(0)
}

func (m *MockChatProvider) UpsertUser(ctx context.Context, user models.ChatUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCompletionProvider implements CompletionProvider for testing
type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
