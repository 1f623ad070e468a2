// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// MockMeetingProcessingSender implements MeetingProcessingSender for testing
type MockMeetingProcessingSender struct {
	mock.Mock
}

func (m *MockMeetingProcessingSender) SendMeetingProcessing(ctx context.Context, data models.MeetingProcessingMessage) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
