// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/webhook"
)

type serviceMocks struct {
	meetingRepo *mocks.MockMeetingRepository
	agentRepo   *mocks.MockAgentRepository
	registry    *mocks.MockWebhookValidatorRegistry
	validator   *mocks.MockWebhookValidator
	video       *mocks.MockVideoProvider
	chat        *mocks.MockChatProvider
	completion  *mocks.MockCompletionProvider
	sender      *mocks.MockMeetingProcessingSender
}

func newTestWebhookService() (*WebhookService, *serviceMocks) {
	m := &serviceMocks{
		meetingRepo: &mocks.MockMeetingRepository{},
		agentRepo:   &mocks.MockAgentRepository{},
		registry:    &mocks.MockWebhookValidatorRegistry{},
		validator:   &mocks.MockWebhookValidator{},
		video:       &mocks.MockVideoProvider{},
		chat:        &mocks.MockChatProvider{},
		completion:  &mocks.MockCompletionProvider{},
		sender:      &mocks.MockMeetingProcessingSender{},
	}

	service := NewWebhookService(
		m.meetingRepo,
		m.agentRepo,
		m.registry,
		m.video,
		m.chat,
		m.completion,
		m.sender,
	)

	return service, m
}

// expectValidSignature wires the registry and validator mocks to accept any
// signature for the given source.
func (m *serviceMocks) expectValidSignature(source string) {
	m.registry.On("GetValidator", source).Return(m.validator, nil)
	m.validator.On("ValidateSignature", mock.Anything, mock.Anything).Return(nil)
}

func signedRequest(body string) WebhookRequest {
	return WebhookRequest{
		Signature: "test-signature",
		APIKey:    "test-api-key",
		RawBody:   []byte(body),
	}
}

func TestWebhookService_ServiceReady(t *testing.T) {
	service, _ := newTestWebhookService()
	assert.True(t, service.ServiceReady())

	service.meetingRepository = nil
	assert.False(t, service.ServiceReady())
}

func TestWebhookService_ProcessWebhookEvent_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		req  WebhookRequest
	}{
		{
			name: "missing signature",
			req:  WebhookRequest{APIKey: "key", RawBody: []byte(`{"type":"call.session_started"}`)},
		},
		{
			name: "missing API key",
			req:  WebhookRequest{Signature: "sig", RawBody: []byte(`{"type":"call.session_started"}`)},
		},
		{
			name: "missing both",
			req:  WebhookRequest{RawBody: []byte(`{"type":"call.session_started"}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestWebhookService()

			resp, err := service.ProcessWebhookEvent(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

			// Rejected before any verification, storage, or provider work.
			m.registry.AssertNotCalled(t, "GetValidator", mock.Anything)
			m.meetingRepo.AssertNotCalled(t, "GetMeeting", mock.Anything, mock.Anything)
			m.meetingRepo.AssertNotCalled(t, "GetMeetingWithRevision", mock.Anything, mock.Anything)
		})
	}
}

func TestWebhookService_ProcessWebhookEvent_InvalidSignature(t *testing.T) {
	service, m := newTestWebhookService()
	m.registry.On("GetValidator", webhook.SourceVideo).Return(m.validator, nil)
	m.validator.On("ValidateSignature", mock.Anything, mock.Anything).Return(errors.New("invalid webhook signature"))

	resp, err := service.ProcessWebhookEvent(context.Background(), signedRequest(`{"type":"call.session_started"}`))

	assert.Nil(t, resp)
	assert.Equal(t, domain.ErrorTypeUnauthorized, domain.GetErrorType(err))

	// No state mutation on a forged request.
	m.meetingRepo.AssertNotCalled(t, "UpdateMeeting", mock.Anything, mock.Anything, mock.Anything)
	m.meetingRepo.AssertNotCalled(t, "GetMeetingWithRevision", mock.Anything, mock.Anything)
}

func TestWebhookService_ProcessWebhookEvent_MalformedBody(t *testing.T) {
	service, m := newTestWebhookService()
	m.expectValidSignature(webhook.SourceVideo)

	resp, err := service.ProcessWebhookEvent(context.Background(), signedRequest(`not json at all`))

	assert.Nil(t, resp)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestWebhookService_ProcessWebhookEvent_UnknownEventType(t *testing.T) {
	service, m := newTestWebhookService()
	m.expectValidSignature(webhook.SourceVideo)

	resp, err := service.ProcessWebhookEvent(context.Background(), signedRequest(`{"type":"call.ring"}`))

	assert.NoError(t, err)
	assert.Equal(t, StatusIgnored, resp.Status)

	// Unknown kinds are acknowledged without touching anything.
	m.meetingRepo.AssertNotCalled(t, "GetMeeting", mock.Anything, mock.Anything)
	m.video.AssertNotCalled(t, "EndCall", mock.Anything, mock.Anything)
}

func TestWebhookService_ProcessWebhookEvent_ValidatorSelection(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedSource string
	}{
		{
			name:           "call events verify against the video app",
			body:           `{"type":"call.ring"}`,
			expectedSource: webhook.SourceVideo,
		},
		{
			name:           "message events verify against the chat app",
			body:           `{"type":"message.updated"}`,
			expectedSource: webhook.SourceChat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestWebhookService()
			m.expectValidSignature(tt.expectedSource)

			resp, err := service.ProcessWebhookEvent(context.Background(), signedRequest(tt.body))

			assert.NoError(t, err)
			assert.Equal(t, StatusIgnored, resp.Status)
			m.registry.AssertCalled(t, "GetValidator", tt.expectedSource)
		})
	}
}

func TestWebhookService_ProcessWebhookEvent_NoValidatorRegistered(t *testing.T) {
	service, m := newTestWebhookService()
	m.registry.On("GetValidator", webhook.SourceVideo).Return(nil, errors.New("no validator registered for source: video"))

	resp, err := service.ProcessWebhookEvent(context.Background(), signedRequest(`{"type":"call.session_started"}`))

	assert.Nil(t, resp)
	assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
}
