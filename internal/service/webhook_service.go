// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/webhook"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
)

// Webhook acknowledgement statuses. Ignored acknowledges an event the
// service deliberately took no action on; the sender must not retry it.
const (
	StatusOK      = "ok"
	StatusIgnored = "ignored"
)

// WebhookService processes Stream webhook events: call lifecycle events from
// the video application and message events from the chat application.
type WebhookService struct {
	meetingRepository  domain.MeetingRepository
	agentRepository    domain.AgentRepository
	validatorRegistry  domain.WebhookValidatorRegistry
	videoProvider      domain.VideoProvider
	chatProvider       domain.ChatProvider
	completionProvider domain.CompletionProvider
	messageSender      domain.MeetingProcessingSender
}

// WebhookRequest represents an inbound webhook request
type WebhookRequest struct {
	Signature string
	APIKey    string
	RawBody   []byte
}

// WebhookResponse represents the webhook acknowledgement
type WebhookResponse struct {
	Status string
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	meetingRepository domain.MeetingRepository,
	agentRepository domain.AgentRepository,
	validatorRegistry domain.WebhookValidatorRegistry,
	videoProvider domain.VideoProvider,
	chatProvider domain.ChatProvider,
	completionProvider domain.CompletionProvider,
	messageSender domain.MeetingProcessingSender,
) *WebhookService {
	return &WebhookService{
		meetingRepository:  meetingRepository,
		agentRepository:    agentRepository,
		validatorRegistry:  validatorRegistry,
		videoProvider:      videoProvider,
		chatProvider:       chatProvider,
		completionProvider: completionProvider,
		messageSender:      messageSender,
	}
}

// ServiceReady checks if the service is ready to process requests
func (s *WebhookService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.agentRepository != nil &&
		s.validatorRegistry != nil &&
		s.videoProvider != nil &&
		s.chatProvider != nil &&
		s.completionProvider != nil &&
		s.messageSender != nil
}

// ProcessWebhookEvent verifies and dispatches a single webhook event. It
// invokes at most one handler per request; unknown event types are
// acknowledged and dropped.
func (s *WebhookService) ProcessWebhookEvent(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	// Credentials must be present before the body is even parsed.
	if req.Signature == "" || req.APIKey == "" {
		return nil, domain.NewValidationError("missing signature or API key")
	}

	// Peek at the type discriminator to select which application's secret
	// signed the request. The discriminator is not trusted beyond that; the
	// payload itself is only decoded after the signature checks out.
	var envelope models.StreamEventEnvelope
	peekErr := json.Unmarshal(req.RawBody, &envelope)

	if err := s.validateSignature(ctx, req, envelope.Type); err != nil {
		return nil, err
	}

	// Only now that the signature checked out is a parse failure the
	// sender's problem rather than a forgery attempt.
	if peekErr != nil {
		return nil, domain.NewValidationError("malformed webhook payload", peekErr)
	}

	return s.dispatchEvent(ctx, envelope.Type, req.RawBody)
}

// validateSignature runs the verifier matching the event's source application
func (s *WebhookService) validateSignature(ctx context.Context, req WebhookRequest, eventType string) error {
	source := webhook.SourceVideo
	if models.IsChatEvent(eventType) {
		source = webhook.SourceChat
	}

	validator, err := s.validatorRegistry.GetValidator(source)
	if err != nil {
		slog.ErrorContext(ctx, "no webhook validator registered", logging.ErrKey, err, "source", source)
		return domain.NewInternalError("webhook validation not configured", err)
	}

	if err := validator.ValidateSignature(req.RawBody, req.Signature); err != nil {
		return domain.NewUnauthorizedError("invalid signature", err)
	}

	return nil
}

// dispatchEvent decodes the typed payload for a known event kind and routes
// it to its handler.
func (s *WebhookService) dispatchEvent(ctx context.Context, eventType string, body []byte) (*WebhookResponse, error) {
	ctx = logging.AppendCtx(ctx, slog.String("event_type", eventType))

	switch eventType {
	case models.StreamEventCallSessionStarted:
		var event models.CallSessionStartedEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleSessionStarted(ctx, event)

	case models.StreamEventCallSessionParticipantLeft:
		var event models.CallSessionParticipantLeftEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleParticipantLeft(ctx, event)

	case models.StreamEventCallSessionEnded:
		var event models.CallSessionEndedEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleSessionEnded(ctx, event)

	case models.StreamEventCallTranscriptionReady:
		var event models.CallTranscriptionReadyEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleTranscriptionReady(ctx, event)

	case models.StreamEventCallRecordingReady:
		var event models.CallRecordingReadyEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleRecordingReady(ctx, event)

	case models.StreamEventMessageNew:
		var event models.MessageNewEvent
		if err := unmarshalEvent(body, &event); err != nil {
			return nil, err
		}
		return s.handleMessageNew(ctx, event)
	}

	// The provider sends event kinds this service does not care about.
	slog.DebugContext(ctx, "ignoring unhandled webhook event type")
	return &WebhookResponse{Status: StatusIgnored}, nil
}

// unmarshalEvent decodes a typed event payload
func unmarshalEvent(body []byte, event any) error {
	if err := json.Unmarshal(body, event); err != nil {
		return domain.NewValidationError("malformed webhook payload", err)
	}
	return nil
}
