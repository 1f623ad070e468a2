// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
)

// handleMessageNew answers a chat message posted in a completed meeting's
// channel with a completion generated under the agent's identity.
func (s *WebhookService) handleMessageNew(ctx context.Context, event models.MessageNewEvent) (*WebhookResponse, error) {
	senderID := event.SenderID()
	channelID := event.ChannelID
	text := event.Text()
	if senderID == "" || channelID == "" || strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("missing sender, channel, or message text")
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", channelID))

	// Chat events arrive for channels of meetings in every state, and for
	// channels this service never created. The agent only replies once the
	// meeting is over; everything else is expected noise.
	meeting, err := s.meetingRepository.GetMeeting(ctx, channelID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.DebugContext(ctx, "chat message for unknown meeting, ignoring")
			return &WebhookResponse{Status: StatusIgnored}, nil
		}
		return nil, err
	}
	if meeting.Status != models.MeetingStatusCompleted {
		slog.DebugContext(ctx, "chat message for meeting that is not completed, ignoring", "status", meeting.Status)
		return &WebhookResponse{Status: StatusIgnored}, nil
	}

	agent, err := s.agentRepository.GetAgent(ctx, meeting.AgentUID)
	if err != nil {
		slog.ErrorContext(ctx, "agent lookup failed for completed meeting", logging.ErrKey, err, "agent_uid", meeting.AgentUID)
		return nil, err
	}

	// Never reply to the agent's own messages; that loops forever.
	if senderID == agent.UID {
		slog.DebugContext(ctx, "chat message authored by the agent itself, ignoring")
		return &WebhookResponse{Status: StatusIgnored}, nil
	}

	reply, err := s.generateReply(ctx, meeting, agent, text)
	if err != nil {
		return nil, err
	}

	if err := s.publishReply(ctx, channelID, agent, reply); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "agent reply published", "agent_uid", agent.UID)
	return &WebhookResponse{Status: StatusOK}, nil
}

// generateReply builds the conversation context and runs one completion
func (s *WebhookService) generateReply(ctx context.Context, meeting *models.Meeting, agent *models.Agent, incomingText string) (string, error) {
	historyCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	history, err := s.chatProvider.RecentMessages(historyCtx, meeting.UID, historyFetchLimit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch channel history", logging.ErrKey, err)
		return "", domain.NewInternalError("failed to fetch channel history", err)
	}

	req := models.CompletionRequest{
		SystemPrompt: buildSystemPrompt(meeting, agent),
		Turns:        buildConversationTurns(history, agent.UID, incomingText),
	}

	completionCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	reply, err := s.completionProvider.Complete(completionCtx, req)
	if err != nil {
		slog.ErrorContext(ctx, "completion request failed", logging.ErrKey, err)
		return "", domain.NewInternalError("failed to generate reply", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", domain.NewValidationError("no response from AI")
	}

	return reply, nil
}

// publishReply upserts the agent's chat identity and posts the reply into
// the channel under it.
func (s *WebhookService) publishReply(ctx context.Context, channelID string, agent *models.Agent, reply string) error {
	agentUser := models.ChatUser{
		ID:       agent.UID,
		Name:     agent.Name,
		ImageURL: agentAvatarURL(agent.Name),
	}

	upsertCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	if err := s.chatProvider.UpsertUser(upsertCtx, agentUser); err != nil {
		slog.ErrorContext(ctx, "failed to upsert agent chat identity", logging.ErrKey, err)
		return domain.NewInternalError("failed to upsert agent identity", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	if err := s.chatProvider.SendMessage(sendCtx, channelID, models.OutgoingChatMessage{
		Text: reply,
		User: agentUser,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send agent reply", logging.ErrKey, err)
		return domain.NewInternalError("failed to send reply", err)
	}

	return nil
}
