// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
)

// INatsConn is the NATS connection interface needed by the [MessageBuilder].
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// IsReady checks if the message builder can publish messages.
func (m *MessageBuilder) IsReady() bool {
	return m.NatsConn != nil && m.NatsConn.IsConnected()
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// SendMeetingProcessing publishes the transcript-ready trigger for the
// summarization pipeline. Publishing is fire-and-forget from the webhook's
// perspective: delivery is at-least-once and the consumer dedupes on meeting
// UID plus transcript URL.
func (m *MessageBuilder) SendMeetingProcessing(ctx context.Context, data models.MeetingProcessingMessage) error {
	messageBytes, err := msgpack.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into msgpack", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.MeetingProcessingSubject, messageBytes)
}
