// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// ChatProvider defines the interface for the chat platform. Channels are
// keyed by meeting UID.
type ChatProvider interface {
	// RecentMessages fetches up to limit recent messages from the channel,
	// ordered oldest first.
	RecentMessages(ctx context.Context, channelID string, limit int) ([]models.ChatMessage, error)

	// SendMessage publishes a message into the channel under the identity
	// carried by the message.
	SendMessage(ctx context.Context, channelID string, msg models.OutgoingChatMessage) error

	// UpsertUser creates or updates a chat user identity.
	UpsertUser(ctx context.Context, user models.ChatUser) error
}

// CompletionProvider defines the interface for the stateless LLM completion
// service. An empty completion is returned as an empty string, not an error.
type CompletionProvider interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
}
