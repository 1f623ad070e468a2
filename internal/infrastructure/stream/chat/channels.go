// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// QueryChannelRequest represents the request to query a channel's state,
// including a window of recent messages.
type QueryChannelRequest struct {
	State    bool           `json:"state"`
	Messages MessagesWindow `json:"messages"`
}

// MessagesWindow bounds how many recent messages a channel query returns
type MessagesWindow struct {
	Limit int `json:"limit"`
}

// QueryChannelResponse represents the channel state returned by a query
type QueryChannelResponse struct {
	Messages []Message `json:"messages"`
}

// Message represents a chat message as returned by the API
type Message struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	User *User  `json:"user,omitempty"`
}

// User represents a chat user as carried on messages and upserts
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// SendMessageRequest represents the request to post a message into a channel
type SendMessageRequest struct {
	Message OutgoingMessage `json:"message"`
}

// OutgoingMessage represents a message posted on behalf of a user
type OutgoingMessage struct {
	Text   string `json:"text"`
	UserID string `json:"user_id"`
}

// UpsertUsersRequest represents the request to create or update users
type UpsertUsersRequest struct {
	Users map[string]User `json:"users"`
}

// Ensure that Client implements ChatProvider
var _ domain.ChatProvider = (*Client)(nil)

// RecentMessages fetches up to limit recent messages from the channel,
// ordered oldest first. Messages carry the sender's user ID so callers can
// attribute authorship.
func (c *Client) RecentMessages(ctx context.Context, channelID string, limit int) ([]models.ChatMessage, error) {
	request := &QueryChannelRequest{
		State: true,
		Messages: MessagesWindow{
			Limit: limit,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, channelPath(channelID, "/query"), request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var channelResp QueryChannelResponse
	if err := json.NewDecoder(resp.Body).Decode(&channelResp); err != nil {
		return nil, fmt.Errorf("failed to decode channel response: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(channelResp.Messages))
	for _, msg := range channelResp.Messages {
		m := models.ChatMessage{Text: msg.Text}
		if msg.User != nil {
			m.SenderID = msg.User.ID
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// SendMessage publishes a message into the channel under the identity carried
// by the message.
func (c *Client) SendMessage(ctx context.Context, channelID string, msg models.OutgoingChatMessage) error {
	request := &SendMessageRequest{
		Message: OutgoingMessage{
			Text:   msg.Text,
			UserID: msg.User.ID,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, channelPath(channelID, "/message"), request)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp.StatusCode, body)
	}

	return nil
}

// UpsertUser creates or updates a chat user identity.
func (c *Client) UpsertUser(ctx context.Context, user models.ChatUser) error {
	request := &UpsertUsersRequest{
		Users: map[string]User{
			user.ID: {
				ID:    user.ID,
				Name:  user.Name,
				Image: user.ImageURL,
			},
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/users", request)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp.StatusCode, body)
	}

	return nil
}
