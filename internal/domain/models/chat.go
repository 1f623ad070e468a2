// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// ChatMessage is a single message from a chat channel's history.
type ChatMessage struct {
	SenderID string `json:"sender_id"`
	Text     string `json:"text"`
}

// ChatUser is a chat participant identity. Agents are upserted with a
// deterministic avatar derived from their name so that replies render
// consistently across sessions.
type ChatUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// OutgoingChatMessage is a message published into a chat channel.
type OutgoingChatMessage struct {
	Text string   `json:"text"`
	User ChatUser `json:"user"`
}

// TurnRole is the conversational role of a turn sent to the completion
// provider.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one turn of bounded chat context, derived from channel
// history and never persisted.
type ConversationTurn struct {
	Role TurnRole
	Text string
}

// CompletionRequest is a stateless request to the LLM completion provider.
// Turns are ordered oldest first; the incoming message is the last turn.
type CompletionRequest struct {
	SystemPrompt string
	Turns        []ConversationTurn
}
