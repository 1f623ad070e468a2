// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/akamensky/base58"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// systemPromptTemplate frames the agent's post-meeting chat persona. The
// meeting summary and the agent's original behavioral instructions are
// embedded verbatim.
const systemPromptTemplate = `You are an AI assistant helping the user revisit a recently completed meeting.
Below is the meeting summary:

%s

Behavioral guidelines from the original meeting assistant:
%s

IMPORTANT RULES:
- When asked for the summary, provide it directly and concisely WITHOUT rephrasing or elaborating multiple times.
- Keep responses short and to the point.
- Do not repeat information unnecessarily.
- If asked a specific question, answer it directly.
- Only elaborate when specifically asked for more details.
- Use the conversation history for context, but avoid redundancy.
- Never repeat your previous answers verbatim.
- If the same question is asked again, answer once briefly.

If the summary doesn't contain enough information to answer a question, briefly let the user know.`

// buildSystemPrompt composes the completion system prompt from the meeting's
// stored summary and the agent's instructions.
func buildSystemPrompt(meeting *models.Meeting, agent *models.Agent) string {
	return fmt.Sprintf(systemPromptTemplate, meeting.Summary, agent.Instructions)
}

// buildConversationTurns maps recent channel history into completion turns.
// Empty and whitespace-only messages are dropped, the most recent
// historyWindow messages are kept oldest first, and each turn's role follows
// authorship: the agent's own messages become assistant turns, everything
// else a user turn. The incoming message is appended last.
func buildConversationTurns(history []models.ChatMessage, agentUID, incomingText string) []models.ConversationTurn {
	filtered := make([]models.ChatMessage, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		filtered = append(filtered, msg)
	}
	if len(filtered) > historyWindow {
		filtered = filtered[len(filtered)-historyWindow:]
	}

	turns := make([]models.ConversationTurn, 0, len(filtered)+1)
	for _, msg := range filtered {
		role := models.TurnRoleUser
		if msg.SenderID == agentUID {
			role = models.TurnRoleAssistant
		}
		turns = append(turns, models.ConversationTurn{Role: role, Text: msg.Text})
	}

	return append(turns, models.ConversationTurn{Role: models.TurnRoleUser, Text: incomingText})
}

// agentAvatarURL derives a stable avatar for the agent's chat identity. The
// seed is a hash of the agent's name, so the same agent always renders the
// same avatar without storing one.
func agentAvatarURL(agentName string) string {
	sum := sha256.Sum256([]byte(agentName))
	seed := base58.Encode(sum[:8])
	return fmt.Sprintf("https://api.dicebear.com/9.x/bottts-neutral/svg?seed=%s", seed)
}
