// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// VideoProvider defines the interface for the real-time video platform.
type VideoProvider interface {
	// ConnectAgent opens a realtime voice session that bridges the call to a
	// conversational model speaking as the given agent, seeded with the
	// agent's instructions as the system prompt.
	ConnectAgent(ctx context.Context, callID string, agent *models.Agent) error

	// EndCall ends the call unconditionally. Ending a call that has already
	// ended is a no-op, not an error.
	EndCall(ctx context.Context, callID string) error
}
