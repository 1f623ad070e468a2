// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// MeetingRepository defines the interface for meeting storage operations.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
//
// Updates take the revision returned by the paired read; the store rejects
// the write when the row changed in between. Lifecycle guards are evaluated
// against the read row and re-evaluated on conflict, which makes every
// transition an atomic conditional update rather than a read-then-write pair.
type MeetingRepository interface {
	GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetMeetingWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	UpdateMeeting(ctx context.Context, meeting *models.Meeting, revision uint64) error
}

// AgentRepository defines the interface for agent storage operations.
// Agents are read-only from this service's perspective.
type AgentRepository interface {
	GetAgent(ctx context.Context, agentUID string) (*models.Agent, error)
}
