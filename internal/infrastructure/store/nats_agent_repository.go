// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// NatsAgentRepository is the NATS KV store repository for agents.
type NatsAgentRepository struct {
	*NatsBaseRepository[models.Agent]
}

// NewNatsAgentRepository creates a new NATS KV store repository for agents.
func NewNatsAgentRepository(agents INatsKeyValue) *NatsAgentRepository {
	return &NatsAgentRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Agent](agents, "agent"),
	}
}

func (s *NatsAgentRepository) GetAgent(ctx context.Context, agentUID string) (*models.Agent, error) {
	return s.Get(ctx, agentUID)
}
