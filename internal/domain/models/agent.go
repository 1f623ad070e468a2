// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// Agent is the key-value store representation of an AI meeting agent.
// Agents are created and edited by an out-of-scope CRUD flow; this service
// only reads them. The agent UID doubles as its chat and voice participant
// identity.
type Agent struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Instructions string     `json:"instructions"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
