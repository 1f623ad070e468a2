// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// MeetingStatus is the lifecycle status of a meeting.
type MeetingStatus string

// Meeting lifecycle statuses. Transitions follow a strict partial order:
// upcoming -> active -> processing -> completed, with cancelled reachable
// from upcoming and active. This service only drives the edges into active
// and into processing; completion and cancellation belong to the transcript
// summarization pipeline and the CRUD flow respectively.
const (
	MeetingStatusUpcoming   MeetingStatus = "upcoming"
	MeetingStatusActive     MeetingStatus = "active"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// Meeting is the key-value store representation of a meeting. The meeting UID
// doubles as the provider's call ID and the chat channel ID.
type Meeting struct {
	UID           string        `json:"uid"`
	AgentUID      string        `json:"agent_uid"`
	Status        MeetingStatus `json:"status"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
	EndedAt       *time.Time    `json:"ended_at,omitempty"`
	TranscriptURL string        `json:"transcript_url,omitempty"`
	RecordingURL  string        `json:"recording_url,omitempty"`
	Summary       string        `json:"summary,omitempty"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

// CanStart reports whether a session_started event may move the meeting to
// active. Only a fresh meeting qualifies; replayed start events fail this
// guard and are rejected as not found.
func (m *Meeting) CanStart() bool {
	switch m.Status {
	case MeetingStatusActive, MeetingStatusProcessing, MeetingStatusCompleted, MeetingStatusCancelled:
		return false
	}
	return true
}

// CanEnd reports whether a session_ended event may move the meeting to
// processing. The guard makes duplicate and out-of-order end events no-ops.
func (m *Meeting) CanEnd() bool {
	return m.Status == MeetingStatusActive
}
