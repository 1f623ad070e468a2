// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetingCanStart(t *testing.T) {
	tests := []struct {
		name     string
		status   MeetingStatus
		expected bool
	}{
		{name: "upcoming meeting can start", status: MeetingStatusUpcoming, expected: true},
		{name: "meeting with no status can start", status: "", expected: true},
		{name: "active meeting cannot start again", status: MeetingStatusActive, expected: false},
		{name: "processing meeting cannot start", status: MeetingStatusProcessing, expected: false},
		{name: "completed meeting cannot start", status: MeetingStatusCompleted, expected: false},
		{name: "cancelled meeting cannot start", status: MeetingStatusCancelled, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := &Meeting{UID: "meeting-1", Status: tt.status}
			assert.Equal(t, tt.expected, meeting.CanStart())
		})
	}
}

func TestMeetingCanEnd(t *testing.T) {
	tests := []struct {
		name     string
		status   MeetingStatus
		expected bool
	}{
		{name: "active meeting can end", status: MeetingStatusActive, expected: true},
		{name: "upcoming meeting cannot end", status: MeetingStatusUpcoming, expected: false},
		{name: "processing meeting cannot end again", status: MeetingStatusProcessing, expected: false},
		{name: "completed meeting cannot end", status: MeetingStatusCompleted, expected: false},
		{name: "cancelled meeting cannot end", status: MeetingStatusCancelled, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := &Meeting{UID: "meeting-1", Status: tt.status}
			assert.Equal(t, tt.expected, meeting.CanEnd())
		})
	}
}
