// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Stream webhook event types handled by this service. The provider sends
// more event kinds than these; unhandled kinds are acknowledged and dropped.
const (
	StreamEventCallSessionStarted         = "call.session_started"
	StreamEventCallSessionParticipantLeft = "call.session_participant_left"
	StreamEventCallSessionEnded           = "call.session_ended"
	StreamEventCallTranscriptionReady     = "call.transcription_ready"
	StreamEventCallRecordingReady         = "call.recording_ready"
	StreamEventMessageNew                 = "message.new"
)

// StreamEventEnvelope is the minimal shape used to peek at the event type
// discriminator before the payload content is trusted. The type field itself
// is not security-sensitive; it only selects which signature verifier runs.
type StreamEventEnvelope struct {
	Type string `json:"type"`
}

// IsChatEvent reports whether the event type belongs to the chat application
// rather than the video application. The two apps sign webhooks with
// different secrets.
func IsChatEvent(eventType string) bool {
	return strings.HasPrefix(eventType, "message.")
}

// StreamCall is the nested call object carried by session-scoped events.
// Custom holds caller-defined metadata; meeting creation stores the meeting
// UID there under the "meetingId" key.
type StreamCall struct {
	CID    string         `json:"cid"`
	Custom map[string]any `json:"custom"`
}

// streamCallCustom is the typed form of the call custom metadata.
type streamCallCustom struct {
	MeetingUID string `mapstructure:"meetingId"`
}

// MeetingUID extracts the meeting UID from the call's custom metadata.
// Returns an empty string when the metadata is absent or malformed.
func (c *StreamCall) MeetingUID() string {
	var custom streamCallCustom
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &custom})
	if err != nil {
		return ""
	}
	if err := decoder.Decode(c.Custom); err != nil {
		return ""
	}
	return custom.MeetingUID
}

// MeetingUIDFromCallCID extracts the meeting UID from a composite call
// correlation string formatted "<kind>:<id>". Returns an empty string when
// the string has no id segment.
func MeetingUIDFromCallCID(callCID string) string {
	parts := strings.SplitN(callCID, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// CallSessionStartedEvent is the payload for call.session_started events.
type CallSessionStartedEvent struct {
	Type string     `json:"type"`
	Call StreamCall `json:"call"`
}

// CallSessionParticipantLeftEvent is the payload for
// call.session_participant_left events.
type CallSessionParticipantLeftEvent struct {
	Type    string `json:"type"`
	CallCID string `json:"call_cid"`
}

// CallSessionEndedEvent is the payload for call.session_ended events.
type CallSessionEndedEvent struct {
	Type string     `json:"type"`
	Call StreamCall `json:"call"`
}

// CallTranscriptionReadyEvent is the payload for call.transcription_ready events.
type CallTranscriptionReadyEvent struct {
	Type          string `json:"type"`
	CallCID       string `json:"call_cid"`
	Transcription struct {
		URL string `json:"url"`
	} `json:"call_transcription"`
}

// CallRecordingReadyEvent is the payload for call.recording_ready events.
type CallRecordingReadyEvent struct {
	Type      string `json:"type"`
	CallCID   string `json:"call_cid"`
	Recording struct {
		URL string `json:"url"`
	} `json:"call_recording"`
}

// MessageNewEvent is the payload for message.new chat events. The channel ID
// matches the meeting UID of the meeting the chat thread belongs to.
type MessageNewEvent struct {
	Type string `json:"type"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
	ChannelID string `json:"channel_id"`
	Message *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SenderID returns the message author's user ID, or empty when absent.
func (e *MessageNewEvent) SenderID() string {
	if e.User == nil {
		return ""
	}
	return e.User.ID
}

// Text returns the message text, or empty when absent.
func (e *MessageNewEvent) Text() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.Text
}
