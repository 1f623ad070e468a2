// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// NATS subjects used by the meeting agent service.
const (
	// MeetingProcessingSubject is the subject for triggering the transcript
	// summarization pipeline once a meeting's transcript is available.
	MeetingProcessingSubject = "lfx.meeting_agent.meeting_processing"
)

// MeetingProcessingMessage is the msgpack-encoded message published when a
// meeting transcript is ready. Delivery is at-least-once: webhook redelivery
// can publish the same message more than once, so the consumer dedupes on
// meeting UID plus transcript URL.
type MeetingProcessingMessage struct {
	MeetingUID    string `msgpack:"meeting_uid"`
	TranscriptURL string `msgpack:"transcript_url"`
}
