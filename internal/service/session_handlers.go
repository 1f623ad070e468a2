// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
	internalutils "github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/utils"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/pkg/utils"
)

// handleSessionStarted moves a fresh meeting to active and bridges the call
// to a realtime voice session speaking as the meeting's agent.
func (s *WebhookService) handleSessionStarted(ctx context.Context, event models.CallSessionStartedEvent) (*WebhookResponse, error) {
	meetingUID := event.Call.MeetingUID()
	if meetingUID == "" {
		return nil, domain.NewValidationError("missing meeting ID in call metadata")
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := s.transitionMeeting(ctx, meetingUID,
		func(m *models.Meeting) bool { return m.CanStart() },
		func(m *models.Meeting) {
			m.Status = models.MeetingStatusActive
			m.StartedAt = utils.TimePtr(time.Now().UTC())
		},
	)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			// A concurrent start already won; same outcome as a replay.
			return nil, domain.NewNotFoundError("meeting not found in a startable state", err)
		}
		return nil, err
	}

	agent, err := s.agentRepository.GetAgent(ctx, meeting.AgentUID)
	if err != nil {
		slog.ErrorContext(ctx, "agent lookup failed for started meeting", logging.ErrKey, err, "agent_uid", meeting.AgentUID)
		return nil, err
	}

	// The meeting row is already committed; a failed bridge must not undo
	// it. The call proceeds without voice AI and the participants can still
	// talk, so the failure is logged and swallowed.
	callCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	if err := s.videoProvider.ConnectAgent(callCtx, callID(event.Call, meetingUID), agent); err != nil {
		slog.WarnContext(ctx, "failed to bridge realtime voice agent into call", logging.ErrKey, err, "agent_uid", agent.UID)
	}

	slog.InfoContext(ctx, "meeting session started")
	return &WebhookResponse{Status: StatusOK}, nil
}

// handleParticipantLeft ends the call when a participant drops out. No
// meeting read is needed; the provider treats ending an ended call as a no-op.
func (s *WebhookService) handleParticipantLeft(ctx context.Context, event models.CallSessionParticipantLeftEvent) (*WebhookResponse, error) {
	meetingUID := models.MeetingUIDFromCallCID(event.CallCID)
	if meetingUID == "" {
		return nil, domain.NewValidationError("missing or malformed call_cid")
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	callCtx, cancel := context.WithTimeout(ctx, outboundCallTimeout)
	defer cancel()
	if err := s.videoProvider.EndCall(callCtx, event.CallCID); err != nil {
		slog.ErrorContext(ctx, "failed to end call", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to end call", err)
	}

	slog.InfoContext(ctx, "call ended after participant left")
	return &WebhookResponse{Status: StatusOK}, nil
}

// handleSessionEnded moves an active meeting to processing. Duplicate and
// out-of-order end events fail the guard and are acknowledged untouched.
func (s *WebhookService) handleSessionEnded(ctx context.Context, event models.CallSessionEndedEvent) (*WebhookResponse, error) {
	meetingUID := event.Call.MeetingUID()
	if meetingUID == "" {
		return nil, domain.NewValidationError("missing meeting ID in call metadata")
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	_, err := s.transitionMeeting(ctx, meetingUID,
		func(m *models.Meeting) bool { return m.CanEnd() },
		func(m *models.Meeting) {
			m.Status = models.MeetingStatusProcessing
			m.EndedAt = utils.TimePtr(time.Now().UTC())
		},
	)
	if err != nil {
		errType := domain.GetErrorType(err)
		if errType == domain.ErrorTypeNotFound || errType == domain.ErrorTypeConflict {
			slog.InfoContext(ctx, "session ended for a meeting not in active state, nothing to do")
			return &WebhookResponse{Status: StatusIgnored}, nil
		}
		return nil, err
	}

	slog.InfoContext(ctx, "meeting session ended, transcript processing pending")
	return &WebhookResponse{Status: StatusOK}, nil
}

// handleTranscriptionReady records the transcript URL and dispatches the
// summarization job. Replays rewrite the same URL and dispatch again; the
// downstream consumer dedupes on meeting UID plus URL.
func (s *WebhookService) handleTranscriptionReady(ctx context.Context, event models.CallTranscriptionReadyEvent) (*WebhookResponse, error) {
	meetingUID := models.MeetingUIDFromCallCID(event.CallCID)
	if meetingUID == "" {
		return nil, domain.NewValidationError("missing or malformed call_cid")
	}
	transcriptURL, err := internalutils.SanitizeAssetURL(event.Transcription.URL)
	if err != nil {
		return nil, domain.NewValidationError("invalid transcription URL", err)
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	_, err = s.transitionMeeting(ctx, meetingUID,
		func(m *models.Meeting) bool { return true },
		func(m *models.Meeting) {
			m.TranscriptURL = transcriptURL
		},
	)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget trigger for the summarization pipeline. The transcript
	// URL is already stored, so a failed dispatch is not worth failing the
	// webhook over; redelivery of the webhook re-dispatches.
	if err := s.messageSender.SendMeetingProcessing(ctx, models.MeetingProcessingMessage{
		MeetingUID:    meetingUID,
		TranscriptURL: transcriptURL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch meeting processing job",
			logging.ErrKey, err,
			logging.PriorityCritical(),
		)
	}

	slog.InfoContext(ctx, "transcript recorded and processing job dispatched")
	return &WebhookResponse{Status: StatusOK}, nil
}

// handleRecordingReady records the recording URL. A missing meeting is not
// an error for this event; there is simply nothing to update.
func (s *WebhookService) handleRecordingReady(ctx context.Context, event models.CallRecordingReadyEvent) (*WebhookResponse, error) {
	meetingUID := models.MeetingUIDFromCallCID(event.CallCID)
	if meetingUID == "" {
		return nil, domain.NewValidationError("missing or malformed call_cid")
	}
	recordingURL, err := internalutils.SanitizeAssetURL(event.Recording.URL)
	if err != nil {
		return nil, domain.NewValidationError("invalid recording URL", err)
	}
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	_, err = s.transitionMeeting(ctx, meetingUID,
		func(m *models.Meeting) bool { return true },
		func(m *models.Meeting) {
			m.RecordingURL = recordingURL
		},
	)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.InfoContext(ctx, "recording ready for unknown meeting, nothing to update")
			return &WebhookResponse{Status: StatusIgnored}, nil
		}
		return nil, err
	}

	slog.InfoContext(ctx, "recording URL recorded")
	return &WebhookResponse{Status: StatusOK}, nil
}

// transitionMeeting applies a guarded mutation to a meeting as an atomic
// conditional update. The guard is evaluated against the row read in the
// same attempt as the conditional write; on a revision conflict the row is
// re-read and the guard re-evaluated, so two concurrent events racing on the
// same meeting resolve exactly as if they had arrived in sequence. A guard
// that fails resolves as not found.
func (s *WebhookService) transitionMeeting(
	ctx context.Context,
	meetingUID string,
	guard func(*models.Meeting) bool,
	mutate func(*models.Meeting),
) (*models.Meeting, error) {
	var lastErr error

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		meeting, revision, err := s.meetingRepository.GetMeetingWithRevision(ctx, meetingUID)
		if err != nil {
			return nil, err
		}

		if !guard(meeting) {
			return nil, domain.NewNotFoundError("meeting not found in the required state")
		}

		mutate(meeting)
		meeting.UpdatedAt = utils.TimePtr(time.Now().UTC())

		err = s.meetingRepository.UpdateMeeting(ctx, meeting, revision)
		if err == nil {
			return meeting, nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return nil, err
		}

		lastErr = err
		slog.DebugContext(ctx, "meeting update conflicted, retrying", "attempt", attempt+1)
	}

	return nil, domain.NewConflictError("meeting update kept conflicting", lastErr)
}

// callID resolves the provider call handle for a session event, falling back
// to the conventional "default:<meeting>" form when the event omits the CID.
func callID(call models.StreamCall, meetingUID string) string {
	if call.CID != "" {
		return call.CID
	}
	return "default:" + meetingUID
}
