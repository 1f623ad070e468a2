// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package video

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// Realtime session defaults for agent voice bridges.
const (
	RealtimeModel              = "gpt-4o-realtime-preview"
	RealtimeVoice              = "alloy"
	RealtimeTranscriptionModel = "whisper-1"
)

// ConnectAgentRequest represents the request to bridge a realtime voice agent
// into an active call.
type ConnectAgentRequest struct {
	AgentUserID string          `json:"agent_user_id"`
	Session     RealtimeSession `json:"session"`
}

// RealtimeSession represents the realtime model session settings
type RealtimeSession struct {
	Model              string             `json:"model"`
	Voice              string             `json:"voice"`
	Instructions       string             `json:"instructions"`
	Modalities         []string           `json:"modalities"`
	TurnDetection      TurnDetection      `json:"turn_detection"`
	InputTranscription InputTranscription `json:"input_audio_transcription"`
}

// TurnDetection configures how the session decides a speaker has finished
type TurnDetection struct {
	Type string `json:"type"`
}

// InputTranscription configures transcription of caller audio
type InputTranscription struct {
	Model string `json:"model"`
}

// EndCallRequest represents the request to end a call
type EndCallRequest struct{}

// Ensure that Client implements VideoProvider
var _ domain.VideoProvider = (*Client)(nil)

// ConnectAgent opens a realtime voice session on the call, speaking as the
// given agent with the agent's instructions as the system prompt. The session
// listens and answers in audio and text, detects turns server-side, and
// transcribes caller audio.
func (c *Client) ConnectAgent(ctx context.Context, callID string, agent *models.Agent) error {
	if agent == nil {
		return fmt.Errorf("agent is required")
	}

	request := &ConnectAgentRequest{
		AgentUserID: agent.UID,
		Session: RealtimeSession{
			Model:        RealtimeModel,
			Voice:        RealtimeVoice,
			Instructions: agent.Instructions,
			Modalities:   []string{"audio", "text"},
			TurnDetection: TurnDetection{
				Type: "server_vad",
			},
			InputTranscription: InputTranscription{
				Model: RealtimeTranscriptionModel,
			},
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, callPath(callID, "/connect_agent"), request)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp.StatusCode, body)
	}

	return nil
}

// EndCall ends the call unconditionally. A call that has already ended, or
// that no longer exists, is treated as success.
func (c *Client) EndCall(ctx context.Context, callID string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, callPath(callID, "/mark_ended"), &EndCallRequest{})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusConflict:
		// Already ended or gone; nothing left to do.
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return parseErrorResponse(resp.StatusCode, body)
}
