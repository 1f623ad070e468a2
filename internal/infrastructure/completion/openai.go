// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package completion provides a stateless chat-completion client backed by
// the OpenAI API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

const (
	// DefaultEndpoint is the OpenAI chat completions endpoint
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the completion model used for agent chat replies
	DefaultModel = "gpt-4o"
	// DefaultClientTimeout is the default HTTP client timeout for completion requests
	DefaultClientTimeout = 30 * time.Second
)

// OpenAIProvider is a CompletionProvider backed by the OpenAI chat
// completions API.
type OpenAIProvider struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// Option configures an OpenAIProvider
type Option func(*OpenAIProvider)

// WithEndpoint overrides the API endpoint, primarily for testing
func WithEndpoint(endpoint string) Option {
	return func(p *OpenAIProvider) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			p.endpoint = trimmed
		}
	}
}

// WithModel overrides the completion model
func WithModel(model string) Option {
	return func(p *OpenAIProvider) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			p.model = trimmed
		}
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *OpenAIProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// NewOpenAIProvider creates a new OpenAI completion provider
func NewOpenAIProvider(apiKey string, opts ...Option) *OpenAIProvider {
	provider := &OpenAIProvider{
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		client: &http.Client{
			Timeout: DefaultClientTimeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	return provider
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Ensure that OpenAIProvider implements CompletionProvider
var _ domain.CompletionProvider = (*OpenAIProvider)(nil)

// Complete runs a single chat completion over the given system prompt and
// conversation turns. An empty completion is returned as an empty string,
// not an error; callers decide whether that is acceptable.
func (p *OpenAIProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("openai api key is required")
	}

	messages := make([]chatMessage, 0, len(req.Turns)+1)
	messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	for _, turn := range req.Turns {
		role := "user"
		if turn.Role == models.TurnRoleAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: turn.Text})
	}

	payload := chatRequest{
		Model:    p.model,
		Messages: messages,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseAPIError(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}

	return parsed.Choices[0].Message.Content, nil
}

// parseAPIError extracts a useful error from a non-2xx completion response
func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("openai API error (status %d, type %s): %s", resp.StatusCode, envelope.Error.Type, envelope.Error.Message)
	}
	return fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(body))
}
