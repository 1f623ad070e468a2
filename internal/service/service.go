// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the webhook processing business logic.
package service

import "time"

type Service interface {
	ServiceReady() bool
}

const (
	// outboundCallTimeout bounds every outbound provider call made while
	// handling a single webhook. The webhook sender retries on failure, so
	// a stuck downstream must not hold the request open indefinitely.
	outboundCallTimeout = 30 * time.Second

	// maxTransitionAttempts is how many times a lifecycle transition re-reads
	// and retries its conditional update on a revision conflict.
	maxTransitionAttempts = 3

	// historyFetchLimit is how many recent channel messages are fetched
	// before trimming down to the conversation window.
	historyFetchLimit = 25

	// historyWindow is how many non-empty messages are kept as conversation
	// context for a completion.
	historyWindow = 5
)
