// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain/models"
)

// MeetingProcessingSender dispatches the fire-and-forget trigger for the
// downstream transcript summarization pipeline. Delivery is at-least-once;
// the consumer dedupes on meeting UID plus transcript URL.
type MeetingProcessingSender interface {
	SendMeetingProcessing(ctx context.Context, data models.MeetingProcessingMessage) error
}
