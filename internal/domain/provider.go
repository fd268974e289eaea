// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

// ProviderGateway reads transcription artifacts and session data from the
// video-conferencing provider. Every method is a stateless, idempotent read
// and fails with an upstream error on non-success responses.
type ProviderGateway interface {
	FetchTranscriptionJob(ctx context.Context, jobID string) (*models.TranscriptionJobResult, error)
	FetchParticipantRoster(ctx context.Context, sessionID string) ([]models.ParticipantRecord, error)
	FetchFileContent(ctx context.Context, fileURL string) (string, error)
}
