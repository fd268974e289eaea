// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// NoOpService is a no-operation email service that logs but doesn't send emails
type NoOpService struct{}

// NewNoOpService creates a new no-op email service
func NewNoOpService() *NoOpService {
	return &NoOpService{}
}

// SendTranscriptionArtifacts logs the delivery but doesn't send an email
func (s *NoOpService) SendTranscriptionArtifacts(ctx context.Context, delivery domain.EmailArtifactDelivery) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", delivery.RecipientEmail))

	slog.DebugContext(ctx, "email service disabled, skipping transcript email",
		"attachments", len(delivery.Attachments),
	)
	return nil
}
