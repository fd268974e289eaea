// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
)

// TestNoOpService_ImplementsInterface verifies that NoOpService correctly implements
// the EmailService interface and that all methods execute without panicking.
func TestNoOpService_ImplementsInterface(t *testing.T) {
	// Compile-time check that NoOpService implements domain.EmailService
	var _ domain.EmailService = (*NoOpService)(nil)
	var _ domain.EmailService = (*SMTPService)(nil)

	service := NewNoOpService()

	assert.NotPanics(t, func() {
		err := service.SendTranscriptionArtifacts(context.Background(), testDelivery("test@example.com"))
		assert.NoError(t, err)
	})
}
