// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
)

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTranscriptionArtifacts(ctx context.Context, delivery domain.EmailArtifactDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}
