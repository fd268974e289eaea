// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

// MockProviderGateway implements ProviderGateway for testing
type MockProviderGateway struct {
	mock.Mock
}

// Ensure MockProviderGateway implements ProviderGateway interface
var _ domain.ProviderGateway = (*MockProviderGateway)(nil)

func (m *MockProviderGateway) FetchTranscriptionJob(ctx context.Context, jobID string) (*models.TranscriptionJobResult, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TranscriptionJobResult), args.Error(1)
}

func (m *MockProviderGateway) FetchParticipantRoster(ctx context.Context, sessionID string) ([]models.ParticipantRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantRecord), args.Error(1)
}

func (m *MockProviderGateway) FetchFileContent(ctx context.Context, fileURL string) (string, error) {
	args := m.Called(ctx, fileURL)
	return args.String(0), args.Error(1)
}
