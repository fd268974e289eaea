// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

// MockDeliveryReportSender implements DeliveryReportSender for testing
type MockDeliveryReportSender struct {
	mock.Mock
}

func (m *MockDeliveryReportSender) SendDeliveryReport(ctx context.Context, report models.DispatchReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
