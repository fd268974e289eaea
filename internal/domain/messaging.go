// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

// DeliveryReportSender publishes the settled outcomes of a dispatch.
type DeliveryReportSender interface {
	SendDeliveryReport(ctx context.Context, report models.DispatchReport) error
}
