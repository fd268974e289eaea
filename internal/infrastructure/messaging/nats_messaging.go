// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// INatsConn is a NATS connection interface needed for publishing delivery reports.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder is the builder for the message and sends it to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// Ensure MessageBuilder implements DeliveryReportSender
var _ domain.DeliveryReportSender = (*MessageBuilder)(nil)

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// IsReady reports whether the NATS connection is up.
func (m *MessageBuilder) IsReady() bool {
	return m.NatsConn != nil && m.NatsConn.IsConnected()
}

// publish sends the message to the NATS server.
func (m *MessageBuilder) publish(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// SendDeliveryReport publishes the settled outcomes of a dispatch.
func (m *MessageBuilder) SendDeliveryReport(ctx context.Context, report models.DispatchReport) error {
	if m.NatsConn == nil {
		return domain.NewConfigurationError("NATS connection is not configured")
	}

	data, err := json.Marshal(report)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling delivery report into JSON", logging.ErrKey, err)
		return domain.NewInternalError("failed to marshal delivery report", err)
	}

	return m.publish(ctx, models.DeliveryReportSubject, data)
}
