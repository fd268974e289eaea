// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/concurrent"
)

const (
	// DefaultEmailSubject is the subject line used when none is configured.
	DefaultEmailSubject = "Transcription and Summary"

	TranscriptionAttachmentName = "transcription.txt"
	SummaryAttachmentName       = "summary.txt"

	attachmentContentType = "text/plain"
)

// DispatchRequest describes one fan-out of artifacts to a recipient list.
type DispatchRequest struct {
	RunID      string
	JobID      string
	SessionID  string
	Recipients []string
	Artifacts  models.ArtifactContent
}

// DeliveryDispatcher emails transcription artifacts to recipients with
// best-effort broadcast semantics: sends are independent, a failed send is
// logged and never surfaces to the caller, and nothing is retried.
type DeliveryDispatcher struct {
	EmailService domain.EmailService
	// ReportSender is optional. When set, every settled dispatch report is published.
	ReportSender domain.DeliveryReportSender

	subject  string
	pool     *concurrent.WorkerPool
	inFlight sync.WaitGroup
	now      func() time.Time

	deliveries metric.Int64Counter
}

// NewDeliveryDispatcher creates a new DeliveryDispatcher.
func NewDeliveryDispatcher(
	emailService domain.EmailService,
	reportSender domain.DeliveryReportSender,
	config ServiceConfig,
) *DeliveryDispatcher {
	subject := config.EmailSubject
	if subject == "" {
		subject = DefaultEmailSubject
	}

	deliveries, err := otel.Meter(instrumentationName).Int64Counter(
		"transcript.deliveries",
		metric.WithDescription("Artifact emails attempted, by outcome"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		slog.Warn("failed to create delivery counter", logging.ErrKey, err)
		deliveries = noop.Int64Counter{}
	}

	return &DeliveryDispatcher{
		EmailService: emailService,
		ReportSender: reportSender,
		subject:      subject,
		pool:         concurrent.NewWorkerPool(config.DeliveryConcurrency),
		now:          time.Now,
		deliveries:   deliveries,
	}
}

// ServiceReady checks if the dispatcher can send emails.
func (d *DeliveryDispatcher) ServiceReady() bool {
	return d.EmailService != nil
}

// Deliver sends one email carrying both artifacts to a single recipient.
func (d *DeliveryDispatcher) Deliver(ctx context.Context, recipient string, artifacts models.ArtifactContent) error {
	return d.deliver(ctx, "", recipient, artifacts)
}

func (d *DeliveryDispatcher) deliver(ctx context.Context, jobID, recipient string, artifacts models.ArtifactContent) error {
	if !d.ServiceReady() {
		return domain.NewDeliveryError("email service is not configured")
	}

	delivery := domain.EmailArtifactDelivery{
		RecipientEmail: recipient,
		Subject:        d.subject,
		JobID:          jobID,
		Attachments: []domain.EmailAttachment{
			{
				Filename:    TranscriptionAttachmentName,
				ContentType: attachmentContentType,
				Content:     artifacts.TranscriptionText,
			},
			{
				Filename:    SummaryAttachmentName,
				ContentType: attachmentContentType,
				Content:     artifacts.SummaryText,
			},
		},
	}

	if err := d.EmailService.SendTranscriptionArtifacts(ctx, delivery); err != nil {
		return domain.NewDeliveryError("failed to email transcription artifacts to "+recipient, err)
	}
	return nil
}

// Dispatch starts one send per recipient and returns without waiting for any
// of them. The sends are detached from ctx cancellation so they outlive the
// request that triggered them. The returned channel receives exactly one
// report once every send has settled; callers may ignore it.
func (d *DeliveryDispatcher) Dispatch(ctx context.Context, req DispatchRequest) <-chan models.DispatchReport {
	reports := make(chan models.DispatchReport, 1)
	ctx = context.WithoutCancel(ctx)

	startedAt := d.now()

	d.inFlight.Add(1)
	go func() {
		defer d.inFlight.Done()
		defer close(reports)

		sends := make([]func(ctx context.Context) error, len(req.Recipients))
		for i, recipient := range req.Recipients {
			sends[i] = func(ctx context.Context) error {
				return d.deliver(ctx, req.JobID, recipient, req.Artifacts)
			}
		}

		errs := d.pool.RunAll(ctx, sends...)

		report := models.DispatchReport{
			RunID:     req.RunID,
			JobID:     req.JobID,
			SessionID: req.SessionID,
			Outcomes:  make([]models.DeliveryOutcome, len(req.Recipients)),
			StartedAt: startedAt,
		}
		for i, recipient := range req.Recipients {
			report.Outcomes[i] = d.settle(ctx, recipient, errs[i])
		}
		report.CompletedAt = d.now()

		slog.InfoContext(ctx, "transcript delivery settled",
			"recipients", len(report.Outcomes),
			"sent", report.Sent(),
			"failed", report.Failed(),
		)

		if d.ReportSender != nil {
			if err := d.ReportSender.SendDeliveryReport(ctx, report); err != nil {
				slog.WarnContext(ctx, "failed to publish delivery report", logging.ErrKey, err)
			}
		}

		reports <- report
	}()

	return reports
}

func (d *DeliveryDispatcher) settle(ctx context.Context, recipient string, err error) models.DeliveryOutcome {
	if err != nil {
		slog.ErrorContext(ctx, "transcript delivery failed",
			logging.ErrKey, err,
			"error_type", domain.GetErrorType(err).String(),
		)
		d.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(models.DeliveryStatusFailed))))
		return models.DeliveryOutcome{
			Recipient: recipient,
			Status:    models.DeliveryStatusFailed,
			Error:     err.Error(),
		}
	}

	d.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(models.DeliveryStatusSent))))
	return models.DeliveryOutcome{
		Recipient: recipient,
		Status:    models.DeliveryStatusSent,
	}
}

// Wait blocks until every dispatch started so far has settled or ctx is done.
func (d *DeliveryDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
