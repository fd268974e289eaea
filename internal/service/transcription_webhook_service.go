// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/concurrent"
)

// PipelineState is the stage a webhook run has reached.
type PipelineState string

const (
	StateReceived           PipelineState = "received"
	StateValidated          PipelineState = "validated"
	StateMetadataFetched    PipelineState = "metadata_fetched"
	StateRosterFetched      PipelineState = "roster_fetched"
	StateRecipientsResolved PipelineState = "recipients_resolved"
	StateContentFetched     PipelineState = "content_fetched"
	StateDispatchInitiated  PipelineState = "dispatch_initiated"
	StateAcknowledged       PipelineState = "acknowledged"
	StateFailed             PipelineState = "failed"
)

// WebhookResult is the outcome of one webhook run.
type WebhookResult struct {
	RunID string
	// State is StateAcknowledged or StateFailed.
	State PipelineState
	// LastState is the last stage reached before the run ended.
	LastState  PipelineState
	JobID      string
	SessionID  string
	Recipients int
	// Reports yields the settled dispatch report. Nil when nothing was dispatched.
	Reports <-chan models.DispatchReport
}

// TranscriptionWebhookService turns provider webhooks into artifact deliveries.
type TranscriptionWebhookService struct {
	Gateway    domain.ProviderGateway
	Dispatcher *DeliveryDispatcher

	contentPool *concurrent.WorkerPool
	runs        metric.Int64Counter
}

// NewTranscriptionWebhookService creates a new TranscriptionWebhookService.
func NewTranscriptionWebhookService(gateway domain.ProviderGateway, dispatcher *DeliveryDispatcher) *TranscriptionWebhookService {
	runs, err := otel.Meter(instrumentationName).Int64Counter(
		"transcript.webhook.runs",
		metric.WithDescription("Webhook runs, by final state"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		slog.Warn("failed to create webhook run counter", logging.ErrKey, err)
		runs = noop.Int64Counter{}
	}

	return &TranscriptionWebhookService{
		Gateway:    gateway,
		Dispatcher: dispatcher,
		// Transcription and summary are fetched side by side.
		contentPool: concurrent.NewWorkerPool(2),
		runs:        runs,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *TranscriptionWebhookService) ServiceReady() bool {
	return s.Gateway != nil && s.Dispatcher != nil && s.Dispatcher.ServiceReady()
}

// HandleWebhook runs the delivery pipeline for one webhook event.
//
// Unrecognized or malformed events are acknowledged without doing any work.
// A provider failure ends the run in StateFailed with an error, before any
// email is sent. Once recipients and content are known, every send is
// started and the run is acknowledged without waiting for them.
func (s *TranscriptionWebhookService) HandleWebhook(ctx context.Context, event models.WebhookEvent) (*WebhookResult, error) {
	result := &WebhookResult{
		RunID:     uuid.NewString(),
		LastState: StateReceived,
	}

	ctx = logging.AppendCtx(ctx, slog.String("run_id", result.RunID))
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "transcript.webhook",
		trace.WithAttributes(
			attribute.String("transcript.run_id", result.RunID),
			attribute.String("transcript.webhook_type", event.WebhookType),
		),
	)
	defer span.End()

	err := s.run(ctx, event, result)
	if err != nil {
		result.State = StateFailed
		slog.ErrorContext(ctx, "transcript webhook run failed",
			logging.ErrKey, err,
			"error_type", domain.GetErrorType(err).String(),
			"last_state", string(result.LastState),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		result.State = StateAcknowledged
		span.SetStatus(codes.Ok, "")
	}

	span.SetAttributes(
		attribute.String("transcript.state", string(result.State)),
		attribute.String("transcript.last_state", string(result.LastState)),
		attribute.Int("transcript.recipients", result.Recipients),
	)
	s.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", string(result.State)),
		attribute.String("last_state", string(result.LastState)),
	))

	return result, err
}

func (s *TranscriptionWebhookService) run(ctx context.Context, event models.WebhookEvent, result *WebhookResult) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewInternalError("transcript webhook service is not initialized")
	}

	if event.WebhookType != models.WebhookTypeTranscriptionStopped {
		slog.DebugContext(ctx, "ignoring webhook", "webhook_type", event.WebhookType)
		return nil
	}

	data, err := decodeTranscriptionStopped(event.Data)
	if err != nil {
		slog.WarnContext(ctx, "ignoring malformed transcription webhook", logging.ErrKey, err)
		return nil
	}
	result.JobID = data.ID
	result.LastState = StateValidated
	ctx = logging.AppendCtx(ctx, slog.String("job_id", data.ID))

	job, err := s.Gateway.FetchTranscriptionJob(ctx, data.ID)
	if err != nil {
		return err
	}
	if job.SessionID == "" {
		return domain.NewUpstreamError("transcription job " + data.ID + " has no session id")
	}
	result.SessionID = job.SessionID
	result.LastState = StateMetadataFetched
	ctx = logging.AppendCtx(ctx, slog.String("session_id", job.SessionID))

	roster, err := s.Gateway.FetchParticipantRoster(ctx, job.SessionID)
	if err != nil {
		return err
	}
	result.LastState = StateRosterFetched

	recipients := ResolveRecipients(roster)
	result.Recipients = len(recipients)
	result.LastState = StateRecipientsResolved
	slog.DebugContext(ctx, "resolved transcript recipients",
		"participants", len(roster),
		"recipients", len(recipients),
	)

	artifacts, err := s.fetchContent(ctx, job)
	if err != nil {
		return err
	}
	result.LastState = StateContentFetched
	slog.DebugContext(ctx, "fetched transcript artifacts",
		"transcription_length", len(artifacts.TranscriptionText),
		"summary_length", len(artifacts.SummaryText),
	)

	result.Reports = s.Dispatcher.Dispatch(ctx, DispatchRequest{
		RunID:      result.RunID,
		JobID:      data.ID,
		SessionID:  job.SessionID,
		Recipients: recipients,
		Artifacts:  artifacts,
	})
	result.LastState = StateDispatchInitiated

	slog.InfoContext(ctx, "transcript delivery initiated", "recipients", len(recipients))
	return nil
}

// fetchContent downloads the plain-text transcription and summary concurrently.
func (s *TranscriptionWebhookService) fetchContent(ctx context.Context, job *models.TranscriptionJobResult) (models.ArtifactContent, error) {
	var artifacts models.ArtifactContent

	err := s.contentPool.Run(ctx,
		func(ctx context.Context) error {
			text, err := s.Gateway.FetchFileContent(ctx, job.TranscriptionFilePaths.TXT)
			if err != nil {
				return err
			}
			artifacts.TranscriptionText = text
			return nil
		},
		func(ctx context.Context) error {
			text, err := s.Gateway.FetchFileContent(ctx, job.SummarizedFilePaths.TXT)
			if err != nil {
				return err
			}
			artifacts.SummaryText = text
			return nil
		},
	)
	if err != nil {
		return models.ArtifactContent{}, err
	}

	return artifacts, nil
}

// decodeTranscriptionStopped decodes the data variant of a transcription-stopped event.
func decodeTranscriptionStopped(raw map[string]any) (models.TranscriptionStoppedData, error) {
	var data models.TranscriptionStoppedData

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		// Job ids may arrive as JSON numbers.
		WeaklyTypedInput: true,
		Result:           &data,
	})
	if err != nil {
		return data, domain.NewInternalError("failed to create webhook decoder", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return data, domain.NewValidationError("invalid transcription-stopped payload", err)
	}
	if data.ID == "" {
		return data, domain.NewValidationError("transcription-stopped payload has no job id")
	}

	return data, nil
}
