// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"log/slog"
	"net/mail"
	"time"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// Gmail submission defaults.
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config SMTPConfig
	now    func() time.Time
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	FromName string // Optional display name
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

func (c SMTPConfig) fromAddress() string {
	if c.FromName == "" {
		return c.From
	}
	return (&mail.Address{Name: c.FromName, Address: c.From}).String()
}

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	if config.Host == "" {
		config.Host = DefaultSMTPHost
	}
	if config.Port == 0 {
		config.Port = DefaultSMTPPort
	}
	if !validAddress(config.From) {
		return nil, domain.NewConfigurationError("invalid sender address " + config.From)
	}

	return &SMTPService{
		config: config,
		now:    time.Now,
	}, nil
}

// SendTranscriptionArtifacts emails the artifacts of a transcription job to one recipient
func (s *SMTPService) SendTranscriptionArtifacts(ctx context.Context, delivery domain.EmailArtifactDelivery) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", delivery.RecipientEmail))
	if delivery.JobID != "" {
		ctx = logging.AppendCtx(ctx, slog.String("job_id", delivery.JobID))
	}

	if !validAddress(delivery.RecipientEmail) {
		slog.WarnContext(ctx, "skipping transcript email to invalid address")
		return domain.NewValidationError("invalid recipient address " + delivery.RecipientEmail)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	message, err := buildEmailMessage(delivery, s.config, s.now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to build transcript email", logging.ErrKey, err)
		return domain.NewInternalError("failed to build transcript email", err)
	}

	err = sendEmailMessage(delivery.RecipientEmail, message, s.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send transcript email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "transcript email sent successfully",
		"attachments", len(delivery.Attachments),
	)
	return nil
}
