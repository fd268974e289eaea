// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendTranscriptionArtifacts(ctx context.Context, delivery EmailArtifactDelivery) error
}

// EmailArtifactDelivery contains the data needed to email transcription artifacts to one recipient
type EmailArtifactDelivery struct {
	RecipientEmail string
	Subject        string
	Body           string // Optional plain-text body
	JobID          string // Transcription job the artifacts belong to, for logs only
	Attachments    []EmailAttachment
}

// EmailAttachment represents a file attachment for an email
type EmailAttachment struct {
	Filename    string // Name of the attachment file
	ContentType string // MIME type of the attachment
	Content     string // Raw content, encoded by the transport
}
