// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
)

func testDelivery(recipient string) domain.EmailArtifactDelivery {
	return domain.EmailArtifactDelivery{
		RecipientEmail: recipient,
		Subject:        "Transcription and Summary",
		JobID:          "job1",
		Attachments: []domain.EmailAttachment{
			{Filename: "transcription.txt", ContentType: "text/plain", Content: "alice: hello"},
			{Filename: "summary.txt", ContentType: "text/plain", Content: "A greeting."},
		},
	}
}

func TestNewSMTPService(t *testing.T) {
	t.Run("defaults to gmail submission", func(t *testing.T) {
		service, err := NewSMTPService(SMTPConfig{From: "test@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "smtp.gmail.com", service.config.Host)
		assert.Equal(t, 587, service.config.Port)
	})

	t.Run("keeps explicit server", func(t *testing.T) {
		config := SMTPConfig{
			Host: "localhost",
			Port: 1025,
			From: "test@example.com",
		}

		service, err := NewSMTPService(config)
		require.NoError(t, err)
		assert.Equal(t, config, service.config)
	})

	t.Run("invalid sender", func(t *testing.T) {
		_, err := NewSMTPService(SMTPConfig{From: "not-an-address"})
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConfiguration, domain.GetErrorType(err))
	})
}

func TestSMTPService_SendTranscriptionArtifacts(t *testing.T) {
	server := NewMockSMTPServerForTesting(t)
	service, err := NewSMTPService(server.Config(t))
	require.NoError(t, err)

	err = service.SendTranscriptionArtifacts(context.Background(), testDelivery("alice@x.com"))
	require.NoError(t, err)

	messages := server.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"alice@x.com"}, messages[0].To)

	header, parts := parseMessage(t, messages[0].Data)
	assert.Equal(t, "Transcription and Summary", header.Get("Subject"))
	require.Len(t, parts, 2)
	assert.Equal(t, "transcription.txt", parts[0].filename)
	assert.Equal(t, "alice: hello", parts[0].body)
	assert.Equal(t, "summary.txt", parts[1].filename)
	assert.Equal(t, "A greeting.", parts[1].body)
}

func TestSMTPService_SendTranscriptionArtifacts_Errors(t *testing.T) {
	t.Run("recipient rejected", func(t *testing.T) {
		server := NewMockSMTPServerForTesting(t, "bob@x.com")
		service, err := NewSMTPService(server.Config(t))
		require.NoError(t, err)

		err = service.SendTranscriptionArtifacts(context.Background(), testDelivery("bob@x.com"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "550")
		assert.Empty(t, server.Messages())
	})

	t.Run("invalid recipient", func(t *testing.T) {
		server := NewMockSMTPServerForTesting(t)
		service, err := NewSMTPService(server.Config(t))
		require.NoError(t, err)

		err = service.SendTranscriptionArtifacts(context.Background(), testDelivery(""))
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		assert.Empty(t, server.Messages())
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := NewMockSMTPServerForTesting(t)
		service, err := NewSMTPService(server.Config(t))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = service.SendTranscriptionArtifacts(ctx, testDelivery("alice@x.com"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, server.Messages())
	})
}
