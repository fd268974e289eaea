// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
)

// base64LineLength is the maximum encoded line length allowed by RFC 2045.
const base64LineLength = 76

// buildEmailMessage builds the complete email message with headers, an optional
// plain-text body and one base64-encoded part per attachment.
func buildEmailMessage(delivery domain.EmailArtifactDelivery, config SMTPConfig, date time.Time) (string, error) {
	var parts bytes.Buffer
	writer := multipart.NewWriter(&parts)

	if delivery.Body != "" {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {`text/plain; charset="UTF-8"`},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return "", fmt.Errorf("failed to create body part: %w", err)
		}
		qp := quotedprintable.NewWriter(part)
		if _, err := qp.Write([]byte(delivery.Body)); err != nil {
			return "", fmt.Errorf("failed to write body part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return "", fmt.Errorf("failed to write body part: %w", err)
		}
	}

	for _, attachment := range delivery.Attachments {
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"charset": "UTF-8", "name": attachment.Filename})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return "", fmt.Errorf("failed to create attachment part %s: %w", attachment.Filename, err)
		}
		if _, err := part.Write([]byte(wrapBase64(attachment.Content))); err != nil {
			return "", fmt.Errorf("failed to write attachment part %s: %w", attachment.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart message: %w", err)
	}

	var message strings.Builder

	// Email headers
	message.WriteString(fmt.Sprintf("From: %s\r\n", config.fromAddress()))
	message.WriteString(fmt.Sprintf("To: %s\r\n", delivery.RecipientEmail))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", delivery.Subject)))
	message.WriteString(fmt.Sprintf("Date: %s\r\n", date.Format(time.RFC1123Z)))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", writer.Boundary()))
	message.WriteString("\r\n")
	message.Write(parts.Bytes())

	return message.String(), nil
}

// wrapBase64 encodes content as base64 split into CRLF-terminated lines.
func wrapBase64(content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))

	var b strings.Builder
	for len(encoded) > base64LineLength {
		b.WriteString(encoded[:base64LineLength])
		b.WriteString("\r\n")
		encoded = encoded[base64LineLength:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")
	return b.String()
}

// sendEmailMessage sends a pre-built email message via SMTP
func sendEmailMessage(recipient, message string, config SMTPConfig) error {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	err := smtp.SendMail(addr, auth, config.From, []string{recipient}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// validAddress reports whether address parses as a single RFC 5322 address.
func validAddress(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}
