// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Webhook types sent by the provider.
const (
	// WebhookTypeTranscriptionStopped is sent once a transcription job has completed.
	WebhookTypeTranscriptionStopped = "transcription-stopped"
)

// WebhookEvent is an inbound provider notification. The shape of Data
// depends on WebhookType.
type WebhookEvent struct {
	WebhookType string         `json:"webhookType"`
	Data        map[string]any `json:"data"`
}

// TranscriptionStoppedData is the Data variant of a transcription-stopped event.
type TranscriptionStoppedData struct {
	ID string `json:"id"`
}
