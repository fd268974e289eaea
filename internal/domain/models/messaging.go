// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// NATS subjects that the transcript service sends messages about.
const (
	// DeliveryReportSubject carries one [DispatchReport] per processed transcription job.
	// The subject is of the form: lfx.transcript.delivery_report
	DeliveryReportSubject = "lfx.transcript.delivery_report"
)
