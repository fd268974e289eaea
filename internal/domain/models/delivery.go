// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// DeliveryStatus is the settled state of one recipient's email.
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// DeliveryOutcome is the settled result of one send attempt.
type DeliveryOutcome struct {
	Recipient string         `json:"recipient"`
	Status    DeliveryStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
}

// DispatchReport lists the settled outcomes of every send started for one event.
type DispatchReport struct {
	RunID       string            `json:"run_id"`
	JobID       string            `json:"job_id"`
	SessionID   string            `json:"session_id"`
	Outcomes    []DeliveryOutcome `json:"outcomes"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
}

// Sent returns the number of successful deliveries.
func (r DispatchReport) Sent() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == DeliveryStatusSent {
			n++
		}
	}
	return n
}

// Failed returns the number of failed deliveries.
func (r DispatchReport) Failed() int {
	return len(r.Outcomes) - r.Sent()
}
