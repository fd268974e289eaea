// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Constants for the HTTP request headers
const (
	// RequestIDHeader is the header name for the request ID
	RequestIDHeader string = "X-REQUEST-ID"

	// OriginHeader is the header sent by browsers on cross-origin requests
	OriginHeader string = "Origin"
)

// contextRequestID is the type for the request ID context key
type contextRequestID string

// RequestIDContextID is the context ID for the request ID
const RequestIDContextID contextRequestID = "X-REQUEST-ID"

// HTTP routes served by the API
const (
	// TokenPath issues a meeting token
	TokenPath = "/get-token"
	// TranscriptionWebhookPath receives provider webhooks
	TranscriptionWebhookPath = "/trans/webhook"
	// LivezPath is the liveness probe
	LivezPath = "/livez"
	// ReadyzPath is the readiness probe
	ReadyzPath = "/readyz"
)

// IsHealthCheckPath reports whether path is a probe endpoint excluded from request logs.
func IsHealthCheckPath(path string) bool {
	return path == LivezPath || path == ReadyzPath
}
