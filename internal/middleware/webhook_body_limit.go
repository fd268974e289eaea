// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"

	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/constants"
)

// DefaultWebhookBodyLimit bounds webhook payloads, which only carry a job reference.
const DefaultWebhookBodyLimit int64 = 1 << 20

// WebhookBodyLimitMiddleware caps the request body of the webhook endpoint at maxBytes.
// Reads past the limit fail, which the webhook handler treats as a malformed payload.
func WebhookBodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultWebhookBodyLimit
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == constants.TranscriptionWebhookPath {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
