// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"

	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// TranscriptionWebhook receives provider webhooks and starts artifact delivery.
//
// Bodies that cannot be decoded are acknowledged so the provider does not
// redeliver them. Only provider failures while preparing delivery produce a 500.
func (s *TranscriptAPI) TranscriptionWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var event models.WebhookEvent
	if err := goahttp.RequestDecoder(r).Decode(&event); err != nil {
		slog.WarnContext(ctx, "ignoring undecodable webhook body", logging.ErrKey, err)
		writeResponse(ctx, w, http.StatusOK, apiResponse{Success: true})
		return
	}

	result, err := s.webhookService.HandleWebhook(ctx, event)
	if err != nil {
		writeResponse(ctx, w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	slog.DebugContext(ctx, "webhook acknowledged",
		"run_id", result.RunID,
		"last_state", string(result.LastState),
	)
	writeResponse(ctx, w, http.StatusOK, apiResponse{Success: true})
}
