// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
)

// GetToken issues a meeting token for the calling client.
func (s *TranscriptAPI) GetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := s.tokenService.IssueMeetingToken(ctx)
	if err != nil {
		writeResponse(ctx, w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if token == "" {
		slog.WarnContext(ctx, "token issuer returned an empty token")
		writeResponse(ctx, w, http.StatusNotFound, apiResponse{
			Success: false,
			Message: "token not generated",
		})
		return
	}

	writeResponse(ctx, w, http.StatusOK, apiResponse{
		Success: true,
		Token:   token,
	})
}
