// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"

	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/constants"
)

// TranscriptAPI serves the token and webhook endpoints of the transcript service.
type TranscriptAPI struct {
	tokenService   *service.TokenService
	webhookService *service.TranscriptionWebhookService
	// readinessChecks are extra dependencies, such as NATS, that must be up for /readyz.
	readinessChecks []func() bool
}

// NewTranscriptAPI creates a new TranscriptAPI.
func NewTranscriptAPI(
	tokenService *service.TokenService,
	webhookService *service.TranscriptionWebhookService,
	readinessChecks ...func() bool,
) *TranscriptAPI {
	return &TranscriptAPI{
		tokenService:    tokenService,
		webhookService:  webhookService,
		readinessChecks: readinessChecks,
	}
}

// apiResponse is the JSON envelope of every API response.
type apiResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Mount registers the API handlers on the muxer.
func (s *TranscriptAPI) Mount(mux goahttp.Muxer) {
	mux.Handle(http.MethodGet, constants.LivezPath, s.Livez)
	mux.Handle(http.MethodGet, constants.ReadyzPath, s.Readyz)
	mux.Handle(http.MethodGet, constants.TokenPath, s.GetToken)
	mux.Handle(http.MethodPost, constants.TranscriptionWebhookPath, s.TranscriptionWebhook)
}

// ServiceReady checks if every service and dependency is ready.
func (s *TranscriptAPI) ServiceReady() bool {
	if s.tokenService == nil || !s.tokenService.ServiceReady() {
		return false
	}
	if s.webhookService == nil || !s.webhookService.ServiceReady() {
		return false
	}
	for _, ready := range s.readinessChecks {
		if !ready() {
			return false
		}
	}
	return true
}

// Readyz checks if the service is able to take inbound requests.
func (s *TranscriptAPI) Readyz(w http.ResponseWriter, r *http.Request) {
	if !s.ServiceReady() {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "OK\n")
}

// Livez checks if the service is alive.
func (s *TranscriptAPI) Livez(w http.ResponseWriter, _ *http.Request) {
	// This always returns as long as the service is still running. As this
	// endpoint is expected to be used as a Kubernetes liveness check, this
	// service must likewise self-detect non-recoverable errors and
	// self-terminate.
	writeText(w, "OK\n")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// writeResponse encodes body with the negotiated goa encoder.
func writeResponse(ctx context.Context, w http.ResponseWriter, status int, body apiResponse) {
	encoder := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := encoder.Encode(body); err != nil {
		slog.ErrorContext(ctx, "error encoding response", logging.ErrKey, err)
	}
}
