// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/constants"
)

// newHandler builds the HTTP handler serving api, wrapped in the middleware chain.
func newHandler(api *TranscriptAPI, corsAllowedOrigin string) http.Handler {
	mux := goahttp.NewMuxer()
	api.Mount(mux)

	var handler http.Handler = mux

	// Add HTTP middleware
	// Note: Order matters - middleware runs in reverse order of wrapping, so CORS
	// answers preflights before a request ID is assigned and the logger sees the ID.
	handler = middleware.WebhookBodyLimitMiddleware(middleware.DefaultWebhookBodyLimit)(handler)
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = middleware.CORSMiddleware(corsAllowedOrigin)(handler)

	return otelhttp.NewHandler(handler, "transcript-api",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !constants.IsHealthCheckPath(r.URL.Path)
		}),
	)
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, env environment, api *TranscriptAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newHandler(api, env.CORSAllowedOrigin),
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
