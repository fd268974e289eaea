// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/service"
)

const (
	// gracefulShutdownSeconds bounds how long in-flight requests and
	// deliveries are given to finish after a termination signal.
	gracefulShutdownSeconds = 25
)

// setupEmailService returns the SMTP email service, or a no-op service when
// no email account is configured.
func setupEmailService(env environment) (domain.EmailService, error) {
	if !env.Email.Enabled() {
		slog.Warn("EMAIL_ID is not set, transcript emails will not be sent")
		return email.NewNoOpService(), nil
	}

	smtpService, err := email.NewSMTPService(env.Email.SMTPConfig())
	if err != nil {
		return nil, err
	}

	slog.With("host", env.Email.Host, "port", env.Email.Port).Debug("SMTP email service configured")
	return smtpService, nil
}

// setupNATS connects to NATS for delivery report publishing. It returns a nil
// connection when NATS_URL is not set.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	if env.NatsURL == "" {
		slog.Debug("NATS_URL is not set, delivery reports will not be published")
		return nil, nil
	}

	slog.With("nats_url", env.NatsURL).Info("attempting to connect to NATS")

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Name("lfx-v2-transcript-service"),
		nats.DrainTimeout(gracefulShutdownSeconds*time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject).ErrorContext(ctx, "async NATS error")
			} else {
				slog.With(logging.ErrKey, err).ErrorContext(ctx, "async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if ctx.Err() != nil {
				// If our parent background context has already been canceled, this is
				// a graceful shutdown. Decrement the wait group but do not exit, to
				// allow other graceful shutdown steps to complete.
				gracefulCloseWG.Done()
				return
			}
			// Otherwise, this handler means that max reconnect attempts have been
			// exhausted.
			slog.ErrorContext(ctx, "NATS max-reconnects exhausted; connection closed", logging.PriorityCritical())
			// Send a synthetic interrupt and give any graceful-shutdown tasks 5
			// seconds to clean up.
			done <- os.Interrupt
			time.Sleep(5 * time.Second)
			// Exit with an error instead of decrementing the wait group.
			os.Exit(1)
		}),
	)
	if err != nil {
		slog.With("nats_url", env.NatsURL, logging.ErrKey, err).Error("error creating NATS client")
		return nil, err
	}
	// Released by the closed handler once the connection has drained.
	gracefulCloseWG.Add(1)

	return natsConn, nil
}

// gracefulShutdown stops taking requests, then lets in-flight deliveries settle
// before draining NATS and flushing telemetry.
func gracefulShutdown(
	httpServer *http.Server,
	natsConn *nats.Conn,
	dispatcher *service.DeliveryDispatcher,
	gracefulCloseWG *sync.WaitGroup,
	cancel context.CancelFunc,
	otelShutdown func(context.Context) error,
) {
	slog.Info("graceful shutdown started")

	// Cancel the background context.
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()

	httpClosed := make(chan struct{})
	go func() {
		defer close(httpClosed)
		slog.With("addr", httpServer.Addr).Info("shutting down http server")
		if err := httpServer.Shutdown(ctx); err != nil {
			slog.With(logging.ErrKey, err).Error("http shutdown error")
		}
		// Decrement the wait group.
		gracefulCloseWG.Done()
	}()

	// Webhooks still in flight may start a dispatch until the HTTP server has
	// shut down, so only then is the in-flight count final.
	select {
	case <-httpClosed:
	case <-ctx.Done():
	}

	// Deliveries are detached from their requests; wait for them before NATS
	// goes away so their reports can still be published.
	if err := dispatcher.Wait(ctx); err != nil {
		slog.With(logging.ErrKey, err).Warn("shutdown deadline reached with transcript deliveries in flight")
	}

	if natsConn != nil && !natsConn.IsClosed() && !natsConn.IsDraining() {
		slog.Info("draining NATS connections")
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
			// Skip waiting or checking error channel.
			return
		}
	}

	// Wait for the graceful shutdown steps to complete.
	gracefulCloseWG.Wait()

	if err := otelShutdown(ctx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down OpenTelemetry SDK")
	}

	slog.Info("graceful shutdown complete")
}
