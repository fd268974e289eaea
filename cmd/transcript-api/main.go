// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the transcript service API that issues meeting tokens and
// emails transcriptions and summaries to meeting participants.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/videosdk"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/utils"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	if err := env.validate(); err != nil {
		slog.With(logging.ErrKey, err).Error("error loading configuration", logging.PriorityCritical())
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up OpenTelemetry SDK")
		os.Exit(1)
	}

	tokenIssuer, err := auth.NewTokenIssuer(env.Credential)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up token issuer")
		os.Exit(1)
	}
	gateway := videosdk.NewClient(env.VideoSDK, tokenIssuer)

	// Initialize email service (independent of NATS)
	emailService, err := setupEmailService(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email service")
		os.Exit(1)
	}

	// Setup NATS connection; optional, only used for delivery reports.
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		os.Exit(1)
	}

	var reportSender domain.DeliveryReportSender
	var readinessChecks []func() bool
	if natsConn != nil {
		messageBuilder := messaging.NewMessageBuilder(natsConn)
		reportSender = messageBuilder
		readinessChecks = append(readinessChecks, messageBuilder.IsReady)
	}

	// Initialize services
	dispatcher := service.NewDeliveryDispatcher(emailService, reportSender, env.Delivery)
	webhookService := service.NewTranscriptionWebhookService(gateway, dispatcher)
	tokenService := service.NewTokenService(tokenIssuer)

	api := NewTranscriptAPI(tokenService, webhookService, readinessChecks...)

	httpServer := setupHTTPServer(flags, env, api, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, dispatcher, &gracefulCloseWG, cancel, otelShutdown)
}
