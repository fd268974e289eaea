// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/videosdk"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/utils"
)

const defaultPort = "3000"

// flags are the command line flags for the transcript service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the transcript service.
type environment struct {
	Port              string
	Credential        models.Credential
	VideoSDK          videosdk.Config
	Email             emailConfig
	Delivery          service.ServiceConfig
	NatsURL           string
	CORSAllowedOrigin string
}

// emailConfig holds the SMTP account used to send artifacts.
type emailConfig struct {
	Account  string
	Password string
	Host     string
	Port     int
}

// Enabled reports whether an email account is configured.
func (c emailConfig) Enabled() bool {
	return c.Account != ""
}

// SMTPConfig converts the account settings into the SMTP transport configuration.
func (c emailConfig) SMTPConfig() email.SMTPConfig {
	return email.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		From:     c.Account,
		Username: c.Account,
		Password: c.Password,
	}
}

// parseFlags parses command line flags for the transcript service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the transcript service.
// Invalid optional values fall back to their defaults with a warning.
func parseEnv() environment {
	baseURL := os.Getenv("VIDEOSDK_API_BASE_URL")
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
			slog.With("url", baseURL).Warn("invalid VIDEOSDK_API_BASE_URL provided, using default")
			baseURL = ""
		}
	}

	smtpPort := parseIntEnv("SMTP_PORT", email.DefaultSMTPPort)
	concurrency := parseIntEnv("DELIVERY_CONCURRENCY", 0)

	var timeout time.Duration
	if raw := os.Getenv("VIDEOSDK_HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			slog.With("value", raw).Warn("invalid VIDEOSDK_HTTP_TIMEOUT provided, outbound calls will not time out")
		} else {
			timeout = parsed
		}
	}

	return environment{
		Port: utils.Coalesce(os.Getenv("PORT"), defaultPort),
		Credential: models.Credential{
			APIKey:    os.Getenv("VIDEOSDK_API_KEY"),
			SecretKey: os.Getenv("VIDEOSDK_SECRET_KEY"),
		},
		VideoSDK: videosdk.Config{
			BaseURL: utils.Coalesce(baseURL, videosdk.BaseURL),
			Timeout: timeout,
		},
		Email: emailConfig{
			Account:  os.Getenv("EMAIL_ID"),
			Password: os.Getenv("EMAIL_PASS"),
			Host:     utils.Coalesce(os.Getenv("SMTP_HOST"), email.DefaultSMTPHost),
			Port:     smtpPort,
		},
		Delivery: service.ServiceConfig{
			EmailSubject:        utils.Coalesce(os.Getenv("EMAIL_SUBJECT"), service.DefaultEmailSubject),
			DeliveryConcurrency: concurrency,
		},
		NatsURL:           os.Getenv("NATS_URL"),
		CORSAllowedOrigin: utils.Coalesce(os.Getenv("CORS_ALLOWED_ORIGIN"), "*"),
	}
}

// validate reports every missing required setting at once.
func (e environment) validate() error {
	var errs []error
	if e.Credential.APIKey == "" {
		errs = append(errs, errors.New("VIDEOSDK_API_KEY environment variable is required but not set"))
	}
	if e.Credential.SecretKey == "" {
		errs = append(errs, errors.New("VIDEOSDK_SECRET_KEY environment variable is required but not set"))
	}
	if e.Email.Enabled() && e.Email.Password == "" {
		errs = append(errs, errors.New("EMAIL_PASS environment variable is required when EMAIL_ID is set"))
	}
	if len(errs) > 0 {
		return domain.NewConfigurationError("invalid configuration", errs...)
	}
	return nil
}

func parseIntEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.With("value", raw).Warn("invalid " + name + " provided, using default")
		return fallback
	}
	return value
}
