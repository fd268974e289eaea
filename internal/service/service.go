// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

// instrumentationName is the tracer and meter name for the service package.
const instrumentationName = "github.com/linuxfoundation/lfx-v2-transcript-service/internal/service"

type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// EmailSubject is the subject line of every artifact email. Defaults to DefaultEmailSubject.
	EmailSubject string
	// DeliveryConcurrency bounds the number of concurrent sends per dispatch.
	// Zero or less starts one goroutine per recipient.
	DeliveryConcurrency int
}
