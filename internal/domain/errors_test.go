// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	cause := errors.New("status 502")

	tests := []struct {
		name         string
		err          *DomainError
		expectedType ErrorType
		expectedMsg  string
	}{
		{
			name:         "validation without cause",
			err:          NewValidationError("unsupported webhook type"),
			expectedType: ErrorTypeValidation,
			expectedMsg:  "unsupported webhook type",
		},
		{
			name:         "configuration without cause",
			err:          NewConfigurationError("VIDEOSDK_SECRET_KEY is not set"),
			expectedType: ErrorTypeConfiguration,
			expectedMsg:  "VIDEOSDK_SECRET_KEY is not set",
		},
		{
			name:         "upstream with cause",
			err:          NewUpstreamError("failed to fetch transcription job", cause),
			expectedType: ErrorTypeUpstream,
			expectedMsg:  "failed to fetch transcription job: status 502",
		},
		{
			name:         "delivery with cause",
			err:          NewDeliveryError("failed to send email", cause),
			expectedType: ErrorTypeDelivery,
			expectedMsg:  "failed to send email: status 502",
		},
		{
			name:         "internal with cause",
			err:          NewInternalError("failed to encode", cause),
			expectedType: ErrorTypeInternal,
			expectedMsg:  "failed to encode: status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.err.Type)
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			assert.Equal(t, tt.expectedType, GetErrorType(tt.err))
		})
	}
}

func TestGetErrorType_Wrapped(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", NewUpstreamError("roster fetch failed"))
	assert.Equal(t, ErrorTypeUpstream, GetErrorType(err))
}

func TestGetErrorType_PlainErrorDefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, GetErrorType(errors.New("boom")))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("request failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "validation", ErrorTypeValidation.String())
	assert.Equal(t, "configuration", ErrorTypeConfiguration.String())
	assert.Equal(t, "upstream", ErrorTypeUpstream.String())
	assert.Equal(t, "delivery", ErrorTypeDelivery.String())
	assert.Equal(t, "internal", ErrorTypeInternal.String())
}
