// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// MeetingTokenVersion is the token schema revision issued to meeting clients.
const MeetingTokenVersion = 2

// TokenService issues tokens for meeting clients.
type TokenService struct {
	Issuer domain.TokenIssuer
}

// NewTokenService creates a new TokenService.
func NewTokenService(issuer domain.TokenIssuer) *TokenService {
	return &TokenService{
		Issuer: issuer,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *TokenService) ServiceReady() bool {
	return s.Issuer != nil
}

// IssueMeetingToken issues a token allowing its holder to join and moderate meetings.
func (s *TokenService) IssueMeetingToken(ctx context.Context) (string, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return "", domain.NewInternalError("token service is not initialized")
	}

	token, err := s.Issuer.Issue(domain.TokenRequest{
		Permissions: []string{domain.PermissionAllowJoin, domain.PermissionAllowMod},
		Version:     MeetingTokenVersion,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue meeting token", logging.ErrKey, err)
		return "", err
	}

	return token, nil
}
