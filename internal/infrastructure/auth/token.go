// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package auth issues the short-lived HS256 tokens used to call the VideoSDK API
// and to join rooms.
package auth

import (
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

const (
	// TokenTTL is the fixed lifetime of every issued token.
	TokenTTL = 10 * time.Minute

	claimAPIKey      = "apikey"
	claimPermissions = "permissions"
	claimVersion     = "version"
)

// TokenIssuer signs provider tokens with the configured credential.
type TokenIssuer struct {
	credential models.Credential
	now        func() time.Time
}

// Ensure that TokenIssuer implements domain.TokenIssuer
var _ domain.TokenIssuer = (*TokenIssuer)(nil)

// NewTokenIssuer creates a token issuer. An empty secret is a configuration
// error; there is no fallback signing key.
func NewTokenIssuer(credential models.Credential) (*TokenIssuer, error) {
	if credential.SecretKey == "" {
		return nil, domain.NewConfigurationError("VideoSDK secret key is not configured")
	}

	return &TokenIssuer{
		credential: credential,
		now:        time.Now,
	}, nil
}

// Issue signs a token carrying the API key, the requested permissions and
// version, any extra claims, and an expiry of [TokenTTL] after issuance.
func (i *TokenIssuer) Issue(req domain.TokenRequest) (string, error) {
	issuedAt := i.now()

	claims := jwt.MapClaims{}
	maps.Copy(claims, req.Claims)

	claims[claimAPIKey] = i.credential.APIKey
	if len(req.Permissions) > 0 {
		claims[claimPermissions] = req.Permissions
	}
	if req.Version != 0 {
		claims[claimVersion] = req.Version
	}
	claims["iat"] = jwt.NewNumericDate(issuedAt)
	claims["exp"] = jwt.NewNumericDate(issuedAt.Add(TokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.credential.SecretKey))
	if err != nil {
		return "", domain.NewInternalError("failed to sign access token", err)
	}

	return signed, nil
}

// Verify parses a token signed by this issuer and returns its claims.
// Expired tokens and tokens signed with another method or key are rejected.
func (i *TokenIssuer) Verify(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(i.credential.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	return claims, nil
}
