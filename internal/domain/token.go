// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

// Permissions understood by the provider for room access tokens.
const (
	PermissionAllowJoin = "allow_join"
	PermissionAllowMod  = "allow_mod"
)

// TokenRequest describes the access token to issue.
type TokenRequest struct {
	// Permissions granted by the token. Empty for API-key bearer tokens.
	Permissions []string
	// Version is the token schema revision. Zero omits the claim.
	Version int
	// Claims are extra claims merged into the payload.
	Claims map[string]any
}

// TokenIssuer signs short-lived provider access tokens.
type TokenIssuer interface {
	Issue(req TokenRequest) (string, error)
}
