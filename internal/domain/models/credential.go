// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "log/slog"

// Credential is the VideoSDK API key pair. It is loaded once at startup and
// passed by value to the components that sign tokens.
type Credential struct {
	APIKey    string
	SecretKey string
}

// String never reveals the secret key.
func (c Credential) String() string {
	return "Credential{APIKey:" + c.APIKey + ", SecretKey:[REDACTED]}"
}

// LogValue implements slog.LogValuer so a credential passed to a logger is redacted.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("api_key", c.APIKey),
		slog.String("secret_key", "[REDACTED]"),
	)
}
