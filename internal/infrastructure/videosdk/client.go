// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package videosdk is the gateway to the VideoSDK REST API: transcription
// job results, session rosters and the pre-signed artifact files.
package videosdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

const (
	// BaseURL is the base URL for the VideoSDK API
	BaseURL = "https://api.videosdk.live"

	// maxErrorBodyLogSize bounds how much of an error body is logged.
	maxErrorBodyLogSize = 2048
)

// Config holds the configuration for the VideoSDK client
type Config struct {
	// Optional: override base URL for testing
	BaseURL string
	// Optional: HTTP client timeout. Zero leaves the transport default (no timeout).
	Timeout time.Duration
}

// Client represents a VideoSDK API client
type Client struct {
	apiClient  *http.Client
	fileClient *http.Client
	config     Config
}

// Ensure that Client implements domain.ProviderGateway
var _ domain.ProviderGateway = (*Client)(nil)

// issuerTokenSource implements oauth2.TokenSource by signing a new API-key
// token on every call. It is deliberately not wrapped in
// oauth2.ReuseTokenSource: each provider request carries a fresh token.
type issuerTokenSource struct {
	issuer domain.TokenIssuer
	now    func() time.Time
}

// Token implements the oauth2.TokenSource interface
func (s *issuerTokenSource) Token() (*oauth2.Token, error) {
	issuedAt := s.now()
	accessToken, err := s.issuer.Issue(domain.TokenRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to issue VideoSDK API token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		Expiry:      issuedAt.Add(auth.TokenTTL),
	}, nil
}

// tokenTransport sets the raw access token as the Authorization header.
// VideoSDK expects the token without an auth scheme, which oauth2.Transport
// cannot produce since it always prefixes the token type.
type tokenTransport struct {
	Base   http.RoundTripper
	Source oauth2.TokenSource
}

// RoundTrip implements the http.RoundTripper interface
func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}

	token, err := t.Source.Token()
	if err != nil {
		return nil, err
	}

	// Requests must not be modified by a RoundTripper.
	authReq := req.Clone(req.Context())
	authReq.Header.Set("Authorization", token.AccessToken)

	return t.Base.RoundTrip(authReq)
}

// NewClient creates a new VideoSDK API client. Authenticated API calls
// sign their own tokens with issuer; file downloads carry no credentials
// because the pre-signed URL is the authorization.
func NewClient(config Config, issuer domain.TokenIssuer) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	// Strip trailing slash from base URL to prevent double slashes in URL construction
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	base := otelhttp.NewTransport(http.DefaultTransport)

	return &Client{
		apiClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &tokenTransport{
				Base:   base,
				Source: &issuerTokenSource{issuer: issuer, now: time.Now},
			},
		},
		fileClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: base,
		},
		config: config,
	}
}

// getJSON performs an authenticated GET against the API and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.config.BaseURL + path

	body, err := c.get(ctx, c.apiClient, url, "application/json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		slog.ErrorContext(ctx, "failed to decode VideoSDK response", logging.ErrKey, err, "path", path)
		return domain.NewUpstreamError("failed to decode VideoSDK response", err)
	}

	return nil
}

// get performs a GET with the given client and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, httpClient *http.Client, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to create request", err)
	}
	req.Header.Set("Accept", accept)

	startTime := time.Now()
	resp, err := httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		slog.ErrorContext(ctx, "VideoSDK request failed",
			"duration", duration.String(),
			logging.ErrKey, err)
		return nil, domain.NewUpstreamError("VideoSDK request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to read VideoSDK response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := parseErrorResponse(resp.StatusCode, body)
		slog.ErrorContext(ctx, "VideoSDK API error response",
			"status", resp.StatusCode,
			"duration", duration.String(),
			"body", truncate(string(body), maxErrorBodyLogSize),
			logging.ErrKey, err)
		return nil, domain.NewUpstreamError("VideoSDK request returned an error status", err)
	}

	slog.DebugContext(ctx, "VideoSDK request completed",
		"status", resp.StatusCode,
		"duration", duration.String(),
		"bytes", len(body),
	)

	return body, nil
}

// parseErrorResponse attempts to parse a VideoSDK API error response
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		StatusCode int    `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("videosdk API error (status %d): %s", statusCode, errResp.Message)
	}
	if len(body) == 0 {
		return fmt.Errorf("videosdk API error (status %d)", statusCode)
	}
	return fmt.Errorf("videosdk API error (status %d): %s", statusCode, truncate(string(body), maxErrorBodyLogSize))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
