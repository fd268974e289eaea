// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package videosdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/infrastructure/auth"
)

func newTestIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(models.Credential{APIKey: "test-api-key", SecretKey: "test-secret"})
	require.NoError(t, err)
	return issuer
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name            string
		config          Config
		expectedBaseURL string
		expectedTimeout time.Duration
	}{
		{
			name:            "defaults",
			config:          Config{},
			expectedBaseURL: BaseURL,
			expectedTimeout: 0,
		},
		{
			name:            "custom base URL with trailing slash",
			config:          Config{BaseURL: "https://api.example.com/", Timeout: 15 * time.Second},
			expectedBaseURL: "https://api.example.com",
			expectedTimeout: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config, newTestIssuer(t))
			require.NotNil(t, client)
			assert.Equal(t, tt.expectedBaseURL, client.config.BaseURL)
			assert.Equal(t, tt.expectedTimeout, client.apiClient.Timeout)
			assert.Equal(t, tt.expectedTimeout, client.fileClient.Timeout)
		})
	}
}

func TestClient_FetchTranscriptionJob(t *testing.T) {
	issuer := newTestIssuer(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ai/v1/post-transcriptions/job1", r.URL.Path)

		authHeader := r.Header.Get("Authorization")
		assert.False(t, strings.HasPrefix(authHeader, "Bearer "), "expected raw token without auth scheme, got %q", authHeader)
		claims, err := issuer.Verify(authHeader)
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "test-api-key", claims["apikey"])
		_, hasPermissions := claims["permissions"]
		assert.False(t, hasPermissions, "API tokens carry no permission claims")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"job1","sessionId":"s1","transcriptionFilePaths":{"txt":"https://files/t.txt"},"summarizedFilePaths":{"txt":"https://files/s.txt"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, issuer)

	job, err := client.FetchTranscriptionJob(context.Background(), "job1")
	require.NoError(t, err)
	assert.Equal(t, "job1", job.ID)
	assert.Equal(t, "s1", job.SessionID)
	assert.Equal(t, "https://files/t.txt", job.TranscriptionFilePaths.TXT)
	assert.Equal(t, "https://files/s.txt", job.SummarizedFilePaths.TXT)
}

func TestClient_FetchParticipantRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/sessions/s1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"s1","participants":[{"_id":"p1","name":"room/alice@example.com"},{"_id":"p2","name":"room/recorder"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, newTestIssuer(t))

	roster, err := client.FetchParticipantRoster(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "room/alice@example.com", roster[0].Name)
	assert.Equal(t, "room/recorder", roster[1].Name)
}

func TestClient_EachRequestIssuesFreshToken(t *testing.T) {
	issuer := &mocks.MockTokenIssuer{}
	issuer.On("Issue", domain.TokenRequest{}).Return("token-a", nil).Once()
	issuer.On("Issue", domain.TokenRequest{}).Return("token-b", nil).Once()

	var mu sync.Mutex
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"id":"job1","sessionId":"s1"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, issuer)

	_, err := client.FetchTranscriptionJob(context.Background(), "job1")
	require.NoError(t, err)
	_, err = client.FetchTranscriptionJob(context.Background(), "job1")
	require.NoError(t, err)

	assert.Equal(t, []string{"token-a", "token-b"}, seen)
	issuer.AssertExpectations(t)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTokenTransport_SetsRawTokenOnClone(t *testing.T) {
	issuer := &mocks.MockTokenIssuer{}
	issuer.On("Issue", domain.TokenRequest{}).Return("raw-jwt", nil).Once()

	var sent *http.Request
	transport := &tokenTransport{
		Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			sent = req
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
		Source: &issuerTokenSource{issuer: issuer, now: time.Now},
	}

	req := httptest.NewRequest(http.MethodGet, "https://api.videosdk.live/v2/sessions/s1", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.NotNil(t, sent)
	assert.Equal(t, "raw-jwt", sent.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"), "the caller's request must not be modified")
	issuer.AssertExpectations(t)
}

func TestClient_TokenIssueFailureIsUpstreamError(t *testing.T) {
	issuer := &mocks.MockTokenIssuer{}
	issuer.On("Issue", domain.TokenRequest{}).Return("", errors.New("signing failed"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, issuer)

	_, err := client.FetchParticipantRoster(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
	}{
		{
			name:        "server error with message",
			status:      http.StatusInternalServerError,
			body:        `{"statusCode":500,"error":"Internal Server Error","message":"database unavailable"}`,
			errContains: "database unavailable",
		},
		{
			name:        "not found with plain body",
			status:      http.StatusNotFound,
			body:        `not found`,
			errContains: "status 404",
		},
		{
			name:        "unauthorized with empty body",
			status:      http.StatusUnauthorized,
			body:        ``,
			errContains: "status 401",
		},
		{
			name:        "malformed JSON on success",
			status:      http.StatusOK,
			body:        `{"id":`,
			errContains: "failed to decode VideoSDK response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL}, newTestIssuer(t))

			job, err := client.FetchTranscriptionJob(context.Background(), "job1")
			require.Error(t, err)
			assert.Nil(t, job)
			assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestClient_ConnectionErrorIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: baseURL}, newTestIssuer(t))

	_, err := client.FetchParticipantRoster(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
}

func TestClient_FetchFileContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "pre-signed file URLs must not carry a token")
		switch r.URL.Path {
		case "/t.txt":
			_, _ = w.Write([]byte("Alice: hello\nBob: hi"))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: "https://api.unused.example"}, newTestIssuer(t))

	t.Run("success", func(t *testing.T) {
		content, err := client.FetchFileContent(context.Background(), server.URL+"/t.txt?signature=abc")
		require.NoError(t, err)
		assert.Equal(t, "Alice: hello\nBob: hi", content)
	})

	t.Run("non-success status", func(t *testing.T) {
		_, err := client.FetchFileContent(context.Background(), server.URL+"/expired.txt")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
	})

	t.Run("empty URL", func(t *testing.T) {
		_, err := client.FetchFileContent(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
	})
}

func TestParseErrorResponse(t *testing.T) {
	err := parseErrorResponse(http.StatusBadRequest, []byte(`{"message":"invalid id"}`))
	assert.EqualError(t, err, "videosdk API error (status 400): invalid id")

	err = parseErrorResponse(http.StatusBadGateway, nil)
	assert.EqualError(t, err, "videosdk API error (status 502)")
}
