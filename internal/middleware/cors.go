// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-transcript-service/pkg/constants"
)

var (
	corsAllowedMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	corsAllowedHeaders = strings.Join([]string{"Content-Type", "Authorization", constants.RequestIDHeader}, ", ")
)

// CORSMiddleware allows browser clients from allowedOrigin to call the API.
// An allowedOrigin of "*" or "" allows any origin. Preflight requests are
// answered directly with 204.
func CORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(constants.OriginHeader)
			if origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
				header := w.Header()
				header.Set("Access-Control-Allow-Origin", allowedOrigin)
				header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
				header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				header.Set("Access-Control-Expose-Headers", constants.RequestIDHeader)
				if allowedOrigin != "*" {
					header.Add("Vary", constants.OriginHeader)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
