// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package videosdk

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// FetchFileContent downloads a provider-hosted artifact as text. The URL is
// pre-signed, so no access token is attached.
func (c *Client) FetchFileContent(ctx context.Context, fileURL string) (string, error) {
	ctx = logging.AppendCtx(ctx, slog.String("videosdk_operation", "get_file"))

	if fileURL == "" {
		err := domain.NewUpstreamError("VideoSDK returned no file URL")
		slog.ErrorContext(ctx, "missing file URL", logging.ErrKey, err)
		return "", err
	}

	body, err := c.get(ctx, c.fileClient, fileURL, "text/plain, */*")
	if err != nil {
		slog.ErrorContext(ctx, "failed to download file", logging.ErrKey, err)
		return "", err
	}

	slog.DebugContext(ctx, "downloaded file", "bytes", len(body))

	return string(body), nil
}
