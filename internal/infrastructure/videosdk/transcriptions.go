// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package videosdk

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/logging"
)

// FetchTranscriptionJob retrieves the result of a post-transcription job
func (c *Client) FetchTranscriptionJob(ctx context.Context, jobID string) (*models.TranscriptionJobResult, error) {
	ctx = logging.AppendCtx(ctx, slog.String("videosdk_operation", "get_post_transcription"))

	var job models.TranscriptionJobResult
	if err := c.getJSON(ctx, "/ai/v1/post-transcriptions/"+url.PathEscape(jobID), &job); err != nil {
		slog.ErrorContext(ctx, "failed to get transcription job", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "successfully retrieved transcription job",
		"session_id", job.SessionID,
		"status", job.Status)

	return &job, nil
}
