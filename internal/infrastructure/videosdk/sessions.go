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

// FetchParticipantRoster retrieves the participants of a recorded session
func (c *Client) FetchParticipantRoster(ctx context.Context, sessionID string) ([]models.ParticipantRecord, error) {
	ctx = logging.AppendCtx(ctx, slog.String("videosdk_operation", "get_session"))

	var session models.Session
	if err := c.getJSON(ctx, "/v2/sessions/"+url.PathEscape(sessionID), &session); err != nil {
		slog.ErrorContext(ctx, "failed to get session", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "successfully retrieved session roster",
		"participant_count", len(session.Participants))

	return session.Participants, nil
}
