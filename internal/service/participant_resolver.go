// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-transcript-service/internal/domain/models"
)

// ResolveRecipients maps a session roster to the email addresses that should
// receive the artifacts. The address is the segment after the last "/" of the
// participant name, or the whole name when it has none. The recording bot is
// dropped. Roster order is preserved and duplicates are kept.
func ResolveRecipients(roster []models.ParticipantRecord) []string {
	recipients := make([]string, 0, len(roster))
	for _, participant := range roster {
		address := participantAddress(participant.Name)
		if address == models.RecorderParticipant {
			continue
		}
		recipients = append(recipients, address)
	}
	return recipients
}

func participantAddress(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
