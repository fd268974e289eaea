// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// RecorderParticipant is the name suffix the provider gives its recording bot.
const RecorderParticipant = "recorder"

// TimelogEntry is one join/leave interval of a participant.
type TimelogEntry struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParticipantRecord is a session participant. Name is path-like; the segment
// after the last "/" is the participant's email address, or "recorder" for
// the recording bot.
type ParticipantRecord struct {
	ID         string         `json:"_id"`
	ExternalID string         `json:"externalId"`
	Name       string         `json:"name"`
	Timelog    []TimelogEntry `json:"timelog"`
}

// Session is the subset of the provider's session resource the service reads.
type Session struct {
	ID           string              `json:"id"`
	RoomID       string              `json:"roomId"`
	Participants []ParticipantRecord `json:"participants"`
}
