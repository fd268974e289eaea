// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// TranscriptionFilePaths holds the pre-signed URLs of every format the
// provider produced for a transcription job.
type TranscriptionFilePaths struct {
	JSON string `json:"json"`
	SRT  string `json:"srt"`
	TXT  string `json:"txt"`
	TSV  string `json:"tsv"`
	VTT  string `json:"vtt"`
}

// SummarizedFilePaths holds the pre-signed URLs of the generated summary.
type SummarizedFilePaths struct {
	TXT string `json:"txt"`
}

// TranscriptionJobResult is the post-transcription job resource returned by the provider.
type TranscriptionJobResult struct {
	ID                     string                 `json:"id"`
	Status                 string                 `json:"status"`
	RoomID                 string                 `json:"roomId"`
	SessionID              string                 `json:"sessionId"`
	RecordingID            string                 `json:"recordingId"`
	FilePath               string                 `json:"filePath"`
	TranscriptionFilePaths TranscriptionFilePaths `json:"transcriptionFilePaths"`
	SummarizedFilePaths    SummarizedFilePaths    `json:"summarizedFilePaths"`
	Start                  string                 `json:"start"`
	End                    string                 `json:"end"`
}

// ArtifactContent is the text of the transcription and its summary, held
// only for the duration of one pipeline run.
type ArtifactContent struct {
	TranscriptionText string
	SummaryText       string
}
