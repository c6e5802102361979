package summary

import "time"

// UploadResponse represents an accepted transcript upload
type UploadResponse struct {
	Filename  string `json:"filename" example:"standup.txt"`
	Size      int64  `json:"size" example:"2048"`
	Content   string `json:"content"`
	ObjectKey string `json:"objectKey,omitempty" example:"transcripts/2026/01/02/0b6f...-standup.txt"`
}

// GenerateSummaryResponse represents a freshly generated summary
type GenerateSummaryResponse struct {
	SummaryID string `json:"summaryId"`
	Summary   string `json:"summary" example:"<ul><li>Decision A</li></ul>"`
}

// SummaryResponse represents a stored summary
type SummaryResponse struct {
	ID                 string    `json:"id"`
	OriginalTranscript string    `json:"originalTranscript"`
	CustomPrompt       string    `json:"customPrompt"`
	GeneratedSummary   string    `json:"generatedSummary"`
	EditedSummary      *string   `json:"editedSummary"`
	CreatedAt          time.Time `json:"createdAt"`
}

// EmailShareResponse represents one recorded email dispatch
type EmailShareResponse struct {
	ID         string    `json:"id"`
	SummaryID  string    `json:"summaryId"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	Message    *string   `json:"message"`
	SentAt     time.Time `json:"sentAt"`
}
