package summary

// GenerateSummaryRequest represents the request to generate a summary
type GenerateSummaryRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	Prompt     string `json:"prompt" validate:"required"`
}

// UpdateSummaryRequest represents the request to save an edited summary
type UpdateSummaryRequest struct {
	EditedSummary string `json:"editedSummary" validate:"required"`
}

// SendEmailRequest represents the request to email a summary
type SendEmailRequest struct {
	SummaryID  string   `json:"summaryId" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,recipient"`
	Subject    string   `json:"subject" validate:"required"`
	Message    *string  `json:"message,omitempty"`
}
