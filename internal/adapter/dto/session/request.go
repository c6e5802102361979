package session

// GenerateRequest represents the instruction for a session's summary
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// ProceedRequest carries the reviewed summary content
type ProceedRequest struct {
	Content string `json:"content"`
}

// ShareRequest represents the email details for a session's summary
type ShareRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    *string  `json:"message,omitempty"`
}
