package entities

import (
	"time"
)

// Summary is one generation cycle: a transcript, the instruction used,
// the AI output, and the optional user edit.
type Summary struct {
	ID                 string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OriginalTranscript string    `json:"originalTranscript" gorm:"type:text;not null"`
	CustomPrompt       string    `json:"customPrompt" gorm:"type:text;not null"`
	GeneratedSummary   string    `json:"generatedSummary" gorm:"type:text;not null"`
	EditedSummary      *string   `json:"editedSummary" gorm:"type:text"`
	CreatedAt          time.Time `json:"createdAt" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// EffectiveContent returns the edited summary when present, otherwise the generated one
func (s *Summary) EffectiveContent() string {
	if s.EditedSummary != nil {
		return *s.EditedSummary
	}
	return s.GeneratedSummary
}

// Clone returns a deep copy
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	out := *s
	if s.EditedSummary != nil {
		edited := *s.EditedSummary
		out.EditedSummary = &edited
	}
	return &out
}

// SummaryUpdate carries the fields an edit may replace. Nil fields are left untouched.
type SummaryUpdate struct {
	EditedSummary *string
}

// Apply merges the update into s by whole-field replacement
func (u SummaryUpdate) Apply(s *Summary) {
	if u.EditedSummary != nil {
		edited := *u.EditedSummary
		s.EditedSummary = &edited
	}
}
