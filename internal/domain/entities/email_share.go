package entities

import (
	"time"

	"gorm.io/datatypes"
)

// EmailShare records one successful email dispatch of a summary
type EmailShare struct {
	ID         string                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	SummaryID  string                      `json:"summaryId" gorm:"type:varchar(36);not null;index"`
	Recipients datatypes.JSONSlice[string] `json:"recipients" gorm:"type:jsonb;not null"`
	Subject    string                      `json:"subject" gorm:"type:text;not null"`
	Message    *string                     `json:"message" gorm:"type:text"`
	SentAt     time.Time                   `json:"sentAt" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (EmailShare) TableName() string {
	return "email_shares"
}

// Clone returns a deep copy
func (e *EmailShare) Clone() *EmailShare {
	if e == nil {
		return nil
	}
	out := *e
	out.Recipients = append(datatypes.JSONSlice[string](nil), e.Recipients...)
	if e.Message != nil {
		msg := *e.Message
		out.Message = &msg
	}
	return &out
}
