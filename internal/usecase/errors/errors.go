package errors

import (
	"errors"
	"fmt"
)

// Workflow errors
var (
	ErrInvalidTransition = errors.New("operation not allowed from current step")
	ErrOperationInFlight = errors.New("another operation is in progress")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionReset      = errors.New("session was reset")
)

// Transcript intake errors
var (
	ErrNoFile              = NewValidationError("transcript", "No file uploaded")
	ErrUnsupportedFileType = NewValidationError("transcript", "Only .txt and .docx files are allowed")
	ErrFileTooLarge        = NewValidationError("transcript", "File exceeds the maximum upload size")
	ErrEmptyTranscript     = NewValidationError("transcript", "File appears to be empty or unreadable")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GenerationError reports a failed AI summary call
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Failed to generate summary: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EmailError reports a failed email submission
type EmailError struct {
	Err error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("Failed to send email: %v", e.Err)
}

func (e *EmailError) Unwrap() error { return e.Err }

// TransitionError wraps ErrInvalidTransition with the step and action involved
type TransitionError struct {
	Step   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from step %s", e.Action, e.Step)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
