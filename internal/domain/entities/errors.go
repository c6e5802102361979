package entities

import "errors"

// Domain errors
var (
	ErrSummaryNotFound = errors.New("summary not found")
	ErrInvalidSummary  = errors.New("invalid summary")
	ErrInvalidShare    = errors.New("invalid email share")
)
