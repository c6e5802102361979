package errors

import "strconv"

// ErrorCode identifies an error class in API responses
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = 0
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Transcript intake
	ErrorCode_TRANSCRIPT_MISSING          ErrorCode = 2000
	ErrorCode_TRANSCRIPT_UNSUPPORTED_TYPE ErrorCode = 2001
	ErrorCode_TRANSCRIPT_TOO_LARGE        ErrorCode = 2002
	ErrorCode_TRANSCRIPT_EMPTY            ErrorCode = 2003

	// Summaries
	ErrorCode_SUMMARY_NOT_FOUND ErrorCode = 3000
	ErrorCode_AI_SUMMARY_FAILED ErrorCode = 3001

	// Email
	ErrorCode_EMAIL_SEND_FAILED ErrorCode = 4000

	// Workflow sessions
	ErrorCode_SESSION_NOT_FOUND    ErrorCode = 5000
	ErrorCode_SESSION_INVALID_STEP ErrorCode = 5001
	ErrorCode_SESSION_BUSY         ErrorCode = 5002
	ErrorCode_SESSION_RESET        ErrorCode = 5003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                     "UNKNOWN",
	ErrorCode_HTTP_OK:                     "HTTP_OK",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:             "INVALID_PAYLOAD",
	ErrorCode_TRANSCRIPT_MISSING:          "TRANSCRIPT_MISSING",
	ErrorCode_TRANSCRIPT_UNSUPPORTED_TYPE: "TRANSCRIPT_UNSUPPORTED_TYPE",
	ErrorCode_TRANSCRIPT_TOO_LARGE:        "TRANSCRIPT_TOO_LARGE",
	ErrorCode_TRANSCRIPT_EMPTY:            "TRANSCRIPT_EMPTY",
	ErrorCode_SUMMARY_NOT_FOUND:           "SUMMARY_NOT_FOUND",
	ErrorCode_AI_SUMMARY_FAILED:           "AI_SUMMARY_FAILED",
	ErrorCode_EMAIL_SEND_FAILED:           "EMAIL_SEND_FAILED",
	ErrorCode_SESSION_NOT_FOUND:           "SESSION_NOT_FOUND",
	ErrorCode_SESSION_INVALID_STEP:        "SESSION_INVALID_STEP",
	ErrorCode_SESSION_BUSY:                "SESSION_BUSY",
	ErrorCode_SESSION_RESET:               "SESSION_RESET",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
