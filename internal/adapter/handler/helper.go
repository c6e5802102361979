package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/errors"
	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/internal/usecase/summary"
)

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// toAppError maps usecase and domain errors onto API errors
func toAppError(err error) (errors.AppError, bool) {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}

	var (
		validationErr *usecaseErrors.ValidationError
		generationErr *usecaseErrors.GenerationError
		emailErr      *usecaseErrors.EmailError
		transitionErr *usecaseErrors.TransitionError
	)

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrNoFile):
		return errors.ErrNoFileUploaded(), true
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedFileType):
		return errors.ErrUnsupportedFileType(), true
	case stdErrors.Is(err, usecaseErrors.ErrFileTooLarge):
		return errors.ErrFileTooLarge(summary.MaxTranscriptSize), true
	case stdErrors.Is(err, usecaseErrors.ErrEmptyTranscript):
		return errors.ErrEmptyTranscript(), true
	case stdErrors.As(err, &validationErr):
		return errors.ErrInvalidArgument(validationErr.Message), true
	case stdErrors.Is(err, entities.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound(), true
	case stdErrors.As(err, &generationErr):
		return errors.ErrAISummaryFailed(generationErr), true
	case stdErrors.As(err, &emailErr):
		return errors.ErrEmailSendFailed(emailErr), true
	case stdErrors.As(err, &transitionErr):
		return errors.ErrSessionInvalidStep(transitionErr.Step, transitionErr.Action), true
	case stdErrors.Is(err, usecaseErrors.ErrOperationInFlight):
		return errors.ErrSessionBusy(), true
	case stdErrors.Is(err, usecaseErrors.ErrSessionReset):
		return errors.ErrSessionReset(), true
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound):
		return errors.ErrSessionNotFound(), true
	}

	return errors.AppError{}, false
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	if appErr, ok := toAppError(err); ok {
		if logger != nil {
			log := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil && appErr.Raw.Error() != appErr.Message {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}
