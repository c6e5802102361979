package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/errors"
	sessionDTO "github.com/johnquangdev/meetscribe/internal/adapter/dto/session"
	"github.com/johnquangdev/meetscribe/internal/usecase/workflow"
)

// Session drives workflow sessions over HTTP
type Session struct {
	store  *workflow.SessionStore
	ctrl   *workflow.Controller
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *workflow.SessionStore, ctrl *workflow.Controller, logger *zap.Logger) *Session {
	return &Session{
		store:  store,
		ctrl:   ctrl,
		logger: logger,
	}
}

// respond writes the session view, or the error when err is set
func (h *Session) respond(c echo.Context, s *workflow.Session, err error) error {
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// Create handles POST /api/sessions
// @Summary      Start a workflow session
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  workflow.View
// @Router       /sessions [post]
func (h *Session) Create(c echo.Context) error {
	s := h.store.Create()
	h.logger.Info("session created", zap.String("session_id", s.ID()))
	return c.JSON(http.StatusCreated, s.View())
}

// Get handles GET /api/sessions/:id
// @Summary      Get a workflow session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  workflow.View
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id} [get]
func (h *Session) Get(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// Delete handles DELETE /api/sessions/:id
// @Summary      Discard a workflow session
// @Tags         Sessions
// @Param        id   path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /sessions/{id} [delete]
func (h *Session) Delete(c echo.Context) error {
	if err := h.store.Delete(c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadTranscript handles POST /api/sessions/:id/transcript
// @Summary      Upload the session transcript
// @Tags         Sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      string  true  "Session ID"
// @Param        transcript  formData  file    true  "Transcript file"
// @Success      200  {object}  workflow.View
// @Failure      400  {object}  common.ErrorResponse  "Invalid file"
// @Failure      409  {object}  common.ErrorResponse  "Not at the upload step"
// @Router       /sessions/{id}/transcript [post]
func (h *Session) UploadTranscript(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	file, err := c.FormFile(transcriptField)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrNoFileUploaded())
	}
	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	err = h.ctrl.AcceptTranscript(c.Request().Context(), s, file.Filename, file.Size, src)
	return h.respond(c, s, err)
}

// Generate handles POST /api/sessions/:id/generate
// @Summary      Generate the session summary
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Session ID"
// @Param        request  body      sessionDTO.GenerateRequest  true  "Instruction"
// @Success      200      {object}  workflow.View
// @Failure      400      {object}  common.ErrorResponse  "Missing instruction"
// @Failure      409      {object}  common.ErrorResponse  "Wrong step or generation already running"
// @Failure      500      {object}  common.ErrorResponse  "Generation failed"
// @Router       /sessions/{id}/generate [post]
func (h *Session) Generate(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDTO.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	err = h.ctrl.Generate(c.Request().Context(), s, req.Prompt)
	return h.respond(c, s, err)
}

// Regenerate handles POST /api/sessions/:id/regenerate
// @Summary      Return to the instruction step
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  workflow.View
// @Failure      409  {object}  common.ErrorResponse  "Not at the review step"
// @Router       /sessions/{id}/regenerate [post]
func (h *Session) Regenerate(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.respond(c, s, h.ctrl.Regenerate(s))
}

// Back handles POST /api/sessions/:id/back
// @Summary      Go back one step
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  workflow.View
// @Failure      409  {object}  common.ErrorResponse  "No previous step"
// @Router       /sessions/{id}/back [post]
func (h *Session) Back(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.respond(c, s, h.ctrl.Back(s))
}

// Proceed handles POST /api/sessions/:id/proceed
// @Summary      Save the reviewed summary and continue to sharing
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Session ID"
// @Param        request  body      sessionDTO.ProceedRequest  true  "Reviewed HTML"
// @Success      200      {object}  workflow.View
// @Failure      409      {object}  common.ErrorResponse  "Not at the review step"
// @Router       /sessions/{id}/proceed [post]
func (h *Session) Proceed(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDTO.ProceedRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	err = h.ctrl.Proceed(c.Request().Context(), s, req.Content)
	return h.respond(c, s, err)
}

// Share handles POST /api/sessions/:id/share
// @Summary      Email the session summary
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Session ID"
// @Param        request  body      sessionDTO.ShareRequest  true  "Recipients and subject"
// @Success      200      {object}  workflow.View
// @Failure      400      {object}  common.ErrorResponse  "Validation failed"
// @Failure      409      {object}  common.ErrorResponse  "Not at the share step"
// @Failure      500      {object}  common.ErrorResponse  "Email dispatch failed"
// @Router       /sessions/{id}/share [post]
func (h *Session) Share(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDTO.ShareRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	err = h.ctrl.Share(c.Request().Context(), s, req.Recipients, req.Subject, req.Message)
	return h.respond(c, s, err)
}

// Reset handles POST /api/sessions/:id/reset
// @Summary      Start over
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  workflow.View
// @Router       /sessions/{id}/reset [post]
func (h *Session) Reset(c echo.Context) error {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.ctrl.Reset(s)
	return c.JSON(http.StatusOK, s.View())
}
