package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/errors"
	"github.com/johnquangdev/meetscribe/internal/adapter/dto/common"
	summaryDTO "github.com/johnquangdev/meetscribe/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetscribe/internal/adapter/presenter"
	summaryUsecase "github.com/johnquangdev/meetscribe/internal/usecase/summary"
)

// transcriptField is the multipart field carrying the upload
const transcriptField = "transcript"

// Summary handles transcript, summary and email HTTP requests
type Summary struct {
	svc    summaryUsecase.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summaryUsecase.Service, logger *zap.Logger) *Summary {
	return &Summary{
		svc:    svc,
		logger: logger,
	}
}

// Upload handles POST /api/upload
// @Summary      Upload a transcript
// @Description  Accepts a .txt or .docx transcript up to 10 MiB and returns its text
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Param        transcript  formData  file  true  "Transcript file"
// @Success      200  {object}  summaryDTO.UploadResponse
// @Failure      400  {object}  common.ErrorResponse  "Missing, unsupported, oversized or empty file"
// @Router       /upload [post]
func (h *Summary) Upload(c echo.Context) error {
	file, err := c.FormFile(transcriptField)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrNoFileUploaded())
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	t, err := h.svc.ReadTranscript(c.Request().Context(), file.Filename, file.Size, src)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToUploadResponse(t))
}

// Templates handles GET /api/templates
// @Summary      List instruction templates
// @Description  Returns the preset summary instructions keyed by name
// @Tags         Summaries
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /templates [get]
func (h *Summary) Templates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Templates())
}

// GenerateSummary handles POST /api/generate-summary
// @Summary      Generate a summary
// @Description  Sends the transcript and instruction to the AI provider and stores the result
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        request  body      summaryDTO.GenerateSummaryRequest  true  "Transcript and instruction"
// @Success      200      {object}  summaryDTO.GenerateSummaryResponse
// @Failure      400      {object}  common.ErrorResponse  "Transcript and prompt are required"
// @Failure      500      {object}  common.ErrorResponse  "Generation failed"
// @Router       /generate-summary [post]
func (h *Summary) GenerateSummary(c echo.Context) error {
	var req summaryDTO.GenerateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Transcript and prompt are required"))
	}

	sum, err := h.svc.GenerateSummary(c.Request().Context(), req.Transcript, req.Prompt)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, summaryDTO.GenerateSummaryResponse{
		SummaryID: sum.ID,
		Summary:   sum.GeneratedSummary,
	})
}

// UpdateSummary handles PATCH /api/summaries/:id
// @Summary      Save an edited summary
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Summary ID"
// @Param        request  body      summaryDTO.UpdateSummaryRequest  true  "Edited HTML"
// @Success      200      {object}  summaryDTO.SummaryResponse
// @Failure      400      {object}  common.ErrorResponse  "Edited summary is required"
// @Failure      404      {object}  common.ErrorResponse  "Summary not found"
// @Router       /summaries/{id} [patch]
func (h *Summary) UpdateSummary(c echo.Context) error {
	var req summaryDTO.UpdateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Edited summary is required"))
	}

	sum, err := h.svc.UpdateSummary(c.Request().Context(), c.Param("id"), req.EditedSummary)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSummaryResponse(sum))
}

// GetSummary handles GET /api/summaries/:id
// @Summary      Get a summary
// @Tags         Summaries
// @Produce      json
// @Param        id   path      string  true  "Summary ID"
// @Success      200  {object}  summaryDTO.SummaryResponse
// @Failure      404  {object}  common.ErrorResponse  "Summary not found"
// @Router       /summaries/{id} [get]
func (h *Summary) GetSummary(c echo.Context) error {
	sum, err := h.svc.GetSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSummaryResponse(sum))
}

// ListShares handles GET /api/summaries/:id/shares
// @Summary      List email shares of a summary
// @Tags         Summaries
// @Produce      json
// @Param        id   path      string  true  "Summary ID"
// @Success      200  {array}   summaryDTO.EmailShareResponse
// @Failure      404  {object}  common.ErrorResponse  "Summary not found"
// @Router       /summaries/{id}/shares [get]
func (h *Summary) ListShares(c echo.Context) error {
	shares, err := h.svc.ListEmailShares(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToEmailShareResponses(shares))
}

// SendEmail handles POST /api/send-email
// @Summary      Email a summary
// @Description  Sends the edited summary, or the generated one when unedited, to the recipients
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        request  body      summaryDTO.SendEmailRequest  true  "Recipients and subject"
// @Success      200      {object}  common.MessageResponse
// @Failure      400      {object}  common.ErrorResponse  "Validation failed"
// @Failure      404      {object}  common.ErrorResponse  "Summary not found"
// @Failure      500      {object}  common.ErrorResponse  "Email dispatch failed"
// @Router       /send-email [post]
func (h *Summary) SendEmail(c echo.Context) error {
	var req summaryDTO.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Summary ID, recipients, and subject are required").
			WithDetail("validation", err.Error()))
	}

	_, err := h.svc.SendEmail(c.Request().Context(), summaryUsecase.SendEmailInput{
		SummaryID:  req.SummaryID,
		Recipients: req.Recipients,
		Subject:    req.Subject,
		Message:    req.Message,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Email sent successfully"})
}
