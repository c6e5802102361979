package presenter

import (
	summaryDTO "github.com/johnquangdev/meetscribe/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	summaryUsecase "github.com/johnquangdev/meetscribe/internal/usecase/summary"
)

// ToSummaryResponse converts a Summary entity to SummaryResponse DTO
func ToSummaryResponse(s *entities.Summary) *summaryDTO.SummaryResponse {
	if s == nil {
		return nil
	}

	return &summaryDTO.SummaryResponse{
		ID:                 s.ID,
		OriginalTranscript: s.OriginalTranscript,
		CustomPrompt:       s.CustomPrompt,
		GeneratedSummary:   s.GeneratedSummary,
		EditedSummary:      s.EditedSummary,
		CreatedAt:          s.CreatedAt,
	}
}

// ToEmailShareResponses converts share entities to DTOs, never returning nil
func ToEmailShareResponses(shares []*entities.EmailShare) []summaryDTO.EmailShareResponse {
	out := make([]summaryDTO.EmailShareResponse, 0, len(shares))
	for _, e := range shares {
		recipients := make([]string, len(e.Recipients))
		copy(recipients, e.Recipients)

		out = append(out, summaryDTO.EmailShareResponse{
			ID:         e.ID,
			SummaryID:  e.SummaryID,
			Recipients: recipients,
			Subject:    e.Subject,
			Message:    e.Message,
			SentAt:     e.SentAt,
		})
	}
	return out
}

// ToUploadResponse converts an accepted transcript to UploadResponse DTO
func ToUploadResponse(t *summaryUsecase.Transcript) *summaryDTO.UploadResponse {
	return &summaryDTO.UploadResponse{
		Filename:  t.Filename,
		Size:      t.Size,
		Content:   t.Content,
		ObjectKey: t.ObjectKey,
	}
}
