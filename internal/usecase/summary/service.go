package summary

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	"github.com/johnquangdev/meetscribe/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/pkg/validator"
)

// Service defines the summary operations exposed over HTTP
type Service interface {
	ReadTranscript(ctx context.Context, filename string, size int64, src io.Reader) (*Transcript, error)
	Templates() map[string]string
	GenerateSummary(ctx context.Context, transcript, prompt string) (*entities.Summary, error)
	GetSummary(ctx context.Context, id string) (*entities.Summary, error)
	UpdateSummary(ctx context.Context, id, editedSummary string) (*entities.Summary, error)
	SendEmail(ctx context.Context, input SendEmailInput) (*entities.EmailShare, error)
	ListEmailShares(ctx context.Context, summaryID string) ([]*entities.EmailShare, error)
}

// SendEmailInput represents input for emailing a summary
type SendEmailInput struct {
	SummaryID  string
	Recipients []string
	Subject    string
	Message    *string
}

type service struct {
	repo       repositories.SummaryRepository
	generator  Generator
	dispatcher Dispatcher
	transcript *transcriptReader
	logger     *zap.Logger
}

// NewService creates a summary service. archive may be nil.
func NewService(
	repo repositories.SummaryRepository,
	generator Generator,
	dispatcher Dispatcher,
	archive Archive,
	logger *zap.Logger,
) Service {
	return &service{
		repo:       repo,
		generator:  generator,
		dispatcher: dispatcher,
		transcript: &transcriptReader{archive: archive, now: time.Now, logger: logger},
		logger:     logger,
	}
}

// ReadTranscript validates an upload and returns its text
func (s *service) ReadTranscript(ctx context.Context, filename string, size int64, src io.Reader) (*Transcript, error) {
	t, err := s.transcript.read(ctx, filename, size, src)
	if err != nil {
		return nil, err
	}

	s.logger.Info("📥 Transcript accepted",
		zap.String("filename", t.Filename),
		zap.Int64("size", t.Size),
		zap.String("object_key", t.ObjectKey))
	return t, nil
}

// Templates returns the preset instruction catalog
func (s *service) Templates() map[string]string {
	return s.generator.Templates()
}

// GenerateSummary calls the AI provider and persists the result
func (s *service) GenerateSummary(ctx context.Context, transcript, prompt string) (*entities.Summary, error) {
	if strings.TrimSpace(transcript) == "" || strings.TrimSpace(prompt) == "" {
		return nil, usecaseErrors.NewValidationError("", "Transcript and prompt are required")
	}

	html, err := s.generator.Generate(ctx, transcript, prompt)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateSummary(ctx, &entities.Summary{
		OriginalTranscript: transcript,
		CustomPrompt:       prompt,
		GeneratedSummary:   html,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.logger.Info("summary saved", zap.String("summary_id", created.ID))
	return created, nil
}

// GetSummary retrieves a summary by ID
func (s *service) GetSummary(ctx context.Context, id string) (*entities.Summary, error) {
	return s.repo.GetSummary(ctx, id)
}

// UpdateSummary stores the user's edit
func (s *service) UpdateSummary(ctx context.Context, id, editedSummary string) (*entities.Summary, error) {
	if editedSummary == "" {
		return nil, usecaseErrors.NewValidationError("editedSummary", "Edited summary is required")
	}

	updated, err := s.repo.UpdateSummary(ctx, id, entities.SummaryUpdate{EditedSummary: &editedSummary})
	if err != nil {
		return nil, err
	}

	s.logger.Info("summary edited", zap.String("summary_id", id))
	return updated, nil
}

// SendEmail emails the summary's effective content and records the share.
// Unknown summaries fail before anything is sent.
func (s *service) SendEmail(ctx context.Context, input SendEmailInput) (*entities.EmailShare, error) {
	recipients, err := NormalizeRecipients(input.Recipients)
	if err != nil {
		return nil, err
	}
	if input.SummaryID == "" || strings.TrimSpace(input.Subject) == "" {
		return nil, usecaseErrors.NewValidationError("", "Summary ID, recipients, and subject are required")
	}

	message := input.Message
	if message != nil && strings.TrimSpace(*message) == "" {
		message = nil
	}

	sum, err := s.repo.GetSummary(ctx, input.SummaryID)
	if err != nil {
		return nil, err
	}

	err = s.dispatcher.Send(ctx, Email{
		Recipients:  recipients,
		Subject:     input.Subject,
		Message:     message,
		SummaryHTML: sum.EffectiveContent(),
	})
	if err != nil {
		return nil, err
	}

	share, err := s.repo.CreateEmailShare(ctx, &entities.EmailShare{
		SummaryID:  sum.ID,
		Recipients: recipients,
		Subject:    input.Subject,
		Message:    message,
	})
	if err != nil {
		s.logger.Error("email sent but share was not recorded",
			zap.String("summary_id", sum.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to record email share: %w", err)
	}

	return share, nil
}

// ListEmailShares returns the share receipts of a summary
func (s *service) ListEmailShares(ctx context.Context, summaryID string) ([]*entities.EmailShare, error) {
	if _, err := s.repo.GetSummary(ctx, summaryID); err != nil {
		return nil, err
	}
	return s.repo.ListEmailSharesBySummaryID(ctx, summaryID)
}

// NormalizeRecipients trims, validates and de-duplicates addresses, keeping first-seen order
func NormalizeRecipients(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, raw := range in {
		addr := strings.TrimSpace(raw)
		if addr == "" {
			continue
		}
		if !validator.IsRecipient(addr) {
			return nil, usecaseErrors.NewValidationError("recipients", fmt.Sprintf("Invalid email address: %s", addr))
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}

	if len(out) == 0 {
		return nil, usecaseErrors.NewValidationError("recipients", "At least one recipient is required")
	}
	return out, nil
}
