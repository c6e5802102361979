package workflow

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/internal/usecase/summary"
)

// Controller drives sessions through Upload, Instruct, Review, Share and Done.
// State checks and writes happen under the session lock; outbound calls run
// without it, guarded by the in-flight flag. A result that arrives after the
// session was reset or the caller's context ended is dropped.
type Controller struct {
	svc    summary.Service
	logger *zap.Logger
}

// NewController creates a workflow controller
func NewController(svc summary.Service, logger *zap.Logger) *Controller {
	return &Controller{svc: svc, logger: logger}
}

// begin checks the step, runs check under the lock and marks the session busy
func (c *Controller) begin(s *Session, want Step, action string, check func() error) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return 0, usecaseErrors.ErrOperationInFlight
	}
	if s.step != want {
		return 0, &usecaseErrors.TransitionError{Step: s.step.String(), Action: action}
	}
	if check != nil {
		if err := check(); err != nil {
			return 0, err
		}
	}

	s.inFlight = true
	return s.epoch, nil
}

// complete releases the busy flag and applies the outcome if it is still wanted
func (c *Controller) complete(ctx context.Context, s *Session, epoch uint64, callErr error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		c.logger.Info("discarding result of reset session", zap.String("session_id", s.id))
		return usecaseErrors.ErrSessionReset
	}
	s.inFlight = false

	if callErr != nil {
		return callErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	apply()
	s.touch()
	return nil
}

// AcceptTranscript validates the upload and moves to Instruct
func (c *Controller) AcceptTranscript(ctx context.Context, s *Session, filename string, size int64, src io.Reader) error {
	epoch, err := c.begin(s, StepUpload, "upload", nil)
	if err != nil {
		return err
	}

	t, err := c.svc.ReadTranscript(ctx, filename, size, src)

	return c.complete(ctx, s, epoch, err, func() {
		s.transcriptText = t.Content
		s.transcriptFilename = t.Filename
		s.step = StepInstruct
	})
}

// Generate asks for a summary of the stored transcript and moves to Review.
// On failure the session stays in Instruct.
func (c *Controller) Generate(ctx context.Context, s *Session, instruction string) error {
	var transcript string
	epoch, err := c.begin(s, StepInstruct, "generate", func() error {
		if strings.TrimSpace(instruction) == "" || strings.TrimSpace(s.transcriptText) == "" {
			return usecaseErrors.NewValidationError("", "Transcript and prompt are required")
		}
		transcript = s.transcriptText
		return nil
	})
	if err != nil {
		return err
	}

	sum, err := c.svc.GenerateSummary(ctx, transcript, instruction)

	return c.complete(ctx, s, epoch, err, func() {
		s.summaryID = sum.ID
		s.summaryContent = sum.GeneratedSummary
		s.savedContent = sum.GeneratedSummary
		s.step = StepReview
	})
}

// Regenerate returns from Review to Instruct. Stored summaries are kept.
func (c *Controller) Regenerate(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return usecaseErrors.ErrOperationInFlight
	}
	if s.step != StepReview {
		return &usecaseErrors.TransitionError{Step: s.step.String(), Action: "regenerate"}
	}

	s.step = StepInstruct
	s.touch()
	return nil
}

// Back moves one step backwards from Instruct, Review or Share
func (c *Controller) Back(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return usecaseErrors.ErrOperationInFlight
	}

	switch s.step {
	case StepInstruct:
		s.step = StepUpload
	case StepReview:
		s.step = StepInstruct
	case StepShare:
		s.step = StepReview
	default:
		return &usecaseErrors.TransitionError{Step: s.step.String(), Action: "go back"}
	}

	s.touch()
	return nil
}

// Proceed moves from Review to Share, persisting content only if it changed
func (c *Controller) Proceed(ctx context.Context, s *Session, content string) error {
	var (
		summaryID string
		changed   bool
	)
	epoch, err := c.begin(s, StepReview, "proceed", func() error {
		summaryID = s.summaryID
		changed = content != s.savedContent
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		_, err = c.svc.UpdateSummary(ctx, summaryID, content)
	}

	return c.complete(ctx, s, epoch, err, func() {
		s.summaryContent = content
		s.savedContent = content
		s.step = StepShare
	})
}

// Share emails the summary and moves to Done
func (c *Controller) Share(ctx context.Context, s *Session, recipients []string, subject string, message *string) error {
	var (
		summaryID  string
		normalized []string
	)
	epoch, err := c.begin(s, StepShare, "share", func() error {
		if s.summaryID == "" {
			panic("workflow: share step reached without a summary id")
		}

		var err error
		if normalized, err = summary.NormalizeRecipients(recipients); err != nil {
			return err
		}
		if strings.TrimSpace(subject) == "" {
			return usecaseErrors.NewValidationError("subject", "Subject is required")
		}
		summaryID = s.summaryID
		return nil
	})
	if err != nil {
		return err
	}

	_, err = c.svc.SendEmail(ctx, summary.SendEmailInput{
		SummaryID:  summaryID,
		Recipients: normalized,
		Subject:    subject,
		Message:    message,
	})

	return c.complete(ctx, s, epoch, err, func() {
		s.step = StepDone
	})
}

// Reset returns to Upload from any step and clears all transient state.
// Operations still running for the old state will have their results dropped.
func (c *Controller) Reset(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
}
