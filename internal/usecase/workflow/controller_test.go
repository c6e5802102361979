package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/internal/adapter/repository"
	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/internal/usecase/summary"
	"github.com/johnquangdev/meetscribe/pkg/ai"
)

type stubTextGenerator struct {
	mu      sync.Mutex
	out     string
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *stubTextGenerator) GenerateText(ctx context.Context, _ ai.GenerateRequest) (string, error) {
	g.mu.Lock()
	g.calls++
	out, err := g.out, g.err
	g.mu.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, err
}

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []summary.Email
	err   error
}

func (d *recordingDispatcher) Send(_ context.Context, email summary.Email) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, email)
	return d.err
}

type fixture struct {
	ctrl       *Controller
	repo       *repository.MemorySummaryRepository
	gen        *stubTextGenerator
	dispatcher *recordingDispatcher
	svc        summary.Service
}

func newFixture() *fixture {
	logger := zap.NewNop()
	f := &fixture{
		repo:       repository.NewMemorySummaryRepository(),
		gen:        &stubTextGenerator{out: "<ul><li>Decision A</li></ul>"},
		dispatcher: &recordingDispatcher{},
	}
	f.svc = summary.NewService(f.repo, summary.NewGenerator(f.gen, logger), f.dispatcher, nil, logger)
	f.ctrl = NewController(f.svc, logger)
	return f
}

func upload(t *testing.T, f *fixture, s *Session, body string) {
	t.Helper()
	require.NoError(t, f.ctrl.AcceptTranscript(context.Background(), s, "notes.txt", int64(len(body)), strings.NewReader(body)))
}

func TestController_HappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")

	transcript := "Q1 planning notes..." + strings.Repeat(" discussion", 180)
	upload(t, f, s, transcript)
	assert.Equal(t, StepInstruct, s.step)
	assert.Equal(t, transcript, s.View().TranscriptText)

	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize in bullet points"))
	v := s.View()
	assert.Equal(t, "review", v.Step)
	assert.Equal(t, "<ul><li>Decision A</li></ul>", v.SummaryContent)
	require.NotEmpty(t, v.SummaryID)

	edited := "<ul><li>Decision A</li><li>Decision B</li></ul>"
	require.NoError(t, f.ctrl.Proceed(ctx, s, edited))
	assert.Equal(t, StepShare, s.step)

	stored, err := f.repo.GetSummary(ctx, v.SummaryID)
	require.NoError(t, err)
	require.NotNil(t, stored.EditedSummary)
	assert.Equal(t, edited, *stored.EditedSummary)

	require.NoError(t, f.ctrl.Share(ctx, s, []string{"alice@co.com"}, "Q1 planning", nil))
	assert.Equal(t, StepDone, s.step)

	require.Len(t, f.dispatcher.calls, 1)
	assert.Equal(t, edited, f.dispatcher.calls[0].SummaryHTML)

	shares, err := f.repo.ListEmailSharesBySummaryID(ctx, v.SummaryID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, []string{"alice@co.com"}, []string(shares[0].Recipients))
}

func TestController_OversizedUploadRejected(t *testing.T) {
	f := newFixture()
	s := NewSession("s1")

	size := int64(15 << 20)
	err := f.ctrl.AcceptTranscript(context.Background(), s, "big.txt", size, strings.NewReader(strings.Repeat("a", int(size))))
	assert.ErrorIs(t, err, usecaseErrors.ErrFileTooLarge)
	assert.Equal(t, StepUpload, s.step)
	assert.False(t, s.View().Generating)
	assert.Zero(t, f.repo.Len())
	assert.Zero(t, f.gen.calls)
}

func TestController_GenerationFailureStaysInInstruct(t *testing.T) {
	f := newFixture()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	f.gen.err = errors.New("model overloaded")

	err := f.ctrl.Generate(context.Background(), s, "summarize")
	var genErr *usecaseErrors.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, err.Error(), "model overloaded")

	assert.Equal(t, StepInstruct, s.step)
	assert.False(t, s.View().Generating)
	assert.Empty(t, s.View().SummaryID)
	assert.Zero(t, f.repo.Len())

	// A retry from the same step is allowed.
	f.gen.err = nil
	require.NoError(t, f.ctrl.Generate(context.Background(), s, "summarize"))
	assert.Equal(t, StepReview, s.step)
}

func TestController_GenerateValidation(t *testing.T) {
	f := newFixture()
	s := NewSession("s1")
	upload(t, f, s, "transcript")

	err := f.ctrl.Generate(context.Background(), s, "   ")
	var vErr *usecaseErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StepInstruct, s.step)
	assert.Zero(t, f.gen.calls)
}

func TestController_ProceedSkipsUnchangedContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize"))

	require.NoError(t, f.ctrl.Proceed(ctx, s, "<ul><li>Decision A</li></ul>"))

	stored, err := f.repo.GetSummary(ctx, s.View().SummaryID)
	require.NoError(t, err)
	assert.Nil(t, stored.EditedSummary)
	assert.Equal(t, StepShare, s.step)
}

func TestController_InvalidTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")

	assert.ErrorIs(t, f.ctrl.Generate(ctx, s, "x"), usecaseErrors.ErrInvalidTransition)
	assert.ErrorIs(t, f.ctrl.Proceed(ctx, s, "x"), usecaseErrors.ErrInvalidTransition)
	assert.ErrorIs(t, f.ctrl.Regenerate(s), usecaseErrors.ErrInvalidTransition)
	assert.ErrorIs(t, f.ctrl.Back(s), usecaseErrors.ErrInvalidTransition)
	assert.ErrorIs(t, f.ctrl.Share(ctx, s, []string{"a@b.co"}, "s", nil), usecaseErrors.ErrInvalidTransition)

	upload(t, f, s, "transcript")
	err := f.ctrl.AcceptTranscript(ctx, s, "again.txt", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidTransition)
	assert.Equal(t, StepInstruct, s.step)
}

func TestController_BackAndRegenerate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize"))
	require.NoError(t, f.ctrl.Proceed(ctx, s, "<p>edited</p>"))

	require.NoError(t, f.ctrl.Back(s))
	assert.Equal(t, StepReview, s.step)
	assert.Equal(t, "<p>edited</p>", s.View().SummaryContent)

	require.NoError(t, f.ctrl.Regenerate(s))
	assert.Equal(t, StepInstruct, s.step)
	assert.Equal(t, 1, f.repo.Len())

	require.NoError(t, f.ctrl.Back(s))
	assert.Equal(t, StepUpload, s.step)
}

func TestController_ShareValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize"))
	require.NoError(t, f.ctrl.Proceed(ctx, s, "<p>x</p>"))

	var vErr *usecaseErrors.ValidationError
	assert.ErrorAs(t, f.ctrl.Share(ctx, s, nil, "s", nil), &vErr)
	assert.ErrorAs(t, f.ctrl.Share(ctx, s, []string{"bad"}, "s", nil), &vErr)
	assert.ErrorAs(t, f.ctrl.Share(ctx, s, []string{"a@b.co"}, " ", nil), &vErr)
	assert.Equal(t, StepShare, s.step)
	assert.Empty(t, f.dispatcher.calls)

	require.NoError(t, f.ctrl.Share(ctx, s, []string{"a@b.co", "a@b.co", "c@d.co"}, "s", nil))
	require.Len(t, f.dispatcher.calls, 1)
	assert.Equal(t, []string{"a@b.co", "c@d.co"}, f.dispatcher.calls[0].Recipients)
}

func TestController_ShareFailureKeepsStep(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize"))
	require.NoError(t, f.ctrl.Proceed(ctx, s, "<p>x</p>"))

	f.dispatcher.err = &usecaseErrors.EmailError{Err: errors.New("smtp down")}
	err := f.ctrl.Share(ctx, s, []string{"a@b.co"}, "s", nil)
	var mailErr *usecaseErrors.EmailError
	require.ErrorAs(t, err, &mailErr)
	assert.Equal(t, StepShare, s.step)
}

type shareFailingRepo struct {
	*repository.MemorySummaryRepository
}

func (r *shareFailingRepo) CreateEmailShare(context.Context, *entities.EmailShare) (*entities.EmailShare, error) {
	return nil, errors.New("connection reset")
}

func TestController_ShareNotRecordedKeepsStep(t *testing.T) {
	logger := zap.NewNop()
	repo := &shareFailingRepo{MemorySummaryRepository: repository.NewMemorySummaryRepository()}
	dispatcher := &recordingDispatcher{}
	svc := summary.NewService(repo, summary.NewGenerator(&stubTextGenerator{out: "<p>s</p>"}, logger), dispatcher, nil, logger)
	ctrl := NewController(svc, logger)
	ctx := context.Background()

	s := NewSession("s1")
	require.NoError(t, ctrl.AcceptTranscript(ctx, s, "notes.txt", 10, strings.NewReader("transcript")))
	require.NoError(t, ctrl.Generate(ctx, s, "summarize"))
	require.NoError(t, ctrl.Proceed(ctx, s, "<p>edited</p>"))

	err := ctrl.Share(ctx, s, []string{"a@b.co"}, "s", nil)
	require.Error(t, err)
	assert.Equal(t, StepShare, s.step)
	assert.False(t, s.inFlight)

	shares, err := repo.ListEmailSharesBySummaryID(ctx, s.View().SummaryID)
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestController_ShareWithoutSummaryPanics(t *testing.T) {
	f := newFixture()
	s := NewSession("s1")
	s.step = StepShare

	assert.Panics(t, func() {
		_ = f.ctrl.Share(context.Background(), s, []string{"a@b.co"}, "s", nil)
	})
}

func TestController_InFlightAndReset(t *testing.T) {
	f := newFixture()
	f.gen.started = make(chan struct{}, 1)
	f.gen.release = make(chan struct{})
	s := NewSession("s1")
	upload(t, f, s, "transcript")

	done := make(chan error, 1)
	go func() {
		done <- f.ctrl.Generate(context.Background(), s, "summarize")
	}()
	<-f.gen.started

	assert.True(t, s.View().Generating)
	assert.ErrorIs(t, f.ctrl.Generate(context.Background(), s, "again"), usecaseErrors.ErrOperationInFlight)
	assert.ErrorIs(t, f.ctrl.Back(s), usecaseErrors.ErrOperationInFlight)

	f.ctrl.Reset(s)
	close(f.gen.release)

	assert.ErrorIs(t, <-done, usecaseErrors.ErrSessionReset)
	v := s.View()
	assert.Equal(t, "upload", v.Step)
	assert.Empty(t, v.SummaryID)
	assert.Empty(t, v.TranscriptText)
	assert.False(t, v.Generating)
}

func TestController_CancelledContextDropsResult(t *testing.T) {
	f := newFixture()
	f.gen.started = make(chan struct{}, 1)
	f.gen.release = make(chan struct{})
	s := NewSession("s1")
	upload(t, f, s, "transcript")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.ctrl.Generate(ctx, s, "summarize")
	}()
	<-f.gen.started
	cancel()

	assert.Error(t, <-done)
	assert.Equal(t, StepInstruct, s.step)
	assert.False(t, s.View().Generating)
}

func TestController_ResetFromAnyStep(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := NewSession("s1")
	upload(t, f, s, "transcript")
	require.NoError(t, f.ctrl.Generate(ctx, s, "summarize"))

	f.ctrl.Reset(s)

	v := s.View()
	assert.Equal(t, 1, v.StepNumber)
	assert.Empty(t, v.TranscriptFilename)
	assert.Empty(t, v.SummaryContent)
	assert.False(t, v.Unsaved)

	// The persisted summary survives a reset.
	assert.Equal(t, 1, f.repo.Len())
}
