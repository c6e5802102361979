package summary

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/internal/adapter/repository"
	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
)

type serviceFixture struct {
	svc        Service
	repo       *repository.MemorySummaryRepository
	client     *fakeTextGenerator
	dispatcher *fakeDispatcher
	archive    *fakeArchive
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:       repository.NewMemorySummaryRepository(),
		client:     &fakeTextGenerator{out: "<p>generated</p>"},
		dispatcher: &fakeDispatcher{},
		archive:    &fakeArchive{},
	}
	logger := zap.NewNop()
	f.svc = NewService(f.repo, NewGenerator(f.client, logger), f.dispatcher, f.archive, logger)
	return f
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestService_ReadTranscript(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	content := "Alice: hello\nBob: hi\n"
	tr, err := f.svc.ReadTranscript(ctx, "Standup.TXT", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, content, tr.Content)
	assert.Equal(t, "Standup.TXT", tr.Filename)
	assert.Equal(t, int64(len(content)), tr.Size)
	require.Len(t, f.archive.keys, 1)
	assert.Equal(t, f.archive.keys[0], tr.ObjectKey)
	assert.True(t, strings.HasPrefix(tr.ObjectKey, "transcripts/"))
	assert.True(t, strings.HasSuffix(tr.ObjectKey, "-Standup.TXT"))

	data := buildDocx(t, `<w:p><w:r><w:t>Agenda</w:t></w:r></w:p><w:p><w:r><w:t>Item one</w:t></w:r></w:p>`)
	tr, err = f.svc.ReadTranscript(ctx, "notes.docx", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Agenda\nItem one", tr.Content)
}

func TestService_ReadTranscript_DocxExpandsPastLimit(t *testing.T) {
	f := newServiceFixture()

	text := strings.Repeat("a", int(MaxTranscriptSize)+1)
	data := buildDocx(t, `<w:p><w:r><w:t>`+text+`</w:t></w:r></w:p>`)
	require.Less(t, int64(len(data)), MaxTranscriptSize)

	_, err := f.svc.ReadTranscript(context.Background(), "big.docx", int64(len(data)), bytes.NewReader(data))
	assert.ErrorIs(t, err, usecaseErrors.ErrFileTooLarge)
	assert.Empty(t, f.archive.keys)
}

func TestService_ReadTranscript_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		body     string
		want     error
	}{
		{name: "missing file", filename: "", body: "x", want: usecaseErrors.ErrNoFile},
		{name: "pdf", filename: "notes.pdf", size: 1, body: "x", want: usecaseErrors.ErrUnsupportedFileType},
		{name: "no extension", filename: "notes", size: 1, body: "x", want: usecaseErrors.ErrUnsupportedFileType},
		{name: "declared too large", filename: "a.txt", size: MaxTranscriptSize + 1, body: "x", want: usecaseErrors.ErrFileTooLarge},
		{name: "whitespace only", filename: "a.txt", size: 4, body: " \n\t ", want: usecaseErrors.ErrEmptyTranscript},
		{name: "corrupt docx", filename: "a.docx", size: 3, body: "abc", want: usecaseErrors.ErrEmptyTranscript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.svc.ReadTranscript(context.Background(), tt.filename, tt.size, strings.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.archive.keys)
		})
	}
}

func TestService_ReadTranscript_SizeBoundary(t *testing.T) {
	f := newServiceFixture()

	exact := bytes.Repeat([]byte("a"), int(MaxTranscriptSize))
	tr, err := f.svc.ReadTranscript(context.Background(), "big.txt", MaxTranscriptSize, bytes.NewReader(exact))
	require.NoError(t, err)
	assert.Equal(t, MaxTranscriptSize, tr.Size)

	// undeclared size, oversized body
	over := bytes.Repeat([]byte("a"), int(MaxTranscriptSize)+1)
	_, err = f.svc.ReadTranscript(context.Background(), "big.txt", 0, bytes.NewReader(over))
	assert.ErrorIs(t, err, usecaseErrors.ErrFileTooLarge)
}

func TestService_ReadTranscript_ArchiveFailureIsIgnored(t *testing.T) {
	f := newServiceFixture()
	f.archive.err = errors.New("bucket offline")

	tr, err := f.svc.ReadTranscript(context.Background(), "a.txt", 5, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Empty(t, tr.ObjectKey)
}

func TestService_GenerateSummary(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	sum, err := f.svc.GenerateSummary(ctx, "Alice: ship it", "List decisions")
	require.NoError(t, err)
	assert.NotEmpty(t, sum.ID)
	assert.Equal(t, "<p>generated</p>", sum.GeneratedSummary)
	assert.Equal(t, "Alice: ship it", sum.OriginalTranscript)
	assert.Equal(t, "List decisions", sum.CustomPrompt)
	assert.Nil(t, sum.EditedSummary)

	stored, err := f.repo.GetSummary(ctx, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, stored)
}

func TestService_GenerateSummary_Validation(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GenerateSummary(context.Background(), "   ", "prompt")
	var vErr *usecaseErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Transcript and prompt are required", vErr.Message)

	_, err = f.svc.GenerateSummary(context.Background(), "transcript", "")
	require.ErrorAs(t, err, &vErr)
}

func TestService_GenerateSummary_ProviderFailureStoresNothing(t *testing.T) {
	f := newServiceFixture()
	f.client.err = errors.New("timeout")

	_, err := f.svc.GenerateSummary(context.Background(), "t", "p")
	var genErr *usecaseErrors.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Zero(t, f.repo.Len())
}

func TestService_UpdateSummary(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	sum, err := f.svc.GenerateSummary(ctx, "t", "p")
	require.NoError(t, err)

	_, err = f.svc.UpdateSummary(ctx, sum.ID, "")
	var vErr *usecaseErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Edited summary is required", vErr.Message)

	updated, err := f.svc.UpdateSummary(ctx, sum.ID, "<p>edited</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>edited</p>", updated.EffectiveContent())

	_, err = f.svc.UpdateSummary(ctx, "missing", "<p>x</p>")
	assert.ErrorIs(t, err, entities.ErrSummaryNotFound)
}

// Edit then send: the email carries the edited text and a share is recorded.
func TestService_SendEmail_UsesEditedContent(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	sum, err := f.svc.GenerateSummary(ctx, "t", "p")
	require.NoError(t, err)
	_, err = f.svc.UpdateSummary(ctx, sum.ID, "<p>E</p>")
	require.NoError(t, err)

	msg := "FYI"
	share, err := f.svc.SendEmail(ctx, SendEmailInput{
		SummaryID:  sum.ID,
		Recipients: []string{"a@b.co", " c@d.co ", "A@B.co"},
		Subject:    "Notes",
		Message:    &msg,
	})
	require.NoError(t, err)

	require.Len(t, f.dispatcher.calls, 1)
	call := f.dispatcher.calls[0]
	assert.Equal(t, "<p>E</p>", call.SummaryHTML)
	assert.Equal(t, []string{"a@b.co", "c@d.co"}, call.Recipients)
	require.NotNil(t, call.Message)
	assert.Equal(t, "FYI", *call.Message)

	require.NotNil(t, share)
	shares, err := f.svc.ListEmailShares(ctx, sum.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, []string{"a@b.co", "c@d.co"}, []string(shares[0].Recipients))
	assert.Equal(t, "Notes", shares[0].Subject)
}

// Sending for an unknown summary fails before any email is attempted.
func TestService_SendEmail_UnknownSummary(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.SendEmail(context.Background(), SendEmailInput{
		SummaryID:  "nope",
		Recipients: []string{"a@b.co"},
		Subject:    "s",
	})
	assert.ErrorIs(t, err, entities.ErrSummaryNotFound)
	assert.Empty(t, f.dispatcher.calls)
}

func TestService_SendEmail_DispatchFailureRecordsNothing(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.dispatcher.err = &usecaseErrors.EmailError{Err: errors.New("smtp down")}

	sum, err := f.svc.GenerateSummary(ctx, "t", "p")
	require.NoError(t, err)

	_, err = f.svc.SendEmail(ctx, SendEmailInput{SummaryID: sum.ID, Recipients: []string{"a@b.co"}, Subject: "s"})
	var mailErr *usecaseErrors.EmailError
	require.ErrorAs(t, err, &mailErr)

	shares, err := f.svc.ListEmailShares(ctx, sum.ID)
	require.NoError(t, err)
	assert.Empty(t, shares)
}

// shareFailingRepo stores summaries but refuses to record shares
type shareFailingRepo struct {
	*repository.MemorySummaryRepository
	err error
}

func (r *shareFailingRepo) CreateEmailShare(context.Context, *entities.EmailShare) (*entities.EmailShare, error) {
	return nil, r.err
}

func TestService_SendEmail_ShareNotRecorded(t *testing.T) {
	logger := zap.NewNop()
	repo := &shareFailingRepo{
		MemorySummaryRepository: repository.NewMemorySummaryRepository(),
		err:                     errors.New("connection reset"),
	}
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, NewGenerator(&fakeTextGenerator{out: "<p>s</p>"}, logger), dispatcher, nil, logger)
	ctx := context.Background()

	sum, err := svc.GenerateSummary(ctx, "t", "p")
	require.NoError(t, err)

	share, err := svc.SendEmail(ctx, SendEmailInput{SummaryID: sum.ID, Recipients: []string{"a@b.co"}, Subject: "s"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.err)
	assert.Nil(t, share)
	assert.Len(t, dispatcher.calls, 1)
}

func TestService_SendEmail_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SendEmailInput
	}{
		{name: "no recipients", input: SendEmailInput{SummaryID: "x", Subject: "s"}},
		{name: "blank recipients", input: SendEmailInput{SummaryID: "x", Subject: "s", Recipients: []string{" ", ""}}},
		{name: "bad address", input: SendEmailInput{SummaryID: "x", Subject: "s", Recipients: []string{"not-an-email"}}},
		{name: "missing subject", input: SendEmailInput{SummaryID: "x", Subject: "  ", Recipients: []string{"a@b.co"}}},
		{name: "missing summary id", input: SendEmailInput{Subject: "s", Recipients: []string{"a@b.co"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.svc.SendEmail(context.Background(), tt.input)
			var vErr *usecaseErrors.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Empty(t, f.dispatcher.calls)
		})
	}
}

func TestNormalizeRecipients(t *testing.T) {
	out, err := NormalizeRecipients([]string{"x@y.io", "a@b.co", "x@y.io"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x@y.io", "a@b.co"}, out)

	_, err = NormalizeRecipients([]string{"a@b"})
	assert.Error(t, err)
}
