package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/pkg/docx"
)

// MaxTranscriptSize is the upload limit in bytes
const MaxTranscriptSize int64 = 10 << 20

const (
	extText = ".txt"
	extDocx = ".docx"
)

var contentTypes = map[string]string{
	extText: "text/plain; charset=utf-8",
	extDocx: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Archive stores raw uploads
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Transcript is an accepted upload
type Transcript struct {
	Filename  string
	Size      int64
	Content   string
	ObjectKey string
}

// transcriptReader validates uploads and extracts their text
type transcriptReader struct {
	archive Archive
	now     func() time.Time
	logger  *zap.Logger
}

func (r *transcriptReader) read(ctx context.Context, filename string, size int64, src io.Reader) (*Transcript, error) {
	if src == nil || filename == "" {
		return nil, usecaseErrors.ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := contentTypes[ext]; !ok {
		return nil, usecaseErrors.ErrUnsupportedFileType
	}
	if size > MaxTranscriptSize {
		return nil, usecaseErrors.ErrFileTooLarge
	}

	// The declared size may lie, so the read itself is bounded too.
	data, err := io.ReadAll(io.LimitReader(src, MaxTranscriptSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > MaxTranscriptSize {
		return nil, usecaseErrors.ErrFileTooLarge
	}

	var content string
	switch ext {
	case extDocx:
		content, err = docx.ExtractText(data, MaxTranscriptSize)
		if errors.Is(err, docx.ErrTooLarge) {
			return nil, usecaseErrors.ErrFileTooLarge
		}
		if err != nil {
			r.logger.Warn("docx extraction failed", zap.String("filename", filename), zap.Error(err))
			return nil, usecaseErrors.ErrEmptyTranscript
		}
	default:
		content = string(data)
	}

	if strings.TrimSpace(content) == "" {
		return nil, usecaseErrors.ErrEmptyTranscript
	}

	t := &Transcript{
		Filename: filename,
		Size:     int64(len(data)),
		Content:  content,
	}

	if r.archive != nil {
		key := archiveKey(r.now(), filename)
		if err := r.archive.Put(ctx, key, data, contentTypes[ext]); err != nil {
			r.logger.Warn("transcript archive failed",
				zap.String("filename", filename),
				zap.String("object_key", key),
				zap.Error(err))
		} else {
			t.ObjectKey = key
		}
	}

	return t, nil
}

// archiveKey returns transcripts/YYYY/MM/DD/<uuid>-<basename>
func archiveKey(at time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	return fmt.Sprintf("transcripts/%s/%s-%s", at.UTC().Format("2006/01/02"), uuid.NewString(), base)
}
