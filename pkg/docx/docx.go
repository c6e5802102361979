// Package docx extracts plain text from Office Open XML word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

var (
	// ErrNotDocx is returned when the input is not a zip container with a main document part
	ErrNotDocx = errors.New("not a valid .docx document")

	// ErrTooLarge is returned when the uncompressed document part exceeds the limit
	ErrTooLarge = errors.New("document exceeds the size limit")
)

// ExtractText returns the document body text: one line per paragraph,
// tabs and line breaks preserved. At most limit bytes of the uncompressed
// main document part are read.
func ExtractText(data []byte, limit int64) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("%w: missing %s", ErrNotDocx, documentPart)
	}

	if part.UncompressedSize64 > uint64(limit) {
		return "", ErrTooLarge
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", documentPart, err)
	}
	defer rc.Close()

	// The zip header size is not trusted.
	return extractXML(&limitedReader{r: rc, n: limit})
}

// limitedReader fails with ErrTooLarge once more than n bytes were read
type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return 0, ErrTooLarge
	}
	return n, err
}

// extractXML walks the WordprocessingML token stream. Only w:t text runs
// are emitted; w:tab, w:br and w:cr inside a run become whitespace and
// every closing w:p ends a line. Tab stop definitions (w:tabs/w:tab under
// paragraph properties) sit outside runs and are skipped.
func extractXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		sb     strings.Builder
		inText bool
		inRun  int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				inRun++
			case "t":
				inText = true
			case "tab":
				if inRun > 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if inRun > 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				inRun--
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
