package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Q1 planning notes</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Alice: </w:t></w:r><w:r><w:t>ship it</w:t></w:r></w:p>
    <w:p><w:r><w:t>Owner</w:t><w:tab/><w:t>Bob</w:t><w:br/><w:t>Due Friday</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   sampleDocument,
	})

	text, err := ExtractText(data, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Q1 planning notes\nAlice: ship it\nOwner\tBob\nDue Friday", text)
}

func TestExtractText_NotZip(t *testing.T) {
	_, err := ExtractText([]byte("plain text, not a zip"), 1<<20)
	assert.ErrorIs(t, err, ErrNotDocx)
}

func TestExtractText_MissingDocumentPart(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": "<styles/>"})

	_, err := ExtractText(data, 1<<20)
	assert.ErrorIs(t, err, ErrNotDocx)
}

func TestExtractText_TabStopsIgnored(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/><w:tab w:val="right" w:pos="9000"/></w:tabs></w:pPr><w:r><w:t>Name</w:t><w:tab/><w:t>Role</w:t></w:r></w:p>
</w:body></w:document>`,
	})

	text, err := ExtractText(data, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Name\tRole", text)
}

func TestExtractText_TooLarge(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		strings.Repeat("a", 4096) +
		`</w:t></w:r></w:p></w:body></w:document>`
	data := buildDocx(t, map[string]string{"word/document.xml": body})
	require.Less(t, len(data), 1024)

	_, err := ExtractText(data, 1024)
	assert.ErrorIs(t, err, ErrTooLarge)

	text, err := ExtractText(data, int64(len(body)))
	require.NoError(t, err)
	assert.Len(t, text, 4096)
}

func TestLimitedReader(t *testing.T) {
	r := &limitedReader{r: strings.NewReader("abcdef"), n: 6}
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(b))

	r = &limitedReader{r: strings.NewReader("abcdefg"), n: 6}
	_, err = io.ReadAll(r)
	assert.ErrorIs(t, err, ErrTooLarge)
}
