package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// createTestDOCX creates a minimal DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML, coreXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}
	if coreXML != "" {
		core, err := w.Create("docProps/core.xml")
		require.NoError(t, err)
		_, err = core.Write([]byte(coreXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func document(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`
}

func extract(t *testing.T, content []byte) (string, error) {
	t.Helper()
	return New().Extract(context.Background(), &domain.RawFile{
		Filename: "minutes.docx",
		MIMEType: MIMEType,
		Content:  content,
	})
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, []string{MIMEType}, e.SupportedMIMETypes())
	assert.Equal(t, 50, e.Priority())
}

func TestExtract_Paragraphs(t *testing.T) {
	body := `<w:p><w:r><w:t>Board meeting</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Action: </w:t></w:r><w:r><w:t>Alice to review budget</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>`

	text, err := extract(t, createTestDOCX(t, document(body), ""))
	require.NoError(t, err)
	assert.Equal(t, "Board meeting\nAction: Alice to review budget\nLine one\nLine two", text)
}

func TestExtract_Tables(t *testing.T) {
	body := `<w:p><w:r><w:t>Timesheet</w:t></w:r></w:p>` +
		`<w:tbl>` +
		`<w:tr><w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Hours</w:t></w:r></w:p></w:tc></w:tr>` +
		`<w:tr><w:tc><w:p><w:r><w:t>Alice</w:t></w:r></w:p><w:p><w:r><w:t>Smith</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>120</w:t></w:r></w:p></w:tc></w:tr>` +
		`</w:tbl>`

	text, err := extract(t, createTestDOCX(t, document(body), ""))
	require.NoError(t, err)
	assert.Equal(t, "Timesheet\nName\tHours\nAlice Smith\t120", text)
}

func TestExtract_Title(t *testing.T) {
	core := `<?xml version="1.0" encoding="UTF-8"?><cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>March Minutes</dc:title></cp:coreProperties>`

	text, err := extract(t, createTestDOCX(t, document(`<w:p><w:r><w:t>Present: all</w:t></w:r></w:p>`), core))
	require.NoError(t, err)
	assert.Equal(t, "March Minutes\nPresent: all", text)

	text, err = extract(t, createTestDOCX(t, document(`<w:p><w:r><w:t>March Minutes</w:t></w:r></w:p>`), core))
	require.NoError(t, err)
	assert.Equal(t, "March Minutes", text)
}

func TestExtract_Invalid(t *testing.T) {
	_, err := extract(t, []byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = extract(t, createTestDOCX(t, "", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = extract(t, createTestDOCX(t, "<w:document><w:body><w:p>", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
