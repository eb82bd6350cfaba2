// Package docx extracts text from Word documents. Paragraphs become lines
// and table rows become tab-separated lines so minutes and timesheet
// tables survive extraction.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// MIMEType is the Office Open XML word processing type.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the body text of word/document.xml, preceded by the
// core title when it is set and differs from the first line.
func (e *Extractor) Extract(_ context.Context, file *domain.RawFile) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: not a docx archive: %v", domain.ErrInvalidInput, err)
	}

	body, err := openPart(reader, "word/document.xml")
	if err != nil {
		return "", err
	}
	if body == nil {
		return "", fmt.Errorf("%w: docx has no word/document.xml", domain.ErrInvalidInput)
	}
	defer body.Close()

	text, err := documentText(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if title := coreTitle(reader); title != "" {
		first, _, _ := strings.Cut(text, "\n")
		if first != title {
			text = strings.TrimSpace(title + "\n" + text)
		}
	}
	return text, nil
}

// openPart opens a named archive member, returning nil when absent.
func openPart(reader *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidInput, name, err)
		}
		return rc, nil
	}
	return nil, nil
}

// documentText streams the document body. Paragraph text inside a table
// cell is joined with spaces; cells are joined with tabs.
func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out       []string
		para      strings.Builder
		cell      []string
		row       []string
		cellDepth int
		inText    bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteString(" ")
			case "br", "cr":
				if cellDepth > 0 {
					para.WriteString(" ")
				} else {
					para.WriteString("\n")
				}
			case "tc":
				cellDepth++
				cell = cell[:0]
			case "tr":
				row = row[:0]
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				line := strings.TrimSpace(para.String())
				para.Reset()
				if line == "" {
					continue
				}
				if cellDepth > 0 {
					cell = append(cell, line)
				} else {
					out = append(out, line)
				}
			case "tc":
				if cellDepth > 0 {
					cellDepth--
				}
				row = append(row, strings.Join(cell, " "))
			case "tr":
				if line := strings.Join(row, "\t"); strings.TrimSpace(line) != "" {
					out = append(out, line)
				}
			}
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n")), nil
}

// coreXML is the subset of docProps/core.xml that is read.
type coreXML struct {
	Title string `xml:"title"`
}

// coreTitle returns the document title, or "" when unset or unreadable.
func coreTitle(reader *zip.Reader) string {
	rc, err := openPart(reader, "docProps/core.xml")
	if err != nil || rc == nil {
		return ""
	}
	defer rc.Close()

	var core coreXML
	if err := xml.NewDecoder(rc).Decode(&core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
