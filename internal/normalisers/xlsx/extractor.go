// Package xlsx extracts text from Excel workbooks. Each sheet is written
// as a header line followed by one tab-separated line per non-empty row,
// prefixed with its 1-based row number so extracted facts can cite rows.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// MIMEType is the Office Open XML spreadsheet type.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles XLSX workbooks.
type Extractor struct{}

// New creates a new XLSX extractor.
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

// Extract renders every sheet of the workbook as text.
func (e *Extractor) Extract(ctx context.Context, file *domain.RawFile) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	if err != nil {
		return "", fmt.Errorf("%w: open workbook: %v", domain.ErrInvalidInput, err)
	}
	defer wb.Close()

	var b strings.Builder
	for _, sheet := range wb.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: read sheet %q: %v", domain.ErrInvalidInput, sheet, err)
		}
		writeSheet(&b, sheet, rows)
	}
	return strings.TrimSpace(b.String()), nil
}

func writeSheet(b *strings.Builder, name string, rows [][]string) {
	var lines []string
	for i, row := range rows {
		cells := make([]string, len(row))
		empty := true
		for j, c := range row {
			cells[j] = strings.TrimSpace(strings.ReplaceAll(c, "\n", " "))
			if cells[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		lines = append(lines, strconv.Itoa(i+1)+"\t"+strings.Join(trimTrailing(cells), "\t"))
	}
	if len(lines) == 0 {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString("## Sheet: ")
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
