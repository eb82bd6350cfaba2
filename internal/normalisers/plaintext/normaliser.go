// Package plaintext extracts text from plain text, CSV, Markdown and JSON
// uploads. It is the fallback extractor.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor handles text-based files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/markdown",
		"text/x-markdown",
		"application/json",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5
}

// Extract returns the file as UTF-8 text with Unix line endings.
func (e *Extractor) Extract(_ context.Context, file *domain.RawFile) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}
	content := bytes.TrimPrefix(file.Content, utf8BOM)
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrInvalidInput, file.Filename)
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text), nil
}
