package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// TextExtractor turns raw file bytes into plain text.
// Each extractor handles specific MIME types (e.g., DOCX, XLSX).
type TextExtractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the plain text content of the file.
	// A structured failure is returned as domain.ErrInvalidInput (wrapped).
	Extract(ctx context.Context, file *domain.RawFile) (string, error)
}

// TextExtractorRegistry manages text extractors and selects by MIME type.
type TextExtractorRegistry interface {
	// Extract runs the highest-priority extractor for the file's MIME type.
	// Returns domain.ErrUnsupportedType when nothing handles the type.
	Extract(ctx context.Context, file *domain.RawFile) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor TextExtractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
