package normalisers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/normalisers/docx"
	"github.com/custodia-labs/boardpack/internal/normalisers/html"
	"github.com/custodia-labs/boardpack/internal/normalisers/plaintext"
	"github.com/custodia-labs/boardpack/internal/normalisers/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractorRegistry = (*Registry)(nil)

// Registry maps MIME types to text extractors. When several extractors
// handle a type the one with the highest priority wins; ties keep
// registration order.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.TextExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMIME: make(map[string][]driven.TextExtractor)}
}

// Default returns a registry with every built-in extractor registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(xlsx.New())
	return r
}

// Register adds an extractor for each of its MIME types.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mt := range extractor.SupportedMIMETypes() {
		mt = strings.ToLower(mt)
		list := append(r.byMIME[mt], extractor)
		sort.SliceStable(list, func(i, j int) bool { return list[i].Priority() > list[j].Priority() })
		r.byMIME[mt] = list
	}
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		out = append(out, mt)
	}
	sort.Strings(out)
	return out
}

// Extract runs the preferred extractor for the file. A missing MIME type
// is inferred from the file extension.
func (r *Registry) Extract(ctx context.Context, file *domain.RawFile) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}
	mt := MIMEType(file)
	r.mu.RLock()
	list := r.byMIME[mt]
	r.mu.RUnlock()
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, mt)
	}
	return list[0].Extract(ctx, file)
}

// MIMEType returns the file's media type without parameters, falling back
// to the extension when none was declared.
func MIMEType(file *domain.RawFile) string {
	declared := file.MIMEType
	if declared == "" || declared == "application/octet-stream" {
		if byExt := ExtensionType(file.Filename); byExt != "" {
			declared = byExt
		}
	}
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(strings.TrimSpace(declared))
}

// extensionTypes covers board-pack formats that mime.TypeByExtension does
// not know on every platform.
var extensionTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".json": "application/json",
	".htm":  "text/html",
	".html": "text/html",
	".docx": docx.MIMEType,
	".xlsx": xlsx.MIMEType,
}

// ExtensionType maps a file name to a MIME type, or "".
func ExtensionType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := extensionTypes[ext]; ok {
		return mt
	}
	return mime.TypeByExtension(ext)
}
