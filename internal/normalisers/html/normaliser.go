package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the document text with a leading title line when the
// page declares one that is not repeated in the body.
func (e *Extractor) Extract(_ context.Context, file *domain.RawFile) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}
	raw := string(file.Content)
	body := stripHTML(raw)
	if title := pageTitle(raw); title != "" && !strings.HasPrefix(body, title) {
		return strings.TrimSpace(title + "\n" + body), nil
	}
	return body, nil
}

// Pre-compiled regular expressions for HTML parsing.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	droppedBlocks = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg|template)[^>]*>.*?</(script|style|noscript|head|svg|template)>`)
	comments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	cellEnd       = regexp.MustCompile(`(?i)</t[dh]>`)
	lineBreaks    = regexp.MustCompile(`(?i)<(br|hr)\s*/?>|</?(p|div|h[1-6]|li|tr|blockquote|pre|table|thead|tbody|section|article|ul|ol)[^>]*>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	spaces        = regexp.MustCompile(`[ \x{00a0}]+`)
)

func pageTitle(content string) string {
	m := titleTag.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(allTags.ReplaceAllString(m[1], "")))
}

// stripHTML removes markup and returns one trimmed, non-empty line per
// block. Cells within a row are tab-separated.
func stripHTML(content string) string {
	content = droppedBlocks.ReplaceAllString(content, "")
	content = comments.ReplaceAllString(content, "")
	content = cellEnd.ReplaceAllString(content, "\t")
	content = lineBreaks.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(line, "\t")
		kept := cells[:0]
		for _, c := range cells {
			if c = strings.TrimSpace(spaces.ReplaceAllString(c, " ")); c != "" {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			out = append(out, strings.Join(kept, "\t"))
		}
	}
	return strings.Join(out, "\n")
}
