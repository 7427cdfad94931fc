package pipeline

import (
	"context"
	"fmt"
)

// Importer turns external HTML or Markdown into chapter markup.
type Importer struct {
	cleaner   MarkdownCleaner
	converter HTMLConverter
	sanitizer *Sanitizer
}

// NewImporter creates an Importer with the goldmark converter.
func NewImporter() *Importer {
	return &Importer{
		cleaner:   SourceCleaner{},
		converter: NewGoldmarkConverter(),
		sanitizer: NewSanitizer(),
	}
}

// ImportHTML normalizes and sanitizes an HTML document or fragment.
func (im *Importer) ImportHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized, err := NormalizeMarkup(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return im.sanitizer.Sanitize(normalized), nil
}

// ImportMarkdown converts Markdown to chapter markup.
func (im *Importer) ImportMarkdown(ctx context.Context, content string) (string, error) {
	content = im.cleaner.Clean(ctx, content)
	html, err := im.converter.ToHTML(ctx, content)
	if err != nil {
		return "", err
	}
	return im.ImportHTML(ctx, html)
}
