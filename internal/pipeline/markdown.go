package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
)

// ErrMarkdownConversion indicates markup could not be converted to Markdown.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownWriter converts markup to CommonMark with strikethrough.
type MarkdownWriter struct {
	conv *converter.Converter
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
}

// ToMarkdown converts an HTML fragment to Markdown.
func (w *MarkdownWriter) ToMarkdown(content string) (string, error) {
	md, err := w.conv.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return strings.TrimSpace(md), nil
}
