package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates imported content could not be turned into markup.
var ErrHTMLConversion = errors.New("HTML conversion failed")

var (
	lineBreaks = regexp.MustCompile(`\r\n?`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// MarkdownCleaner prepares raw Markdown before rendering.
type MarkdownCleaner interface {
	Clean(ctx context.Context, content string) string
}

// HTMLConverter renders Markdown to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// SourceCleaner strips what other editors leave around the text: a byte
// order mark, carriage returns, a leading front matter block and long runs
// of blank lines.
type SourceCleaner struct{}

// Clean returns content unchanged once ctx is done.
func (SourceCleaner) Clean(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, "\ufeff")
	content = lineBreaks.ReplaceAllString(content, "\n")
	content = stripFrontMatter(content)
	return blankRuns.ReplaceAllString(content, "\n\n")
}

// stripFrontMatter drops a "---" delimited header. An unterminated
// header is kept as text.
func stripFrontMatter(content string) string {
	if !strings.HasPrefix(content, "---\n") {
		return content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n---") {
			return ""
		}
		return content
	}
	return strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
}

// GoldmarkConverter renders GFM-flavoured Markdown. Raw HTML in the source
// is omitted by goldmark's default renderer.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter returns a converter that maps single newlines to
// <br /> and ~~text~~ to <del>, matching what the chapter editor emits.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)}
}

// ToHTML renders content. goldmark takes no context, so the conversion
// runs in its own goroutine and a cancelled ctx returns early.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type rendered struct {
		out string
		err error
	}
	ch := make(chan rendered, 1)
	go func() {
		var buf bytes.Buffer
		err := c.md.Convert([]byte(content), &buf)
		ch <- rendered{out: buf.String(), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, r.err)
		}
		return r.out, nil
	}
}
