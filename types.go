package tccexport

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-tccexport/internal/markup"
)

// Format identifies an export artifact type.
type Format string

// Supported export formats.
const (
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format in export order.
var Formats = []Format{FormatDOCX, FormatPDF, FormatMarkdown}

// ParseFormat resolves a format name, case-insensitively.
// "markdown" is accepted as an alias for "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "docx":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q (must be docx, pdf or md)", ErrUnknownFormat, s)
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "application/octet-stream"
}

// Chapter is one section of a manuscript. ContentMarkup holds the
// editor's constrained HTML.
type Chapter struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string `json:"title" yaml:"title"`
	ContentMarkup string `json:"content" yaml:"content"`
	Order         int    `json:"order" yaml:"order"`
	Generated     bool   `json:"generated,omitempty" yaml:"generated,omitempty"`
}

// WordCount returns the number of words in the chapter's text.
func (c Chapter) WordCount() int {
	return markup.WordCount(c.ContentMarkup)
}

// Manuscript is the export unit: a title, a course name and chapters.
type Manuscript struct {
	Title      string    `json:"title" yaml:"title"`
	CourseName string    `json:"course" yaml:"course"`
	Style      string    `json:"style,omitempty" yaml:"style,omitempty"` // formatting profile name, e.g. "ABNT"
	Chapters   []Chapter `json:"chapters" yaml:"chapters"`
}

// Clone returns a deep copy of the manuscript.
func (m Manuscript) Clone() Manuscript {
	m.Chapters = slices.Clone(m.Chapters)
	return m
}

// Sorted returns a copy with chapters in ascending order. Chapters sharing
// an order keep their stored position.
func (m Manuscript) Sorted() Manuscript {
	out := m.Clone()
	slices.SortStableFunc(out.Chapters, func(a, b Chapter) int {
		return a.Order - b.Order
	})
	return out
}

// WordCount returns the total number of words across chapters.
func (m Manuscript) WordCount() int {
	n := 0
	for _, ch := range m.Chapters {
		n += ch.WordCount()
	}
	return n
}

// ChapterIndex returns the index of the chapter with the given ID, or -1.
func (m Manuscript) ChapterIndex(id string) int {
	return slices.IndexFunc(m.Chapters, func(c Chapter) bool { return c.ID == id })
}

// Artifact is a named export result.
type Artifact struct {
	Filename string
	Format   Format
	Data     []byte
}

// ManuscriptSource supplies manuscript snapshots to the exporter.
type ManuscriptSource interface {
	Snapshot(ctx context.Context) (Manuscript, error)
}

// StaticSource is a ManuscriptSource holding a fixed manuscript.
type StaticSource Manuscript

// Snapshot returns a copy of the manuscript.
func (s StaticSource) Snapshot(ctx context.Context) (Manuscript, error) {
	if err := ctx.Err(); err != nil {
		return Manuscript{}, err
	}
	return Manuscript(s).Clone(), nil
}

var _ ManuscriptSource = StaticSource{}
