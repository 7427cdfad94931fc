package tccexport

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-tccexport/internal/pipeline"
)

// ImportMode selects how imported content lands in the manuscript.
type ImportMode string

// Import modes offered by the editor's import dialog.
const (
	ImportAppend  ImportMode = "append"
	ImportReplace ImportMode = "replace"
	ImportNew     ImportMode = "new"
)

// ParseImportMode resolves an import mode name.
func ParseImportMode(s string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ImportAppend, ImportReplace, ImportNew:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (must be append, replace or new)", ErrInvalidImportMode, s)
}

// SourceType is the format of imported content.
type SourceType string

// Supported import source types.
const (
	SourceHTML     SourceType = "html"
	SourceMarkdown SourceType = "markdown"
)

// DetectSourceType guesses the source type from a file extension.
// Anything that is not Markdown is read as HTML.
func DetectSourceType(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return SourceMarkdown
	}
	return SourceHTML
}

// appendSeparator joins appended content to the existing chapter text.
const appendSeparator = "<br/><br/>"

// ImportRequest describes one import into a manuscript.
type ImportRequest struct {
	Mode      ImportMode
	ChapterID string // target of append and replace
	Title     string // title of the new chapter
	Content   string
	Type      SourceType
}

var (
	importer = pipeline.NewImporter()

	newChapterID = uuid.NewString
)

// Import converts external content to chapter markup and applies it.
// It returns the ID of the affected chapter. Content that is empty after
// trimming leaves the manuscript unchanged and returns an empty ID.
func (m *Manuscript) Import(ctx context.Context, req ImportRequest) (string, error) {
	mode, err := ParseImportMode(string(req.Mode))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", nil
	}

	var target int
	switch mode {
	case ImportNew:
		if strings.TrimSpace(req.Title) == "" {
			return "", ErrEmptyChapterTitle
		}
	default:
		if target = m.ChapterIndex(req.ChapterID); req.ChapterID == "" || target < 0 {
			return "", fmt.Errorf("%w: %q", ErrChapterNotFound, req.ChapterID)
		}
	}

	content, err := convertImport(ctx, req.Content, req.Type)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	switch mode {
	case ImportNew:
		ch := Chapter{
			ID:            newChapterID(),
			Title:         req.Title,
			ContentMarkup: content,
			Order:         m.nextOrder(),
		}
		m.Chapters = append(m.Chapters, ch)
		return ch.ID, nil
	case ImportReplace:
		m.Chapters[target].ContentMarkup = content
	default:
		m.Chapters[target].ContentMarkup += appendSeparator + content
	}
	return m.Chapters[target].ID, nil
}

// nextOrder returns an order that sorts after every existing chapter.
func (m *Manuscript) nextOrder() int {
	if len(m.Chapters) == 0 {
		return 0
	}
	last := m.Chapters[0].Order
	for _, ch := range m.Chapters[1:] {
		last = max(last, ch.Order)
	}
	return last + 1
}

func convertImport(ctx context.Context, content string, t SourceType) (string, error) {
	switch t {
	case SourceMarkdown:
		return importer.ImportMarkdown(ctx, content)
	case SourceHTML, "":
		return importer.ImportHTML(ctx, content)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSourceType, string(t))
}
