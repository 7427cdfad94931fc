package tccexport

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-tccexport/internal/docx"
	"github.com/alnah/go-tccexport/internal/markup"
	"github.com/alnah/go-tccexport/internal/paginate"
	"github.com/alnah/go-tccexport/internal/pipeline"
)

// Exporter turns manuscripts into DOCX, PDF and Markdown artifacts.
// It holds only immutable configuration and is safe for concurrent use.
type Exporter struct {
	cfg      exporterConfig
	profile  Profile
	logger   *slog.Logger
	markdown *pipeline.MarkdownWriter
	now      func() time.Time
}

// exporterConfig holds the options collected before the profile is resolved.
type exporterConfig struct {
	profile        *Profile
	profileName    string
	assetPath      string
	loader         ProfileLoader
	verifyPDF      bool
	filenameSuffix string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithProfile sets the formatting profile directly.
func WithProfile(p Profile) Option {
	return func(e *Exporter) {
		e.cfg.profile = &p
	}
}

// WithProfileName selects a profile by name, from the built-in profiles or
// the directory given by WithAssetPath.
func WithProfileName(name string) Option {
	return func(e *Exporter) {
		e.cfg.profileName = name
	}
}

// WithAssetPath sets a directory holding custom profiles/{name}.yaml files.
func WithAssetPath(path string) Option {
	return func(e *Exporter) {
		e.cfg.assetPath = path
	}
}

// WithProfileLoader sets a custom profile loader.
// Takes precedence over WithAssetPath.
func WithProfileLoader(l ProfileLoader) Option {
	return func(e *Exporter) {
		e.cfg.loader = l
	}
}

// WithLogger sets the logger for diagnostics. Output is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPDFVerification re-reads every rendered PDF and checks its page count.
func WithPDFVerification() Option {
	return func(e *Exporter) {
		e.cfg.verifyPDF = true
	}
}

// WithFilenameSuffix replaces the "_TCC" suffix of artifact names.
func WithFilenameSuffix(suffix string) Option {
	return func(e *Exporter) {
		e.cfg.filenameSuffix = suffix
	}
}

// WithClock sets the time source for document metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter creates an Exporter. Without a profile option it uses
// DefaultProfile. Returns an error if the profile cannot be loaded or is
// invalid.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg:      exporterConfig{filenameSuffix: DefaultFilenameSuffix},
		logger:   slog.New(slog.DiscardHandler),
		markdown: pipeline.NewMarkdownWriter(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	profile, err := e.resolveProfile()
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	e.profile = profile

	return e, nil
}

// resolveProfile picks the profile: explicit value, then named profile,
// then the default.
func (e *Exporter) resolveProfile() (Profile, error) {
	if e.cfg.profile != nil {
		return *e.cfg.profile, nil
	}
	if e.cfg.profileName == "" && e.cfg.assetPath == "" && e.cfg.loader == nil {
		return DefaultProfile(), nil
	}

	name := e.cfg.profileName
	if name == "" {
		name = DefaultProfileName
	}
	loader := e.cfg.loader
	if loader == nil {
		var err error
		loader, err = NewProfileLoader(e.cfg.assetPath)
		if err != nil {
			return Profile{}, err
		}
	}
	return loader.LoadProfile(name)
}

// Profile returns the formatting profile in use.
func (e *Exporter) Profile() Profile {
	return e.profile
}

// Filename returns the artifact name for a title and format.
func (e *Exporter) Filename(title string, f Format) string {
	return filename(title, e.cfg.filenameSuffix, f)
}

// ExportDOCX builds the structured document.
func (e *Exporter) ExportDOCX(ctx context.Context, m Manuscript) (*Artifact, error) {
	return e.Export(ctx, FormatDOCX, m)
}

// ExportPDF renders the paginated document.
func (e *Exporter) ExportPDF(ctx context.Context, m Manuscript) (*Artifact, error) {
	return e.Export(ctx, FormatPDF, m)
}

// ExportMarkdown converts the manuscript to CommonMark.
func (e *Exporter) ExportMarkdown(ctx context.Context, m Manuscript) (*Artifact, error) {
	return e.Export(ctx, FormatMarkdown, m)
}

// ExportSource takes a snapshot from src and exports it.
func (e *Exporter) ExportSource(ctx context.Context, f Format, src ManuscriptSource) (*Artifact, error) {
	if src == nil {
		return nil, exportError(f, "snapshot", ErrNilSource)
	}
	m, err := src.Snapshot(ctx)
	if err != nil {
		return nil, exportError(f, "snapshot", err)
	}
	return e.Export(ctx, f, m)
}

// Export produces an artifact in the given format. The manuscript is copied
// and its chapters sorted by order before use; the caller's value is never
// modified. Every failure, including internal panics, is returned as
// *ExportError.
func (e *Exporter) Export(ctx context.Context, f Format, m Manuscript) (art *Artifact, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = exportError(f, "", fmt.Errorf("%w: internal error: %v", ErrSerialization, r))
		}
		if err != nil {
			e.logger.Warn("export failed", "format", f, "title", m.Title, "error", err)
			return
		}
		e.logger.Debug("export finished",
			"format", f,
			"file", art.Filename,
			"bytes", len(art.Data),
			"duration", time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return nil, exportError(f, "", err)
	}

	m = m.Sorted()
	e.logger.Debug("export started", "format", f, "title", m.Title, "chapters", len(m.Chapters))

	var data []byte
	switch f {
	case FormatDOCX:
		data, err = e.buildDOCX(ctx, m)
	case FormatPDF:
		data, err = e.renderPDF(ctx, m)
	case FormatMarkdown:
		data, err = e.writeMarkdown(ctx, m)
	default:
		return nil, exportError(f, "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f)))
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename: e.Filename(m.Title, f),
		Format:   f,
		Data:     data,
	}, nil
}

// parser returns a markup parser that logs degradations for one chapter.
func (e *Exporter) parser(chapter string) *markup.Parser {
	return markup.NewParser(markup.WithDegradedHandler(func(d markup.Degradation) {
		e.logger.Debug("markup degraded", "chapter", chapter, "reason", d.Reason, "snippet", d.Snippet)
	}))
}

func (e *Exporter) buildDOCX(ctx context.Context, m Manuscript) ([]byte, error) {
	src := docx.Source{
		Title:    m.Title,
		Subtitle: m.CourseName,
		Chapters: make([]docx.Chapter, 0, len(m.Chapters)),
	}
	for _, ch := range m.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, exportError(FormatDOCX, "parsing", err)
		}
		src.Chapters = append(src.Chapters, docx.Chapter{
			Title:  ch.Title,
			Blocks: e.parser(ch.Title).Parse(ch.ContentMarkup),
		})
	}

	data, err := docx.Write(docx.Build(src, e.profile.style()))
	if err != nil {
		return nil, exportError(FormatDOCX, "writing", fmt.Errorf("%w: %w", ErrSerialization, err))
	}
	return data, nil
}

func (e *Exporter) renderPDF(ctx context.Context, m Manuscript) ([]byte, error) {
	src := paginate.Source{
		Title:    m.Title,
		Subtitle: m.CourseName,
		Chapters: make([]paginate.Chapter, 0, len(m.Chapters)),
		Created:  e.now(),
	}
	for _, ch := range m.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, exportError(FormatPDF, "parsing", err)
		}
		src.Chapters = append(src.Chapters, paginate.Chapter{
			Title: ch.Title,
			Text:  markup.PlainText(ch.ContentMarkup),
		})
	}

	res, err := paginate.Render(src, e.profile.layout())
	if err != nil {
		return nil, exportError(FormatPDF, "rendering", fmt.Errorf("%w: %w", ErrSerialization, err))
	}
	if e.cfg.verifyPDF {
		if err := res.Verify(); err != nil {
			return nil, exportError(FormatPDF, "verifying", fmt.Errorf("%w: %w", ErrSerialization, err))
		}
	}
	e.logger.Debug("pdf rendered", "pages", len(res.Pages))
	return res.Data, nil
}

// writeMarkdown emits the title block, then one second-level heading per
// chapter followed by its converted content.
func (e *Exporter) writeMarkdown(ctx context.Context, m Manuscript) ([]byte, error) {
	front := "<h1>" + html.EscapeString(m.Title) + "</h1>"
	if m.CourseName != "" {
		front += "<p>" + html.EscapeString(m.CourseName) + "</p>"
	}

	sections := make([]string, 0, 1+2*len(m.Chapters))
	add := func(fragment string) error {
		md, err := e.markdown.ToMarkdown(fragment)
		if err != nil {
			return exportError(FormatMarkdown, "converting", fmt.Errorf("%w: %w", ErrSerialization, err))
		}
		if md != "" {
			sections = append(sections, md)
		}
		return nil
	}

	if err := add(front); err != nil {
		return nil, err
	}
	for _, ch := range m.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, exportError(FormatMarkdown, "converting", err)
		}
		if err := add("<h2>" + html.EscapeString(ch.Title) + "</h2>"); err != nil {
			return nil, err
		}
		if err := add(ch.ContentMarkup); err != nil {
			return nil, err
		}
	}
	return []byte(strings.Join(sections, "\n\n") + "\n"), nil
}
