package tccexport

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-tccexport/internal/paginate"
)

var fixedClock = func() time.Time { return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC) }

// docxParagraph is what a reader sees of one w:p element.
type docxParagraph struct {
	style     string
	justify   string
	pageBreak bool
	text      string
}

func readDOCX(t *testing.T, data []byte) []docxParagraph {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
	}
	if body == nil {
		t.Fatal("word/document.xml missing")
	}

	var (
		out    []docxParagraph
		cur    docxParagraph
		inText bool
	)
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("decode document.xml: %v", err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "p":
				cur = docxParagraph{}
			case "pStyle":
				cur.style = attrValue(tt)
			case "jc":
				cur.justify = attrValue(tt)
			case "pageBreakBefore":
				cur.pageBreak = true
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch tt.Name.Local {
			case "p":
				out = append(out, cur)
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.text += string(tt)
			}
		}
	}
}

func attrValue(se xml.StartElement) string {
	for _, a := range se.Attr {
		if a.Name.Local == "val" {
			return a.Value
		}
	}
	return ""
}

func texts(paras []docxParagraph) []string {
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.text
	}
	return out
}

func newTestExporter(t *testing.T, opts ...Option) *Exporter {
	t.Helper()

	e, err := NewExporter(append([]Option{WithClock(fixedClock)}, opts...)...)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	return e
}

func testManuscript() Manuscript {
	return Manuscript{
		Title:      "Impacto  da IA",
		CourseName: "Pedagogia",
		Chapters: []Chapter{
			{
				ID:            "c1",
				Title:         "Introdução",
				ContentMarkup: `<h2>Contexto</h2><p>Texto <b>forte</b></p><blockquote>citação</blockquote><ol><li>um</li><li>dois</li></ol>`,
				Order:         0,
			},
			{
				ID:            "c2",
				Title:         "Conclusão",
				ContentMarkup: `<p style="text-align:center">fim</p>`,
				Order:         1,
			},
		},
	}
}

func TestExporter_ExportDOCX(t *testing.T) {
	t.Parallel()

	art, err := newTestExporter(t).ExportDOCX(context.Background(), testManuscript())
	if err != nil {
		t.Fatalf("ExportDOCX: %v", err)
	}
	if art.Filename != "Impacto_da_IA_TCC.docx" {
		t.Errorf("Filename = %q", art.Filename)
	}
	if art.Format != FormatDOCX {
		t.Errorf("Format = %q", art.Format)
	}

	paras := readDOCX(t, art.Data)
	want := []string{
		"IMPACTO  DA IA", "Pedagogia",
		"INTRODUÇÃO", "Contexto", "Texto forte", "citação", "um", "dois",
		"CONCLUSÃO", "fim",
	}
	got := texts(paras)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("paragraphs = %q, want %q", got, want)
	}

	for i, p := range paras {
		wantBreak := p.text == "INTRODUÇÃO" || p.text == "CONCLUSÃO"
		if p.pageBreak != wantBreak {
			t.Errorf("paragraph %d (%q) page break = %v, want %v", i, p.text, p.pageBreak, wantBreak)
		}
	}
	if paras[3].style != "Heading2" {
		t.Errorf("h2 style = %q, want Heading2", paras[3].style)
	}
	if paras[4].justify != "both" {
		t.Errorf("paragraph without alignment justify = %q, want both", paras[4].justify)
	}
	if paras[9].justify != "center" {
		t.Errorf("centered paragraph justify = %q, want center", paras[9].justify)
	}
}

func TestExporter_SortsChaptersWithoutMutatingInput(t *testing.T) {
	t.Parallel()

	m := Manuscript{
		Title: "t",
		Chapters: []Chapter{
			{Title: "Dois", Order: 5},
			{Title: "Um", Order: 1},
			{Title: "Tres", Order: 5},
		},
	}
	art, err := newTestExporter(t).ExportDOCX(context.Background(), m)
	if err != nil {
		t.Fatalf("ExportDOCX: %v", err)
	}

	var headings []string
	for _, p := range readDOCX(t, art.Data) {
		if p.pageBreak {
			headings = append(headings, p.text)
		}
	}
	if got := strings.Join(headings, ","); got != "UM,DOIS,TRES" {
		t.Errorf("chapter order = %s, want UM,DOIS,TRES", got)
	}
	if m.Chapters[0].Title != "Dois" {
		t.Error("caller's manuscript was reordered")
	}
}

func TestExporter_EmptyChapterContent(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "<p></p>"} {
		m := Manuscript{Title: "t", CourseName: "c", Chapters: []Chapter{{Title: "Vazio", ContentMarkup: content}}}
		art, err := newTestExporter(t).ExportDOCX(context.Background(), m)
		if err != nil {
			t.Fatalf("ExportDOCX(%q): %v", content, err)
		}
		if got := texts(readDOCX(t, art.Data)); strings.Join(got, "|") != "T|c|VAZIO" {
			t.Errorf("content %q: paragraphs = %q, want title, subtitle and heading only", content, got)
		}
	}
}

func TestExporter_EmptyManuscript(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	for _, f := range Formats {
		art, err := e.Export(context.Background(), f, Manuscript{})
		if err != nil {
			t.Fatalf("Export(%s) of an empty manuscript: %v", f, err)
		}
		if art.Filename != "manuscript_TCC."+f.Extension() {
			t.Errorf("%s filename = %q", f, art.Filename)
		}
	}

	art, err := e.ExportPDF(context.Background(), Manuscript{Title: "Só título", CourseName: "Curso"})
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	n, err := paginate.CountPages(art.Data)
	if err != nil {
		t.Fatalf("CountPages: %v", err)
	}
	if n != 1 {
		t.Errorf("empty manuscript PDF has %d pages, want 1", n)
	}
}

func TestExporter_ExportPDF(t *testing.T) {
	t.Parallel()

	m := testManuscript()
	m.Chapters[0].ContentMarkup = strings.Repeat("<p>"+strings.Repeat("palavra ", 120)+"</p>", 10)

	art, err := newTestExporter(t, WithPDFVerification()).ExportPDF(context.Background(), m)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if art.Filename != "Impacto_da_IA_TCC.pdf" {
		t.Errorf("Filename = %q", art.Filename)
	}
	n, err := paginate.CountPages(art.Data)
	if err != nil {
		t.Fatalf("CountPages: %v", err)
	}
	if n < 2 {
		t.Errorf("got %d pages, want at least 2", n)
	}
}

func TestExporter_Idempotent(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	m := testManuscript()
	for _, f := range Formats {
		first, err := e.Export(context.Background(), f, m)
		if err != nil {
			t.Fatalf("Export(%s): %v", f, err)
		}
		second, err := e.Export(context.Background(), f, m)
		if err != nil {
			t.Fatalf("Export(%s): %v", f, err)
		}
		if !bytes.Equal(first.Data, second.Data) {
			t.Errorf("%s: two exports of the same manuscript differ", f)
		}
	}
}

func TestExporter_ExportMarkdown(t *testing.T) {
	t.Parallel()

	art, err := newTestExporter(t).ExportMarkdown(context.Background(), testManuscript())
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	if art.Filename != "Impacto_da_IA_TCC.md" {
		t.Errorf("Filename = %q", art.Filename)
	}
	md := string(art.Data)
	for _, want := range []string{"# Impacto", "## Introdução", "## Contexto", "**forte**", "> citação", "1. um", "## Conclusão"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Index(md, "## Introdução") > strings.Index(md, "## Conclusão") {
		t.Error("chapters out of order")
	}
}

func TestExporter_Errors(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := e.Export(context.Background(), Format("odt"), testManuscript())
		var exportErr *ExportError
		if !errors.As(err, &exportErr) {
			t.Fatalf("error = %T, want *ExportError", err)
		}
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
		if !strings.HasPrefix(err.Error(), "export failed") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.ExportDOCX(ctx, testManuscript())
		var exportErr *ExportError
		if !errors.As(err, &exportErr) || !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want *ExportError wrapping context.Canceled", err)
		}
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		if _, err := e.ExportSource(context.Background(), FormatPDF, nil); !errors.Is(err, ErrNilSource) {
			t.Errorf("error = %v, want ErrNilSource", err)
		}
	})
}

type failingSource struct{ err error }

func (s failingSource) Snapshot(context.Context) (Manuscript, error) {
	return Manuscript{}, s.err
}

func TestExporter_ExportSource(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	art, err := e.ExportSource(context.Background(), FormatDOCX, StaticSource(testManuscript()))
	if err != nil {
		t.Fatalf("ExportSource: %v", err)
	}
	if art.Filename != "Impacto_da_IA_TCC.docx" {
		t.Errorf("Filename = %q", art.Filename)
	}

	boom := errors.New("store offline")
	_, err = e.ExportSource(context.Background(), FormatDOCX, failingSource{err: boom})
	var exportErr *ExportError
	if !errors.As(err, &exportErr) || !errors.Is(err, boom) {
		t.Errorf("error = %v, want *ExportError wrapping the source error", err)
	}
	if exportErr != nil && exportErr.Op != "snapshot" {
		t.Errorf("Op = %q, want snapshot", exportErr.Op)
	}
}

func TestExporter_Options(t *testing.T) {
	t.Parallel()

	t.Run("filename suffix", func(t *testing.T) {
		t.Parallel()

		e := newTestExporter(t, WithFilenameSuffix("_final"))
		art, err := e.ExportMarkdown(context.Background(), testManuscript())
		if err != nil {
			t.Fatalf("ExportMarkdown: %v", err)
		}
		if art.Filename != "Impacto_da_IA_final.md" {
			t.Errorf("Filename = %q", art.Filename)
		}
	})

	t.Run("profile by name", func(t *testing.T) {
		t.Parallel()

		e := newTestExporter(t, WithProfileName("abnt"))
		if e.Profile().Name != "abnt" {
			t.Errorf("profile = %q, want abnt", e.Profile().Name)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		t.Parallel()

		if _, err := NewExporter(WithProfileName("chicago")); !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("invalid profile", func(t *testing.T) {
		t.Parallel()

		p := DefaultProfile()
		p.Document.FontSize = 0
		if _, err := NewExporter(WithProfile(p)); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("error = %v, want ErrInvalidProfile", err)
		}
	})

	t.Run("logger receives degradations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		e := newTestExporter(t, WithLogger(logger))

		m := Manuscript{Title: "t", Chapters: []Chapter{{Title: "c", ContentMarkup: "<table><tr><td>x</td></tr></table>"}}}
		if _, err := e.ExportDOCX(context.Background(), m); err != nil {
			t.Fatalf("ExportDOCX: %v", err)
		}
		if !strings.Contains(buf.String(), "markup degraded") {
			t.Errorf("log missing degradation:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "export finished") {
			t.Errorf("log missing completion:\n%s", buf.String())
		}
	})
}
