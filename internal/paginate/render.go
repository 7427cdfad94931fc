package paginate

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ErrRender indicates the page stream could not be produced.
var ErrRender = errors.New("pdf rendering failed")

const creator = "go-tccexport"

// Chapter is one chapter reduced to plain text, one paragraph per line.
type Chapter struct {
	Title string
	Text  string
}

// Source is the renderer input.
type Source struct {
	Title    string
	Subtitle string
	Chapters []Chapter
	Created  time.Time // zero leaves the date to gofpdf
}

// LineKind tells what a placed line is.
type LineKind int

// Line kinds.
const (
	LineTitle LineKind = iota
	LineSubtitle
	LineChapter
	LineBody
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineTitle:
		return "title"
	case LineSubtitle:
		return "subtitle"
	case LineChapter:
		return "chapter"
	case LineBody:
		return "body"
	}
	return "unknown"
}

// Line is one piece of text placed on a page, Y being its baseline.
type Line struct {
	Kind LineKind
	Text string
	Y    float64
}

// Page is the ordered list of lines placed on one page.
type Page struct {
	Number int
	Lines  []Line
}

// Result is the rendered layout and its serialized PDF.
type Result struct {
	Pages []Page
	Data  []byte
}

// BodyLines returns every body line in page order.
func (r *Result) BodyLines() []string {
	var out []string
	for _, p := range r.Pages {
		for _, l := range p.Lines {
			if l.Kind == LineBody {
				out = append(out, l.Text)
			}
		}
	}
	return out
}

type renderer struct {
	pdf       *gofpdf.Fpdf
	layout    Layout
	translate func(string) string
	width     float64
	height    float64
	pages     []Page
}

// Render lays the source out on fixed-size pages with a greedy line fill:
// each wrapped body line is placed independently and a new page starts
// whenever the next line would pass the bottom limit.
func Render(src Source, layout Layout) (res *Result, err error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	// gofpdf panics on some malformed input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	pdf := gofpdf.New("P", "mm", layout.PageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(layout.Margin, layout.PageTop, layout.Margin)
	// SplitText narrows the wrap width by twice the cell margin.
	pdf.SetCellMargin(0)
	pdf.SetTitle(src.Title, true)
	pdf.SetCreator(creator, true)
	if !src.Created.IsZero() {
		pdf.SetCreationDate(src.Created)
	}

	r := &renderer{
		pdf:       pdf,
		layout:    layout,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	r.width, r.height = pdf.GetPageSize()
	if 2*layout.Margin >= r.width {
		return nil, fmt.Errorf("%w: margins wider than the page", ErrInvalidLayout)
	}

	r.addPage()
	y := layout.TitleTop
	r.font("B", layout.TitleSize)
	r.centered(LineTitle, strings.ToUpper(src.Title), y)
	y += layout.TitleGap
	r.font("", layout.SubtitleSize)
	r.centered(LineSubtitle, src.Subtitle, y)
	y += layout.FrontGap

	for _, ch := range src.Chapters {
		y = r.chapter(ch, y)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return &Result{Pages: r.pages, Data: buf.Bytes()}, nil
}

// chapter places one chapter starting at y and returns the cursor after it.
func (r *renderer) chapter(ch Chapter, y float64) float64 {
	l := r.layout
	if y > r.height-l.ChapterRoom {
		r.addPage()
		y = l.PageTop
	}
	r.font("B", l.ChapterSize)
	r.place(LineChapter, strings.ToUpper(ch.Title), l.Margin, y)
	y += l.ChapterGap

	r.font("", l.BodySize)
	for _, line := range r.wrap(ch.Text) {
		if y > r.height-l.BottomRoom {
			r.addPage()
			y = l.PageTop
		}
		r.place(LineBody, line, l.Margin, y)
		y += l.LineHeight
	}
	return y + l.AfterChapter
}

// wrap splits plain text into lines that fit the content width at the
// current font.
func (r *renderer) wrap(text string) []string {
	width := r.width - 2*r.layout.Margin
	var out []string
	for _, para := range strings.Split(toLatin1(text), "\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		out = append(out, r.pdf.SplitText(para, width)...)
	}
	return out
}

func (r *renderer) addPage() {
	r.pdf.AddPage()
	r.pages = append(r.pages, Page{Number: len(r.pages) + 1})
}

func (r *renderer) font(style string, size float64) {
	r.pdf.SetFont(r.layout.FontFamily, style, size)
}

func (r *renderer) centered(kind LineKind, text string, y float64) {
	encoded := r.translate(toLatin1(text))
	x := (r.width - r.pdf.GetStringWidth(encoded)) / 2
	r.draw(kind, text, encoded, x, y)
}

func (r *renderer) place(kind LineKind, text string, x, y float64) {
	r.draw(kind, text, r.translate(toLatin1(text)), x, y)
}

func (r *renderer) draw(kind LineKind, text, encoded string, x, y float64) {
	r.pdf.Text(x, y, encoded)
	page := &r.pages[len(r.pages)-1]
	page.Lines = append(page.Lines, Line{Kind: kind, Text: text, Y: y})
}
