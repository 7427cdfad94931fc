package docx

import (
	"strings"

	"github.com/alnah/go-tccexport/internal/markup"
)

// Numbering definitions declared once in numbering.xml and referenced by
// list paragraphs.
const (
	NumBullet  = 1
	NumDecimal = 2

	BulletReference  = "bullet-list"
	DecimalReference = "decimal-numbering"
)

// Paragraph style IDs.
const (
	StyleNormal        = "Normal"
	StyleTitle         = "Title"
	StyleHeading1      = "Heading1"
	StyleHeading2      = "Heading2"
	StyleHeading3      = "Heading3"
	StyleHeading4      = "Heading4"
	StyleListParagraph = "ListParagraph"
)

// Role records why a paragraph exists in the document. It does not reach
// the XML; it lets callers and tests walk the model by meaning.
type Role int

// Paragraph roles.
const (
	RoleBody Role = iota
	RoleTitle
	RoleSubtitle
	RoleChapter
	RoleHeading
	RoleBullet
	RoleNumbered
	RoleQuote
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleTitle:
		return "title"
	case RoleSubtitle:
		return "subtitle"
	case RoleChapter:
		return "chapter"
	case RoleHeading:
		return "heading"
	case RoleBullet:
		return "bullet"
	case RoleNumbered:
		return "numbered"
	case RoleQuote:
		return "quote"
	}
	return "unknown"
}

// Justification values for w:jc. Empty means inherit from the style.
const (
	JustifyNone   = ""
	JustifyLeft   = "left"
	JustifyCenter = "center"
	JustifyRight  = "right"
	JustifyBoth   = "both"
)

// Run is a span of text with one formatting combination.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Underline bool
}

// Paragraph is one structured element of the document body. Zero spacing
// and indent values are left to the style.
type Paragraph struct {
	Role            Role
	StyleID         string
	Level           int // heading level, 0 otherwise
	Justify         string
	PageBreakBefore bool
	SpacingBefore   int // twips
	SpacingAfter    int // twips
	LineSpacing     int // 240ths of a line
	IndentLeft      int // twips
	NumID           int // 0 when not a list paragraph
	NumLevel        int
	Runs            []Run
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document is the structured output model.
type Document struct {
	Title      string
	Style      Style
	Paragraphs []Paragraph
}

// Chapter is one chapter of the input, already parsed.
type Chapter struct {
	Title  string
	Blocks []markup.Block
}

// Source is the builder input.
type Source struct {
	Title    string
	Subtitle string
	Chapters []Chapter
}
