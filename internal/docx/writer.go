package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrSerialize indicates the package could not be written.
var ErrSerialize = errors.New("docx serialization failed")

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// zipModified is stamped on every entry so identical documents produce
// identical bytes.
var zipModified = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Write serializes the document into a WordprocessingML package.
func Write(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrSerialize)
	}
	if err := doc.Style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	body, err := renderDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", renderCore(doc.Title)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", body},
		{"word/styles.xml", renderStyles(doc.Style)},
		{"word/numbering.xml", renderNumbering(doc.Style)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipModified,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %w", ErrSerialize, p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %w", ErrSerialize, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// WordprocessingML elements. Names carry the w: prefix literally; the
// namespace is declared once on the root.

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	Section    xmlSection     `xml:"w:sectPr"`
}

type xmlParagraph struct {
	Props *xmlParagraphProps `xml:"w:pPr,omitempty"`
	Runs  []xmlRun           `xml:"w:r"`
}

// Child order follows the CT_PPr sequence.
type xmlParagraphProps struct {
	Style           *xmlVal     `xml:"w:pStyle,omitempty"`
	PageBreakBefore *struct{}   `xml:"w:pageBreakBefore,omitempty"`
	Numbering       *xmlNumPr   `xml:"w:numPr,omitempty"`
	Spacing         *xmlSpacing `xml:"w:spacing,omitempty"`
	Indent          *xmlIndent  `xml:"w:ind,omitempty"`
	Justify         *xmlVal     `xml:"w:jc,omitempty"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlNumPr struct {
	Level xmlVal `xml:"w:ilvl"`
	ID    xmlVal `xml:"w:numId"`
}

type xmlSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type xmlIndent struct {
	Left string `xml:"w:left,attr"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"w:rPr,omitempty"`
	Text  xmlText      `xml:"w:t"`
}

// Child order follows the CT_RPr sequence.
type xmlRunProps struct {
	Bold      *struct{} `xml:"w:b,omitempty"`
	Italic    *struct{} `xml:"w:i,omitempty"`
	Strike    *struct{} `xml:"w:strike,omitempty"`
	Underline *xmlVal   `xml:"w:u,omitempty"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type xmlSection struct {
	Size    xmlPageSize   `xml:"w:pgSz"`
	Margins xmlPageMargin `xml:"w:pgMar"`
}

type xmlPageSize struct {
	Width  int `xml:"w:w,attr"`
	Height int `xml:"w:h,attr"`
}

type xmlPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

func renderDocument(doc *Document) ([]byte, error) {
	s := doc.Style
	out := xmlDocument{
		NS: wordNamespace,
		Body: xmlBody{
			Paragraphs: make([]xmlParagraph, 0, len(doc.Paragraphs)),
			Section: xmlSection{
				Size: xmlPageSize{Width: s.PageWidth, Height: s.PageHeight},
				Margins: xmlPageMargin{
					Top:    s.MarginTop,
					Right:  s.MarginRight,
					Bottom: s.MarginBottom,
					Left:   s.MarginLeft,
				},
			},
		},
	}
	for _, p := range doc.Paragraphs {
		out.Body.Paragraphs = append(out.Body.Paragraphs, toXMLParagraph(p))
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := xml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toXMLParagraph(p Paragraph) xmlParagraph {
	props := &xmlParagraphProps{}
	if p.StyleID != "" {
		props.Style = &xmlVal{Val: p.StyleID}
	}
	if p.PageBreakBefore {
		props.PageBreakBefore = &struct{}{}
	}
	if p.NumID > 0 {
		props.Numbering = &xmlNumPr{
			Level: xmlVal{Val: strconv.Itoa(p.NumLevel)},
			ID:    xmlVal{Val: strconv.Itoa(p.NumID)},
		}
	}
	if p.SpacingBefore > 0 || p.SpacingAfter > 0 || p.LineSpacing > 0 {
		sp := &xmlSpacing{
			Before: positive(p.SpacingBefore),
			After:  positive(p.SpacingAfter),
			Line:   positive(p.LineSpacing),
		}
		if p.LineSpacing > 0 {
			sp.LineRule = "auto"
		}
		props.Spacing = sp
	}
	if p.IndentLeft > 0 {
		props.Indent = &xmlIndent{Left: strconv.Itoa(p.IndentLeft)}
	}
	if p.Justify != JustifyNone {
		props.Justify = &xmlVal{Val: p.Justify}
	}

	out := xmlParagraph{Props: props, Runs: make([]xmlRun, 0, len(p.Runs))}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, toXMLRun(r))
	}
	return out
}

func toXMLRun(r Run) xmlRun {
	out := xmlRun{Text: xmlText{Space: "preserve", Value: r.Text}}
	if !r.Bold && !r.Italic && !r.Strike && !r.Underline {
		return out
	}
	props := &xmlRunProps{}
	if r.Bold {
		props.Bold = &struct{}{}
	}
	if r.Italic {
		props.Italic = &struct{}{}
	}
	if r.Strike {
		props.Strike = &struct{}{}
	}
	if r.Underline {
		props.Underline = &xmlVal{Val: "single"}
	}
	out.Props = props
	return out
}

func positive(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}
