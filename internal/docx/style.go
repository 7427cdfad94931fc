package docx

import (
	"errors"
	"fmt"
)

// ErrInvalidStyle indicates a style value outside the range Word accepts.
var ErrInvalidStyle = errors.New("invalid document style")

// Style holds every formatting constant the builder and writer apply.
// Sizes are in half-points, distances in twips (1/1440 inch) and line
// spacing in 240ths of a line.
type Style struct {
	FontFamily  string
	FontSize    int
	LineSpacing int

	ParagraphAfter int

	TitleBefore   int
	TitleAfter    int
	SubtitleAfter int
	ChapterAfter  int

	QuoteIndent int
	QuoteAfter  int

	ListIndent  int
	ListHanging int

	PageWidth    int
	PageHeight   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// DefaultStyle returns the academic defaults: Times New Roman 12pt, 1.5
// line spacing, A4 page.
func DefaultStyle() Style {
	return Style{
		FontFamily:     "Times New Roman",
		FontSize:       24,
		LineSpacing:    360,
		ParagraphAfter: 120,
		TitleBefore:    4000,
		TitleAfter:     400,
		SubtitleAfter:  200,
		ChapterAfter:   300,
		QuoteIndent:    720,
		QuoteAfter:     120,
		ListIndent:     720,
		ListHanging:    260,
		PageWidth:      11906,
		PageHeight:     16838,
		MarginTop:      1440,
		MarginRight:    1440,
		MarginBottom:   1440,
		MarginLeft:     1440,
	}
}

// Validate checks that the style can be serialized.
func (s Style) Validate() error {
	if s.FontFamily == "" {
		return fmt.Errorf("%w: empty font family", ErrInvalidStyle)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("%w: font size %d", ErrInvalidStyle, s.FontSize)
	}
	if s.LineSpacing <= 0 {
		return fmt.Errorf("%w: line spacing %d", ErrInvalidStyle, s.LineSpacing)
	}
	if s.PageWidth <= 0 || s.PageHeight <= 0 {
		return fmt.Errorf("%w: page %dx%d", ErrInvalidStyle, s.PageWidth, s.PageHeight)
	}
	if s.MarginLeft+s.MarginRight >= s.PageWidth || s.MarginTop+s.MarginBottom >= s.PageHeight {
		return fmt.Errorf("%w: margins leave no room for text", ErrInvalidStyle)
	}
	for _, v := range []int{
		s.ParagraphAfter, s.TitleBefore, s.TitleAfter, s.SubtitleAfter, s.ChapterAfter,
		s.QuoteIndent, s.QuoteAfter, s.ListIndent, s.ListHanging,
		s.MarginTop, s.MarginRight, s.MarginBottom, s.MarginLeft,
	} {
		if v < 0 {
			return fmt.Errorf("%w: negative spacing %d", ErrInvalidStyle, v)
		}
	}
	return nil
}
