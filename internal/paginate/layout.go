package paginate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout indicates a layout the renderer cannot apply.
var ErrInvalidLayout = errors.New("invalid page layout")

// Layout holds the fixed geometry and fonts of the paginated export.
// Distances are in millimetres, font sizes in points.
type Layout struct {
	PageSize   string // gofpdf page size name: A4, Letter, ...
	FontFamily string // core font: Times, Helvetica, Courier

	TitleSize    float64
	SubtitleSize float64
	ChapterSize  float64
	BodySize     float64

	Margin     float64
	TitleTop   float64 // baseline of the title on page 1
	TitleGap   float64 // title to subtitle
	FrontGap   float64 // subtitle to first chapter
	PageTop    float64 // first baseline on continuation pages
	LineHeight float64

	// ChapterRoom is the space a chapter heading needs below the cursor;
	// with less, the chapter starts on a new page.
	ChapterRoom float64

	// BottomRoom is the space kept free below the last body line.
	BottomRoom float64

	ChapterGap   float64 // heading to first body line
	AfterChapter float64
}

// DefaultLayout returns A4 portrait, Times, 20mm side margins.
func DefaultLayout() Layout {
	return Layout{
		PageSize:     "A4",
		FontFamily:   "Times",
		TitleSize:    16,
		SubtitleSize: 12,
		ChapterSize:  14,
		BodySize:     12,
		Margin:       20,
		TitleTop:     10,
		TitleGap:     10,
		FrontGap:     20,
		PageTop:      20,
		LineHeight:   7,
		ChapterRoom:  40,
		BottomRoom:   20,
		ChapterGap:   15,
		AfterChapter: 15,
	}
}

var pageSizes = map[string]bool{
	"a3": true, "a4": true, "a5": true, "letter": true, "legal": true, "tabloid": true,
}

var coreFonts = map[string]bool{
	"times": true, "helvetica": true, "arial": true, "courier": true,
}

// Validate checks the layout before any page is drawn.
func (l Layout) Validate() error {
	if !pageSizes[strings.ToLower(l.PageSize)] {
		return fmt.Errorf("%w: unknown page size %q", ErrInvalidLayout, l.PageSize)
	}
	if !coreFonts[strings.ToLower(l.FontFamily)] {
		return fmt.Errorf("%w: unsupported font %q", ErrInvalidLayout, l.FontFamily)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"title size", l.TitleSize},
		{"subtitle size", l.SubtitleSize},
		{"chapter size", l.ChapterSize},
		{"body size", l.BodySize},
		{"line height", l.LineHeight},
	} {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidLayout, f.name, f.v)
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"margin", l.Margin},
		{"title top", l.TitleTop},
		{"title gap", l.TitleGap},
		{"front gap", l.FrontGap},
		{"page top", l.PageTop},
		{"chapter room", l.ChapterRoom},
		{"bottom room", l.BottomRoom},
		{"chapter gap", l.ChapterGap},
		{"after chapter", l.AfterChapter},
	} {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidLayout, f.name, f.v)
		}
	}
	return nil
}
