package docx

import (
	"strings"

	"github.com/alnah/go-tccexport/internal/markup"
)

// Build assembles the structured document: title, subtitle, then every
// chapter as a page-broken heading followed by its translated blocks.
func Build(src Source, style Style) *Document {
	doc := &Document{
		Title: src.Title,
		Style: style,
	}

	doc.Paragraphs = append(doc.Paragraphs,
		Paragraph{
			Role:          RoleTitle,
			StyleID:       StyleTitle,
			Justify:       JustifyCenter,
			SpacingBefore: style.TitleBefore,
			SpacingAfter:  style.TitleAfter,
			Runs:          []Run{{Text: strings.ToUpper(src.Title)}},
		},
		Paragraph{
			Role:         RoleSubtitle,
			StyleID:      StyleHeading2,
			Level:        2,
			Justify:      JustifyCenter,
			SpacingAfter: style.SubtitleAfter,
			Runs:         []Run{{Text: src.Subtitle}},
		},
	)

	for _, ch := range src.Chapters {
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Role:            RoleChapter,
			StyleID:         StyleHeading1,
			Level:           1,
			PageBreakBefore: true,
			SpacingAfter:    style.ChapterAfter,
			Runs:            []Run{{Text: strings.ToUpper(ch.Title), Bold: true}},
		})
		for _, b := range ch.Blocks {
			doc.Paragraphs = append(doc.Paragraphs, translate(b, style)...)
		}
	}

	return doc
}

// translate maps one parsed block onto its structured paragraphs. Lists
// yield one paragraph per item; every other block yields exactly one.
func translate(b markup.Block, style Style) []Paragraph {
	switch b.Kind {
	case markup.KindHeading:
		runs := toRuns(b.Runs)
		for i := range runs {
			runs[i].Bold = true
		}
		return []Paragraph{{
			Role:         RoleHeading,
			StyleID:      headingStyle(b.Level),
			Level:        b.Level,
			Justify:      justify(b.Align),
			SpacingAfter: style.ParagraphAfter,
			LineSpacing:  style.LineSpacing,
			Runs:         runs,
		}}

	case markup.KindUnorderedList, markup.KindOrderedList:
		role, numID := RoleBullet, NumBullet
		if b.Kind == markup.KindOrderedList {
			role, numID = RoleNumbered, NumDecimal
		}
		out := make([]Paragraph, 0, len(b.Items))
		for _, item := range b.Items {
			out = append(out, Paragraph{
				Role:    role,
				StyleID: StyleListParagraph,
				NumID:   numID,
				Runs:    []Run{{Text: item}},
			})
		}
		return out

	case markup.KindBlockquote:
		return []Paragraph{{
			Role:         RoleQuote,
			StyleID:      StyleNormal,
			Justify:      justify(b.Align),
			IndentLeft:   style.QuoteIndent,
			SpacingAfter: style.QuoteAfter,
			Runs:         []Run{{Text: b.Text(), Italic: true}},
		}}

	default:
		return []Paragraph{{
			Role:         RoleBody,
			StyleID:      StyleNormal,
			Justify:      justify(b.Align),
			SpacingAfter: style.ParagraphAfter,
			LineSpacing:  style.LineSpacing,
			Runs:         toRuns(b.Runs),
		}}
	}
}

func toRuns(in []markup.Run) []Run {
	out := make([]Run, len(in))
	for i, r := range in {
		out[i] = Run(r)
	}
	return out
}

func headingStyle(level int) string {
	switch level {
	case 2:
		return StyleHeading2
	case 3:
		return StyleHeading3
	case 4:
		return StyleHeading4
	}
	return StyleHeading1
}

func justify(a markup.Alignment) string {
	switch a {
	case markup.AlignLeft:
		return JustifyLeft
	case markup.AlignCenter:
		return JustifyCenter
	case markup.AlignRight:
		return JustifyRight
	}
	return JustifyBoth
}
