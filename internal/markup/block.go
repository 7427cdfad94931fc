package markup

import "strings"

// Kind identifies the structural type of a Block.
type Kind int

// Block kinds.
const (
	KindParagraph Kind = iota
	KindHeading
	KindUnorderedList
	KindOrderedList
	KindBlockquote
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindUnorderedList:
		return "unordered-list"
	case KindOrderedList:
		return "ordered-list"
	case KindBlockquote:
		return "blockquote"
	}
	return "unknown"
}

// IsList reports whether the kind carries Items instead of Runs.
func (k Kind) IsList() bool {
	return k == KindUnorderedList || k == KindOrderedList
}

// Alignment is the horizontal alignment of a block.
type Alignment int

// Alignments. Justified is the zero value: academic body text is justified
// unless the markup says otherwise.
const (
	AlignJustified Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS keyword for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "justify"
}

// Run is a contiguous span of text sharing one formatting combination.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Underline bool
}

// Block is one structural unit of parsed content.
//
// Level is set for headings only (1-4). Items is set for lists only; list
// blocks carry no runs. Every other block carries Runs and Align.
type Block struct {
	Kind  Kind
	Level int
	Items []string
	Runs  []Run
	Align Alignment
}

// Text returns the concatenated text of the block's runs, or its items
// joined by newlines for lists.
func (b Block) Text() string {
	if b.Kind.IsList() {
		return strings.Join(b.Items, "\n")
	}
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
