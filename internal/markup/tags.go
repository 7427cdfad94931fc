package markup

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tag is the closed set of elements the parser gives meaning to.
type tag int

const (
	tagUnknown tag = iota
	tagParagraph
	tagH1
	tagH2
	tagH3
	tagH4
	tagUnorderedList
	tagOrderedList
	tagBlockquote
	tagBold
	tagStrong
	tagItalic
	tagEmphasis
	tagStrike
	tagStrikeLegacy
	tagUnderline
	tagBreak
)

var tagsByAtom = map[atom.Atom]tag{
	atom.P:          tagParagraph,
	atom.H1:         tagH1,
	atom.H2:         tagH2,
	atom.H3:         tagH3,
	atom.H4:         tagH4,
	atom.Ul:         tagUnorderedList,
	atom.Ol:         tagOrderedList,
	atom.Blockquote: tagBlockquote,
	atom.B:          tagBold,
	atom.Strong:     tagStrong,
	atom.I:          tagItalic,
	atom.Em:         tagEmphasis,
	atom.S:          tagStrike,
	atom.Strike:     tagStrikeLegacy,
	atom.U:          tagUnderline,
	atom.Br:         tagBreak,
}

// lookupTag classifies an element node. Non-elements and unlisted elements
// are tagUnknown.
func lookupTag(n *html.Node) tag {
	if n.Type != html.ElementNode {
		return tagUnknown
	}
	return tagsByAtom[n.DataAtom]
}

// headingLevel returns 1-4 for heading tags and 0 otherwise.
func (t tag) headingLevel() int {
	switch t {
	case tagH1:
		return 1
	case tagH2:
		return 2
	case tagH3:
		return 3
	case tagH4:
		return 4
	}
	return 0
}
